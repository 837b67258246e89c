package drive

import "strings"

// HardwareInfo is the drive's persistent mode page. REQ_MODE reads slices
// of it and SET_MODE writes them back, addressed by byte offset, so the
// block is kept in its raw wire layout.
type HardwareInfo [32]byte

// Byte offsets within the hardware info block.
const (
	hwInfoSpeed         = 2
	hwInfoStandbyHi     = 4
	hwInfoStandbyLo     = 5
	hwInfoReadFlags     = 6
	hwInfoReadRetry     = 9
	hwInfoDriveInfo     = 10
	hwInfoSystemVersion = 18
	hwInfoSystemDate    = 26
)

// Speed returns the CD-ROM speed field.
func (i HardwareInfo) Speed() byte { return i[hwInfoSpeed] }

// Standby returns the standby timer.
func (i HardwareInfo) Standby() uint16 {
	return uint16(i[hwInfoStandbyHi])<<8 | uint16(i[hwInfoStandbyLo])
}

// ReadFlags returns the read continuous/retry flag byte.
func (i HardwareInfo) ReadFlags() byte { return i[hwInfoReadFlags] }

// ReadRetry returns the read retry count.
func (i HardwareInfo) ReadRetry() byte { return i[hwInfoReadRetry] }

// DriveInfo returns the drive information string.
func (i HardwareInfo) DriveInfo() string {
	return strings.TrimRight(string(i[hwInfoDriveInfo:hwInfoDriveInfo+8]), " ")
}

// SystemVersion returns the system version string.
func (i HardwareInfo) SystemVersion() string {
	return strings.TrimRight(string(i[hwInfoSystemVersion:hwInfoSystemVersion+8]), " ")
}

// SystemDate returns the system date string.
func (i HardwareInfo) SystemDate() string {
	return strings.TrimRight(string(i[hwInfoSystemDate:hwInfoSystemDate+6]), " ")
}

func (i *HardwareInfo) setString(offset, width int, s string) {
	for n := 0; n < width; n++ {
		if n < len(s) {
			i[offset+n] = s[n]
		} else {
			i[offset+n] = ' '
		}
	}
}

// defaultHardwareInfo returns the mode page of a stock drive.
func defaultHardwareInfo() HardwareInfo {
	var info HardwareInfo

	info[hwInfoSpeed] = 0x0
	info[hwInfoStandbyHi] = 0x00
	info[hwInfoStandbyLo] = 0xb4
	info[hwInfoReadFlags] = 0x19
	info[hwInfoReadRetry] = 0x08
	info.setString(hwInfoDriveInfo, 8, "SE")
	info.setString(hwInfoSystemVersion, 8, "Rev 6.43")
	info.setString(hwInfoSystemDate, 6, "990408")

	return info
}
