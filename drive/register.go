package drive

import (
	"encoding/binary"
	"fmt"

	"github.com/sarchlab/gdrom/disc"
)

// Register identifies one of the controller's memory-mapped registers.
// The host bus emulation routes 16-bit accesses here.
type Register int

const (
	// RegAltStatusDevCtrl reads the status register without clearing
	// interrupt state; writes set the device control register.
	RegAltStatusDevCtrl Register = iota
	// RegData is the 16-bit PIO data window.
	RegData
	// RegErrorFeatures reads sense error bits and writes transfer
	// feature flags.
	RegErrorFeatures
	// RegInterruptReason reports the CoD/IO phase bits. Read only.
	RegInterruptReason
	// RegSectorNumber reports drive status and disc format. Read only.
	RegSectorNumber
	// RegByteCountLo and RegByteCountHi hold the pending transfer
	// length.
	RegByteCountLo
	RegByteCountHi
	// RegDriveSelect is accepted but unimplemented.
	RegDriveSelect
	// RegStatusCommand reads the status register, clearing the drive
	// interrupt; writes dispatch an ATA command.
	RegStatusCommand
)

func (r Register) String() string {
	switch r {
	case RegAltStatusDevCtrl:
		return "AltStatus/DevCtrl"
	case RegData:
		return "Data"
	case RegErrorFeatures:
		return "Error/Features"
	case RegInterruptReason:
		return "InterruptReason"
	case RegSectorNumber:
		return "SectorNumber"
	case RegByteCountLo:
		return "ByteCountLo"
	case RegByteCountHi:
		return "ByteCountHi"
	case RegDriveSelect:
		return "DriveSelect"
	case RegStatusCommand:
		return "Status/Command"
	}
	return fmt.Sprintf("Register(%d)", int(r))
}

// DriveStatus is the CD drive activity state visible to the guest through
// the lower nibble of the sector-number register.
type DriveStatus uint8

const (
	StatusBusy DriveStatus = iota
	StatusPause
	StatusStandby
	StatusPlay
	StatusSeek
	StatusScan
	StatusOpen
	StatusNoDisc
	StatusRetry
	StatusError
)

func (s DriveStatus) String() string {
	switch s {
	case StatusBusy:
		return "Busy"
	case StatusPause:
		return "Pause"
	case StatusStandby:
		return "Standby"
	case StatusPlay:
		return "Play"
	case StatusSeek:
		return "Seek"
	case StatusScan:
		return "Scan"
	case StatusOpen:
		return "Open"
	case StatusNoDisc:
		return "NoDisc"
	case StatusRetry:
		return "Retry"
	case StatusError:
		return "Error"
	}
	return fmt.Sprintf("DriveStatus(%d)", uint8(s))
}

// statusRegister holds the fields of the ATA status register. BSY, DRQ,
// DRDY and CHECK gate which register accesses the guest may legally make.
type statusRegister struct {
	CHECK bool // the previous command ended in error
	CORR  bool
	DRQ   bool // ready to transfer data
	DSC   bool
	DF    bool
	DRDY  bool // ready to accept a command
	BSY   bool // processing a command, other bits invalid
}

func (r statusRegister) pack() uint16 {
	var v uint16
	if r.CHECK {
		v |= 1 << 0
	}
	if r.CORR {
		v |= 1 << 2
	}
	if r.DRQ {
		v |= 1 << 3
	}
	if r.DSC {
		v |= 1 << 4
	}
	if r.DF {
		v |= 1 << 5
	}
	if r.DRDY {
		v |= 1 << 6
	}
	if r.BSY {
		v |= 1 << 7
	}
	return v
}

// errorRegister holds the sense error bits reported for the most recent
// command.
type errorRegister struct {
	ILI   bool
	EOMF  bool
	ABRT  bool // command aborted
	MCR   bool
	Sense uint8
}

func (r errorRegister) pack() uint16 {
	var v uint16
	if r.ILI {
		v |= 1 << 0
	}
	if r.EOMF {
		v |= 1 << 1
	}
	if r.ABRT {
		v |= 1 << 2
	}
	if r.MCR {
		v |= 1 << 3
	}
	v |= uint16(r.Sense&0xf) << 4
	return v
}

// interruptReasonRegister reports the transfer phase.
type interruptReasonRegister struct {
	CoD bool // command (1) or data (0)
	IO  bool // to host (1) or from host (0)
}

func (r interruptReasonRegister) pack() uint16 {
	var v uint16
	if r.CoD {
		v |= 1 << 0
	}
	if r.IO {
		v |= 1 << 1
	}
	return v
}

// sectorNumberRegister reports drive status and disc format.
type sectorNumberRegister struct {
	Status DriveStatus
	Format disc.Format
}

func (r sectorNumberRegister) pack() uint16 {
	return uint16(r.Status)&0xf | (uint16(r.Format)&0xf)<<4
}

// featuresRegister holds the transfer feature flags the host sets before a
// packet command.
type featuresRegister struct {
	DMA bool
}

// ReadRegister performs a 16-bit guest read of a controller register.
// Data register reads consume two bytes from the PIO buffer and advance
// the protocol state machine.
func (c *Comp) ReadRegister(reg Register) uint16 {
	switch reg {
	case RegAltStatusDevCtrl:
		// same as the status register, but does not clear DMA status
		// information or the drive interrupt
		return c.status.pack()
	case RegData:
		v := binary.LittleEndian.Uint16(c.pio.data[c.pio.head:])
		c.pio.head += 2
		c.event(EventPioRead, 0)
		return v
	case RegErrorFeatures:
		return c.errorReg.pack()
	case RegInterruptReason:
		return c.ireason.pack()
	case RegSectorNumber:
		return c.sectnum.pack()
	case RegByteCountLo:
		return c.byteCount & 0xff
	case RegByteCountHi:
		return c.byteCount >> 8
	case RegDriveSelect:
		return 0
	case RegStatusCommand:
		v := c.status.pack()
		c.irq.Clear()
		return v
	}
	panic(fmt.Sprintf("read from unknown register %d", reg))
}

// WriteRegister performs a 16-bit guest write of a controller register.
// Command register writes dispatch an ATA command; data register writes
// feed the PIO buffer.
func (c *Comp) WriteRegister(reg Register, value uint16) {
	switch reg {
	case RegAltStatusDevCtrl:
		c.log.Printf("%s: write DevCtrl 0x%x ignored", c.name, value)
	case RegData:
		binary.LittleEndian.PutUint16(c.pio.data[c.pio.head:], value)
		c.pio.head += 2
		c.event(EventPioWrite, 0)
	case RegErrorFeatures:
		c.features.DMA = value&1 != 0
	case RegInterruptReason:
		panic("invalid write to the interrupt-reason register")
	case RegSectorNumber:
		panic("invalid write to the sector-number register")
	case RegByteCountLo:
		c.byteCount = c.byteCount&0xff00 | value&0xff
	case RegByteCountHi:
		c.byteCount = c.byteCount&0x00ff | value<<8
	case RegDriveSelect:
		// accepted, unimplemented
	case RegStatusCommand:
		c.event(EventAtaCommand, int(value))
	default:
		panic(fmt.Sprintf("write to unknown register %d", reg))
	}
}
