package drive

import "github.com/sarchlab/gdrom/disc"

// DecodeFAD converts the 3-byte start address of a packet command into a
// frame address. In MSF mode the bytes are minutes (0-255), seconds (0-59)
// and frames (0-74); otherwise they form a big-endian linear address.
func DecodeFAD(a, b, c byte, msf bool) int {
	if msf {
		return int(a)*60*disc.FramesPerSecond + int(b)*disc.FramesPerSecond + int(c)
	}

	return int(a)<<16 | int(b)<<8 | int(c)
}
