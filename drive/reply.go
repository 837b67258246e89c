package drive

import "github.com/sarchlab/gdrom/disc"

// Response block sizes of the data-to-host packet commands.
const (
	statusBlockSize  = 10
	errorBlockSize   = 10
	sessionBlockSize = 6
	subcodeBlockSize = 100

	tocMaxTracks = 99
	tocEntrySize = 4
	tocBlockSize = tocMaxTracks*tocEntrySize + 3*tocEntrySize
)

// putFAD stores a frame address as a big-endian 24-bit value.
func putFAD(b []byte, fad int) {
	b[0] = byte(fad >> 16)
	b[1] = byte(fad >> 8)
	b[2] = byte(fad)
}

// statusBlock builds the REQ_STAT response: drive status, disc format and
// the current subcode position.
func (c *Comp) statusBlock() [statusBlockSize]byte {
	var b [statusBlockSize]byte

	b[0] = byte(c.sectnum.Status) & 0xf
	b[1] = byte(c.sectnum.Format)<<4 | 0x0 // repeat count 0
	b[2] = 0x4 << 4                        // control 0x4, address 0
	b[3] = 2                               // subcode track number
	b[4] = 0                               // subcode index number
	putFAD(b[5:8], 0)
	b[8] = 0 // max read error retries

	return b
}

// errorBlock builds the REQ_ERROR response. The sense key and code detail
// is not modeled; the block is a fixed skeleton.
func (c *Comp) errorBlock() [errorBlockSize]byte {
	c.mustHaveDisc()

	var b [errorBlockSize]byte
	b[0] = 0xf0

	return b
}

// tocBlock builds the GET_TOC response for one disc area: one entry per
// track slot plus first-track, last-track and lead-out summaries. Track
// slots outside the area keep the all-ones invalid sentinel. Multi-byte
// frame addresses are big-endian on the wire.
func (c *Comp) tocBlock(area disc.Area) [tocBlockSize]byte {
	c.mustHaveDisc()

	toc := c.disc.TOC(area)

	var b [tocBlockSize]byte
	for i := range b {
		b[i] = 0xff
	}

	for num := toc.FirstTrack.Num; num <= toc.LastTrack.Num; num++ {
		track := c.disc.Track(num)
		entry := b[(num-1)*tocEntrySize:]

		entry[0] = track.Ctrl<<4 | track.ADR&0xf
		putFAD(entry[1:4], track.FAD)
	}

	first := b[tocMaxTracks*tocEntrySize:]
	first[0] = toc.FirstTrack.Ctrl<<4 | toc.FirstTrack.ADR&0xf
	first[1] = byte(toc.FirstTrack.Num)

	last := b[(tocMaxTracks+1)*tocEntrySize:]
	last[0] = toc.LastTrack.Ctrl<<4 | toc.LastTrack.ADR&0xf
	last[1] = byte(toc.LastTrack.Num)

	leadout := b[(tocMaxTracks+2)*tocEntrySize:]
	putFAD(leadout[1:4], toc.LeadoutFAD)

	return b
}

// sessionBlock builds the REQ_SES response. Session 0 reports the total
// session count and the final lead-out address; session n reports that
// session's first track number and starting address.
func (c *Comp) sessionBlock(session int) [sessionBlockSize]byte {
	c.mustHaveDisc()

	var b [sessionBlockSize]byte
	b[0] = byte(c.sectnum.Status) & 0xf

	if session == 0 {
		numSessions := c.disc.NumSessions()
		last := c.disc.Session(numSessions)

		b[2] = byte(numSessions)
		putFAD(b[3:6], last.LeadoutFAD)
	} else {
		ses := c.disc.Session(session)
		first := c.disc.Track(ses.FirstTrack)

		b[2] = byte(first.Num)
		putFAD(b[3:6], first.FAD)
	}

	return b
}

// audio status reported in subcode data when no audio operation is active
const audioStatusNone = 0x15

// subcodeBlock builds the GET_SCD response. Sub-channel data is not
// derived from actual disc content; a fixed-format block is returned.
func (c *Comp) subcodeBlock(format byte) [subcodeBlockSize]byte {
	c.mustHaveDisc()

	var b [subcodeBlockSize]byte
	b[1] = audioStatusNone

	switch format {
	case 0:
		b[2] = 0x0
		b[3] = 0x64
	case 1:
		b[2] = 0x0
		b[3] = 0xe
	}

	return b
}

// securityReply is the canned response to REQ_SECU. The security check has
// not been reverse engineered; returning this fixed block satisfies the
// boot ROM.
var securityReply = []byte{
	0x1f, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x42, 0x00, 0x00, 0x00, 0x00,
}

func (c *Comp) mustHaveDisc() {
	if c.disc == nil {
		panic("no disc attached")
	}
}
