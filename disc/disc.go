// Package disc models the optical media that a GD-ROM drive controller
// operates on. A Disc exposes the track and session layout of an image
// together with sector-level access. The drive controller consumes this
// interface without knowing how the image is backed.
package disc

// Frame addressing constants. A frame address (FAD) is a linear sector
// address counted at 75 frames per second, including the 150-frame pregap.
const (
	FramesPerSecond = 75
	Pregap          = 150

	// HighDensityFAD is the first frame address of a GD-ROM's high
	// density area.
	HighDensityFAD = 45150
)

// Format identifies the kind of disc inserted in the drive. The value is
// reported verbatim in the upper nibble of the controller's sector-number
// register.
type Format int

const (
	FormatCDDA  Format = 0x0
	FormatCDROM Format = 0x1
	FormatCDXA  Format = 0x2
	FormatCDI   Format = 0x3
	FormatGDROM Format = 0x8
)

func (f Format) String() string {
	switch f {
	case FormatCDDA:
		return "CD-DA"
	case FormatCDROM:
		return "CD-ROM"
	case FormatCDXA:
		return "CD-ROM XA"
	case FormatCDI:
		return "CD-I"
	case FormatGDROM:
		return "GD-ROM"
	}
	return "Unknown"
}

// Area selects one of the two recording areas of a GD-ROM. Plain CD images
// only have a single density area.
type Area int

const (
	AreaSingleDensity Area = iota
	AreaHighDensity
)

// Meta carries the identity strings recorded in an image's boot header.
type Meta struct {
	Name    string
	Version string
	ID      string
}

// A Track is one entry of a disc's table of contents.
type Track struct {
	// Num is the 1-based track number.
	Num int

	// FAD is the frame address of the first sector of the track.
	FAD int

	// ADR and Ctrl are the subcode Q-channel fields for the track. Data
	// tracks carry Ctrl 0x4, audio tracks 0x0.
	ADR  uint8
	Ctrl uint8

	// NumSectors is the length of the track in sectors.
	NumSectors int
}

// EndFAD returns the frame address just past the last sector of the track.
func (t Track) EndFAD() int {
	return t.FAD + t.NumSectors
}

// A Session groups a run of consecutive tracks.
type Session struct {
	// FirstTrack is the number of the first track in the session.
	FirstTrack int

	LeadinFAD  int
	LeadoutFAD int
}

// TOC summarizes the table of contents of one disc area.
type TOC struct {
	FirstTrack Track
	LastTrack  Track
	LeadinFAD  int
	LeadoutFAD int
}

// Disc is the media collaborator consumed by the drive controller.
type Disc interface {
	// Meta returns the identity strings of the image.
	Meta() Meta

	// Format returns the disc format reported to the guest.
	Format() Format

	// NumSessions returns the number of sessions on the disc.
	NumSessions() int

	// Session returns the n-th session, 1-based.
	Session(n int) Session

	// NumTracks returns the number of tracks on the disc.
	NumTracks() int

	// Track returns the track with the given 1-based number.
	Track(num int) Track

	// TOC returns the table of contents of the given area.
	TOC(area Area) TOC

	// ReadSector reads the sector at the given frame address, decoded
	// according to the requested sector format and region mask. The
	// length of the returned slice depends on format and mask.
	ReadSector(fad int, format SectorFormat, mask SectorMask) []byte

	// Close releases the resources backing the image.
	Close() error
}
