package disc

// Raw sector geometry. Every sector on a CD occupies 2352 bytes; the split
// into sync, header, subheader, user data and error correction regions
// depends on the sector mode recorded in the header.
const (
	RawSectorSize = 2352

	Mode1DataSize  = 2048
	Mode2Form1Size = 2048
	Mode2Form2Size = 2324

	syncSize      = 12
	headerSize    = 4
	subheaderSize = 8

	headerOffset    = syncSize
	subheaderOffset = syncSize + headerSize
)

// SectorFormat selects how a sector's payload is interpreted when reading.
// The values match the sector type field of the CD_READ packet command.
type SectorFormat int

const (
	SectorAny SectorFormat = iota
	SectorCDDA
	SectorMode1
	SectorMode2
	SectorMode2Form1
	SectorMode2Form2
	SectorMode2NoXA
)

// SectorMask selects which regions of a sector are returned by a read. The
// values match the data select field of the CD_READ packet command.
type SectorMask uint8

const (
	// MaskOther selects the sync and error correction regions.
	MaskOther SectorMask = 1 << iota
	// MaskData selects the user data region.
	MaskData
	// MaskSubheader selects the mode-2 subheader.
	MaskSubheader
	// MaskHeader selects the 4-byte sector header.
	MaskHeader
)

// DecodeSector extracts the regions selected by format and mask from a raw
// 2352-byte sector. Regions are emitted in their on-disc order. Audio
// sectors have no internal structure and are always returned whole.
func DecodeSector(raw []byte, format SectorFormat, mask SectorMask) []byte {
	if len(raw) != RawSectorSize {
		panic("raw sector must be 2352 bytes")
	}

	if format == SectorCDDA || (format == SectorAny && raw[headerOffset+3] == 0) {
		out := make([]byte, RawSectorSize)
		copy(out, raw)
		return out
	}

	mode := raw[headerOffset+3]
	dataOffset := subheaderOffset
	dataSize := Mode1DataSize

	if mode == 2 {
		dataOffset = subheaderOffset + subheaderSize
		if form2 := raw[subheaderOffset+2]&0x20 != 0; form2 {
			dataSize = Mode2Form2Size
		}
	}

	out := make([]byte, 0, RawSectorSize)

	if mask&MaskHeader != 0 {
		out = append(out, raw[headerOffset:headerOffset+headerSize]...)
	}
	if mask&MaskSubheader != 0 && mode == 2 {
		out = append(out, raw[subheaderOffset:subheaderOffset+subheaderSize]...)
	}
	if mask&MaskData != 0 {
		out = append(out, raw[dataOffset:dataOffset+dataSize]...)
	}
	if mask&MaskOther != 0 {
		out = append(out, raw[:syncSize]...)
		out = append(out, raw[dataOffset+dataSize:]...)
	}

	return out
}

// SectorSize returns the number of bytes a single sector read produces for
// the given format and mask combination.
func SectorSize(format SectorFormat, mask SectorMask) int {
	if format == SectorCDDA || format == SectorAny {
		return RawSectorSize
	}

	size := 0
	if mask&MaskHeader != 0 {
		size += headerSize
	}
	if mask&MaskData != 0 {
		switch format {
		case SectorMode2Form2:
			size += Mode2Form2Size
		default:
			size += Mode1DataSize
		}
	}
	if mask&MaskSubheader != 0 {
		switch format {
		case SectorMode2, SectorMode2Form1, SectorMode2Form2:
			size += subheaderSize
		}
	}
	if mask&MaskOther != 0 {
		size += RawSectorSize - headerSize - subheaderSize - Mode1DataSize
	}

	return size
}

// bcd converts a binary value in [0, 99] to binary-coded decimal.
func bcd(v int) byte {
	return byte(v/10<<4 | v%10)
}

// rawSector synthesizes a raw 2352-byte sector for the given frame address.
// The header carries the BCD-encoded MSF address and the mode byte; payload
// is placed in the user data region of the sector. Used by in-memory discs
// and test fixtures.
func rawSector(fad int, mode byte, payload []byte) []byte {
	raw := make([]byte, RawSectorSize)

	// 00 ff*10 00 sync pattern
	for i := 1; i < syncSize-1; i++ {
		raw[i] = 0xff
	}

	raw[headerOffset+0] = bcd(fad / (60 * FramesPerSecond))
	raw[headerOffset+1] = bcd(fad / FramesPerSecond % 60)
	raw[headerOffset+2] = bcd(fad % FramesPerSecond)
	raw[headerOffset+3] = mode

	dataOffset := subheaderOffset
	if mode == 2 {
		dataOffset += subheaderSize
	}
	copy(raw[dataOffset:], payload)

	return raw
}
