package disc

// A Memory disc keeps its whole track layout and payload in memory. It is
// the disc implementation used by tests and examples.
type Memory struct {
	meta     Meta
	format   Format
	tracks   []memoryTrack
	sessions []Session
}

type memoryTrack struct {
	Track

	mode    byte
	payload []byte
	perSec  int
}

// MemoryBuilder builds in-memory discs.
type MemoryBuilder struct {
	meta   Meta
	format Format
	tracks []memoryTrack
}

// MakeMemoryBuilder creates a MemoryBuilder with default parameters.
func MakeMemoryBuilder() MemoryBuilder {
	return MemoryBuilder{
		format: FormatGDROM,
	}
}

// WithMeta sets the identity strings of the disc.
func (b MemoryBuilder) WithMeta(m Meta) MemoryBuilder {
	b.meta = m
	return b
}

// WithFormat sets the disc format.
func (b MemoryBuilder) WithFormat(f Format) MemoryBuilder {
	b.format = f
	return b
}

// WithDataTrack adds a mode-1 data track starting at the given frame
// address. The payload is split into 2048-byte sectors, zero padded.
func (b MemoryBuilder) WithDataTrack(fad int, payload []byte) MemoryBuilder {
	b.tracks = append(b.tracks, memoryTrack{
		Track: Track{
			Num:        len(b.tracks) + 1,
			FAD:        fad,
			ADR:        1,
			Ctrl:       4,
			NumSectors: numSectors(len(payload), Mode1DataSize),
		},
		mode:    1,
		payload: payload,
		perSec:  Mode1DataSize,
	})
	return b
}

// WithAudioTrack adds an audio track starting at the given frame address.
// The payload is split into raw 2352-byte sectors.
func (b MemoryBuilder) WithAudioTrack(fad int, payload []byte) MemoryBuilder {
	b.tracks = append(b.tracks, memoryTrack{
		Track: Track{
			Num:        len(b.tracks) + 1,
			FAD:        fad,
			ADR:        1,
			Ctrl:       0,
			NumSectors: numSectors(len(payload), RawSectorSize),
		},
		mode:    0,
		payload: payload,
		perSec:  RawSectorSize,
	})
	return b
}

// Build creates the disc. Tracks must have been added in ascending frame
// address order. GD-ROM discs are split into two sessions at the high
// density boundary; other formats carry a single session.
func (b MemoryBuilder) Build() *Memory {
	if len(b.tracks) == 0 {
		panic("a disc must have at least one track")
	}

	d := &Memory{
		meta:   b.meta,
		format: b.format,
		tracks: b.tracks,
	}

	if b.format == FormatGDROM {
		split := len(b.tracks)
		for i, t := range b.tracks {
			if t.FAD >= HighDensityFAD {
				split = i
				break
			}
		}
		if split == 0 || split == len(b.tracks) {
			panic("a GD-ROM needs tracks in both density areas")
		}

		d.sessions = []Session{
			makeSession(b.tracks[:split]),
			makeSession(b.tracks[split:]),
		}
	} else {
		d.sessions = []Session{makeSession(b.tracks)}
	}

	return d
}

func makeSession(tracks []memoryTrack) Session {
	first := tracks[0]
	last := tracks[len(tracks)-1]

	leadin := first.FAD - Pregap
	if leadin < 0 {
		leadin = 0
	}

	return Session{
		FirstTrack: first.Num,
		LeadinFAD:  leadin,
		LeadoutFAD: last.EndFAD(),
	}
}

func numSectors(payloadLen, perSector int) int {
	return (payloadLen + perSector - 1) / perSector
}

// Meta returns the identity strings of the disc.
func (d *Memory) Meta() Meta { return d.meta }

// Format returns the disc format.
func (d *Memory) Format() Format { return d.format }

// NumSessions returns the number of sessions.
func (d *Memory) NumSessions() int { return len(d.sessions) }

// Session returns the n-th session, 1-based.
func (d *Memory) Session(n int) Session { return d.sessions[n-1] }

// NumTracks returns the number of tracks.
func (d *Memory) NumTracks() int { return len(d.tracks) }

// Track returns the track with the given number.
func (d *Memory) Track(num int) Track { return d.tracks[num-1].Track }

// TOC returns the table of contents of one disc area.
func (d *Memory) TOC(area Area) TOC {
	ses := d.sessions[0]
	if area == AreaHighDensity {
		if len(d.sessions) < 2 {
			panic("disc has no high density area")
		}
		ses = d.sessions[len(d.sessions)-1]
	}

	firstNum := ses.FirstTrack
	lastNum := d.lastTrackOfSession(ses)

	return TOC{
		FirstTrack: d.tracks[firstNum-1].Track,
		LastTrack:  d.tracks[lastNum-1].Track,
		LeadinFAD:  ses.LeadinFAD,
		LeadoutFAD: ses.LeadoutFAD,
	}
}

func (d *Memory) lastTrackOfSession(ses Session) int {
	last := ses.FirstTrack
	for _, t := range d.tracks[ses.FirstTrack-1:] {
		if t.FAD >= ses.LeadoutFAD {
			break
		}
		last = t.Num
	}
	return last
}

// ReadSector reads and decodes one sector. Reads outside every track
// return a zero-filled sector of the requested shape.
func (d *Memory) ReadSector(fad int, format SectorFormat, mask SectorMask) []byte {
	t := d.trackAt(fad)
	if t == nil {
		return DecodeSector(rawSector(fad, 1, nil), format, mask)
	}

	index := fad - t.FAD
	start := index * t.perSec
	end := min(start+t.perSec, len(t.payload))
	payload := t.payload[start:end]

	if t.mode == 0 {
		// audio sectors have no internal structure
		raw := make([]byte, RawSectorSize)
		copy(raw, payload)
		return raw
	}

	return DecodeSector(rawSector(fad, t.mode, payload), format, mask)
}

func (d *Memory) trackAt(fad int) *memoryTrack {
	for i := range d.tracks {
		t := &d.tracks[i]
		if fad >= t.FAD && fad < t.EndFAD() {
			return t
		}
	}
	return nil
}

// Close implements Disc. Memory discs hold no external resources.
func (d *Memory) Close() error { return nil }
