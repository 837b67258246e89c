package disc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// A GDI disc is backed by a ".gdi" track sheet and the raw track files it
// references. Sheets look like:
//
//	3
//	1     0 4 2352 track01.bin 0
//	2   756 0 2352 track02.raw 0
//	3 45000 4 2352 track03.bin 0
//
// with one line per track: track number, LBA, control bits, sector size,
// file name and a byte offset into the file.
type GDI struct {
	meta     Meta
	tracks   []gdiTrack
	sessions []Session
}

type gdiTrack struct {
	Track

	file       *os.File
	fileOffset int64
	sectorSize int
	mode       byte
}

// LoadGDI opens a GDI image. Track files are resolved relative to the
// directory of the sheet and stay open until Close is called.
func LoadGDI(path string) (*GDI, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := &GDI{}
	if err := d.parse(f, filepath.Dir(path)); err != nil {
		d.Close()
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := d.buildSessions(); err != nil {
		d.Close()
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	d.readMeta()

	return d, nil
}

func (d *GDI) parse(f *os.File, dir string) error {
	sc := bufio.NewScanner(f)

	if !sc.Scan() {
		return fmt.Errorf("missing track count")
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || count <= 0 {
		return fmt.Errorf("bad track count %q", sc.Text())
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		t, err := parseTrackLine(line, dir)
		if err != nil {
			return err
		}
		d.tracks = append(d.tracks, t)
	}
	if err := sc.Err(); err != nil {
		return err
	}

	if len(d.tracks) != count {
		return fmt.Errorf("sheet declares %d tracks, found %d",
			count, len(d.tracks))
	}

	return nil
}

func parseTrackLine(line, dir string) (gdiTrack, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return gdiTrack{}, fmt.Errorf("bad track line %q", line)
	}

	num, err0 := strconv.Atoi(fields[0])
	lba, err1 := strconv.Atoi(fields[1])
	ctrl, err2 := strconv.Atoi(fields[2])
	secSize, err3 := strconv.Atoi(fields[3])
	offset, err4 := strconv.ParseInt(fields[5], 10, 64)
	for _, err := range []error{err0, err1, err2, err3, err4} {
		if err != nil {
			return gdiTrack{}, fmt.Errorf("bad track line %q: %w", line, err)
		}
	}

	if secSize != RawSectorSize && secSize != Mode1DataSize {
		return gdiTrack{}, fmt.Errorf("unsupported sector size %d", secSize)
	}

	file, err := os.Open(filepath.Join(dir, fields[4]))
	if err != nil {
		return gdiTrack{}, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return gdiTrack{}, err
	}

	mode := byte(1)
	if ctrl == 0 {
		mode = 0
	}

	return gdiTrack{
		Track: Track{
			Num:        num,
			FAD:        lba + Pregap,
			ADR:        1,
			Ctrl:       uint8(ctrl),
			NumSectors: int((info.Size() - offset) / int64(secSize)),
		},
		file:       file,
		fileOffset: offset,
		sectorSize: secSize,
		mode:       mode,
	}, nil
}

func (d *GDI) buildSessions() error {
	split := len(d.tracks)
	for i, t := range d.tracks {
		if t.FAD >= HighDensityFAD {
			split = i
			break
		}
	}

	if split == 0 {
		return fmt.Errorf("first track lies in the high density area")
	}

	d.sessions = append(d.sessions, makeGDISession(d.tracks[:split]))
	if split < len(d.tracks) {
		d.sessions = append(d.sessions, makeGDISession(d.tracks[split:]))
	}

	return nil
}

func makeGDISession(tracks []gdiTrack) Session {
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

// readMeta decodes the boot header of the first data track of the last
// session: product number at 0x40, version at 0x4a, software name at 0x80.
func (d *GDI) readMeta() {
	ses := d.sessions[len(d.sessions)-1]
	header := d.ReadSector(d.Track(ses.FirstTrack).FAD, SectorMode1, MaskData)
	if len(header) < 0x100 {
		return
	}

	d.meta = Meta{
		ID:      trimField(header[0x40:0x4a]),
		Version: trimField(header[0x4a:0x50]),
		Name:    trimField(header[0x80:0x100]),
	}
}

// trimField strips the padding of a boot-header field. Mastered images pad
// with spaces, extracted ones often with NULs.
func trimField(b []byte) string {
	return strings.Trim(string(b), " \x00")
}

// Meta returns the identity strings decoded from the boot header.
func (d *GDI) Meta() Meta { return d.meta }

// Format returns the disc format. GDI images with two density areas are
// GD-ROMs; single-area sheets are plain CD-ROMs.
func (d *GDI) Format() Format {
	if len(d.sessions) == 2 {
		return FormatGDROM
	}
	return FormatCDROM
}

// NumSessions returns the number of sessions.
func (d *GDI) NumSessions() int { return len(d.sessions) }

// Session returns the n-th session, 1-based.
func (d *GDI) Session(n int) Session { return d.sessions[n-1] }

// NumTracks returns the number of tracks.
func (d *GDI) NumTracks() int { return len(d.tracks) }

// Track returns the track with the given number.
func (d *GDI) Track(num int) Track { return d.tracks[num-1].Track }

// TOC returns the table of contents of one disc area.
func (d *GDI) TOC(area Area) TOC {
	ses := d.sessions[0]
	if area == AreaHighDensity {
		if len(d.sessions) < 2 {
			panic("disc has no high density area")
		}
		ses = d.sessions[len(d.sessions)-1]
	}

	last := ses.FirstTrack
	for _, t := range d.tracks[ses.FirstTrack-1:] {
		if t.FAD >= ses.LeadoutFAD {
			break
		}
		last = t.Num
	}

	return TOC{
		FirstTrack: d.tracks[ses.FirstTrack-1].Track,
		LastTrack:  d.tracks[last-1].Track,
		LeadinFAD:  ses.LeadinFAD,
		LeadoutFAD: ses.LeadoutFAD,
	}
}

// ReadSector reads and decodes one sector from the backing track file.
// Reads outside every track return a zero-filled sector.
func (d *GDI) ReadSector(fad int, format SectorFormat, mask SectorMask) []byte {
	t := d.trackAt(fad)
	if t == nil {
		return DecodeSector(rawSector(fad, 1, nil), format, mask)
	}

	buf := make([]byte, t.sectorSize)
	pos := t.fileOffset + int64(fad-t.FAD)*int64(t.sectorSize)
	if _, err := t.file.ReadAt(buf, pos); err != nil {
		return DecodeSector(rawSector(fad, 1, nil), format, mask)
	}

	if t.mode == 0 {
		// audio sectors have no internal structure
		return buf
	}

	if t.sectorSize == Mode1DataSize {
		// data-only track file, rebuild the sector around it
		return DecodeSector(rawSector(fad, 1, buf), format, mask)
	}

	return DecodeSector(buf, format, mask)
}

func (d *GDI) trackAt(fad int) *gdiTrack {
	for i := range d.tracks {
		t := &d.tracks[i]
		if fad >= t.FAD && fad < t.EndFAD() {
			return t
		}
	}
	return nil
}

// Close closes all backing track files.
func (d *GDI) Close() error {
	var firstErr error
	for _, t := range d.tracks {
		if t.file == nil {
			continue
		}
		if err := t.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
