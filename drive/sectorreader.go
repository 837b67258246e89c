package drive

import (
	"io"

	"github.com/sarchlab/gdrom/disc"
)

// maxChunkSectors is the transfer buffer capacity in sectors, conservative
// against the largest possible sector read.
const maxChunkSectors = bufferSize / disc.RawSectorSize

// A ReadChunk describes one chunk of CD_READ data produced by the sector
// reader. It is reported through HookPosReadChunk.
type ReadChunk struct {
	FAD     int
	Sectors int
	Bytes   int
	DMA     bool
}

// readSectors reads numSectors sectors starting at fad into dst, decoding
// each per the session's sector format and mask, and returns the number of
// bytes produced. With no disc attached it reads nothing and logs a
// warning; the guest observes the condition through the drive status.
func (c *Comp) readSectors(fad, numSectors int, dst []byte) int {
	if c.disc == nil {
		c.log.Printf("%s: sector read failed, no disc", c.name)
		return 0
	}

	read := 0

	for i := fad; i < fad+numSectors; i++ {
		sector := c.disc.ReadSector(i, c.cdr.format, c.cdr.mask)
		if read+len(sector) > len(dst) {
			panic("sector read overflows the transfer buffer")
		}

		copy(dst[read:], sector)
		read += len(sector)
	}

	return read
}

// ReadSectorsTo decodes numSectors sectors starting at fad and writes them
// to w, bypassing the protocol state machine. It backs host-side tooling
// that wants disc data without driving the register interface.
func (c *Comp) ReadSectorsTo(
	w io.Writer,
	fad, numSectors int,
	format disc.SectorFormat,
	mask disc.SectorMask,
) (int, error) {
	if c.disc == nil {
		c.log.Printf("%s: sector read failed, no disc", c.name)
		return 0, nil
	}

	written := 0

	for i := fad; i < fad+numSectors; i++ {
		n, err := w.Write(c.disc.ReadSector(i, format, mask))
		written += n
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

// cdreadChunk produces the next chunk of an in-progress CD_READ: as many
// sectors as fit the target buffer. In DMA mode the chunk only fills the
// DMA buffer and the phase ends silently, completion is driven by the
// external pump. In PIO mode the chunk is handed to the host through the
// data register.
func (c *Comp) cdreadChunk() {
	numSectors := min(c.cdr.numSectors, maxChunkSectors)
	fad := c.cdr.firstSector

	if c.cdr.dma {
		c.dma.size = c.readSectors(fad, numSectors, c.dma.data[:])
		c.dma.head = 0

		c.cdr.firstSector += numSectors
		c.cdr.numSectors -= numSectors

		// controller state won't advance until the DMA transfer
		// completes
		c.state = StateWriteDmaData

		c.InvokeHook(HookCtx{
			Domain: c,
			Pos:    HookPosReadChunk,
			Item:   ReadChunk{FAD: fad, Sectors: numSectors, Bytes: c.dma.size, DMA: true},
		})

		return
	}

	c.pio.size = c.readSectors(fad, numSectors, c.pio.data[:])
	c.pio.head = 0

	c.cdr.firstSector += numSectors
	c.cdr.numSectors -= numSectors

	c.byteCount = uint16(c.pio.size)
	c.ireason.IO = true
	c.ireason.CoD = false
	c.status.DRQ = true
	c.status.BSY = false

	c.irq.Raise()

	c.state = StateWriteSpiData

	c.InvokeHook(HookCtx{
		Domain: c,
		Pos:    HookPosReadChunk,
		Item:   ReadChunk{FAD: fad, Sectors: numSectors, Bytes: c.pio.size, DMA: false},
	})
}
