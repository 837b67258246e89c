package drive

// BeginDMA starts a DMA transfer of pending CD_READ data. Starting a
// transfer with no pending payload is a protocol violation.
func (c *Comp) BeginDMA() {
	if c.dma.size == 0 {
		panic("DMA transfer started with no pending payload")
	}
}

// ReadDMA copies up to len(p) bytes of CD_READ data into p and returns the
// number of bytes copied, refilling the DMA buffer from the disc when it
// runs empty. When the buffer is exhausted and no sectors remain, the
// CD_READ command completes and the drive interrupt is raised.
func (c *Comp) ReadDMA(p []byte) int {
	// try to read more if the current dma buffer has been completely
	// consumed
	if c.dma.head >= c.dma.size {
		c.cdreadChunk()
	}

	n := min(len(p), c.dma.size-c.dma.head)
	if n <= 0 {
		panic("DMA read with no data available")
	}

	copy(p, c.dma.data[c.dma.head:c.dma.head+n])
	c.dma.head += n

	if c.dma.head >= c.dma.size && c.cdr.numSectors == 0 {
		// CD_READ command is now done
		c.spiEnd()
	}

	return n
}

// EndDMA marks the end of a DMA transfer. It has no state effect.
func (c *Comp) EndDMA() {
	c.log.Printf("%s: DMA transfer end", c.name)
}
