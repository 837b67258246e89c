package drive

// handlePioWrite runs after each 16-bit write to the data register. A full
// command packet dispatches the packet processor; a full data-from-host
// payload dispatches the deferred commit.
func (c *Comp) handlePioWrite(arg int) {
	if c.state == StateReadAtaData && c.pio.head == spiCommandSize {
		c.event(EventSpiCommand, 0)
	} else if c.state == StateReadSpiData && c.pio.head == c.pio.size {
		c.event(EventSpiData, 0)
	}
}

// handlePioRead runs after each 16-bit read from the data register. On
// exhaustion the transfer either continues with the next CD_READ chunk or
// completes the packet command.
func (c *Comp) handlePioRead(arg int) {
	// odd-sized responses are padded to the next 16-bit word
	if c.pio.head < c.pio.size {
		return
	}

	if c.cdr.numSectors > 0 {
		c.cdreadChunk()
	} else {
		c.spiEnd()
	}
}
