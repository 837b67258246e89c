package drive

import (
	"fmt"

	"github.com/sarchlab/gdrom/disc"
)

// SPI packet command codes, the inner protocol layer. Each command is a
// 12-byte packet delivered over PIO after an ATA PACKET_CMD.
const (
	spiCmdTestUnit = 0x00
	spiCmdReqStat  = 0x10
	spiCmdReqMode  = 0x11
	spiCmdSetMode  = 0x12
	spiCmdReqError = 0x13
	spiCmdGetTOC   = 0x14
	spiCmdReqSes   = 0x15
	spiCmdCDOpen   = 0x16
	spiCmdCDPlay   = 0x20
	spiCmdCDSeek   = 0x21
	spiCmdCDScan   = 0x22
	spiCmdCDRead   = 0x30
	spiCmdCDRead2  = 0x31
	spiCmdGetSCD   = 0x40
	spiCmdChkSecu  = 0x70
	spiCmdReqSecu  = 0x71
)

// CD_SEEK parameter types, packet byte 1 low nibble.
const (
	seekParamFAD   = 1
	seekParamMSF   = 2
	seekParamStop  = 3
	seekParamPause = 4
)

func (c *Comp) handleSpiCommand(arg int) {
	packet := make([]byte, spiCommandSize)
	copy(packet, c.pio.data[:spiCommandSize])
	cmd := packet[0]

	c.InvokeHook(HookCtx{
		Domain: c,
		Pos:    HookPosSpiCommand,
		Item:   int(cmd),
		Detail: packet,
	})

	c.status.DRQ = false
	c.status.BSY = true

	switch cmd {
	// packet command flow for pio data to host
	case spiCmdReqStat:
		offset := int(packet[2])
		size := int(packet[4])

		stat := c.statusBlock()
		c.spiWriteToHost(stat[offset : offset+size])

	case spiCmdReqMode:
		offset := int(packet[2])
		size := int(packet[4])

		c.spiWriteToHost(c.hwInfo[offset : offset+size])

	case spiCmdReqError:
		size := int(packet[4])

		errBlock := c.errorBlock()
		c.spiWriteToHost(errBlock[:size])

	case spiCmdGetTOC:
		area := disc.Area(packet[1] & 0x1)
		size := int(packet[3])<<8 | int(packet[4])

		// an oversized allocation length is clamped to the block
		toc := c.tocBlock(area)
		c.spiWriteToHost(toc[:min(size, len(toc))])

	case spiCmdReqSes:
		session := int(packet[2])

		// the reply is always the full session block, the requested
		// size is ignored
		ses := c.sessionBlock(session)
		c.spiWriteToHost(ses[:])

	case spiCmdGetSCD:
		format := packet[1] & 0xf
		size := int(packet[3])<<8 | int(packet[4])

		scd := c.subcodeBlock(format)
		c.spiWriteToHost(scd[:min(size, len(scd))])

	// sector streaming
	case spiCmdCDRead:
		msf := packet[1]&0x1 != 0

		c.cdr = cdreadState{
			dma:         c.features.DMA,
			format:      disc.SectorFormat((packet[1] & 0xe) >> 1),
			mask:        disc.SectorMask(packet[1] >> 4),
			firstSector: DecodeFAD(packet[2], packet[3], packet[4], msf),
			numSectors:  int(packet[8])<<16 | int(packet[9])<<8 | int(packet[10]),
		}

		c.cdreadChunk()

	case spiCmdCDRead2:
		panic("SPI command CD_READ2 is not supported")

	// packet command flow for pio data from host
	case spiCmdSetMode:
		offset := int(packet[2])
		size := int(packet[4])

		c.spiReadFromHost(offset, size)

	// non-data commands
	case spiCmdTestUnit:
		c.spiEnd()

	case spiCmdCDOpen:
		panic("SPI command CD_OPEN is not supported")

	case spiCmdCDPlay:
		c.log.Printf("%s: ignoring CD_PLAY", c.name)

		c.sectnum.Status = StatusPause

		c.spiEnd()

	case spiCmdCDSeek:
		c.log.Printf("%s: ignoring CD_SEEK", c.name)

		switch packet[1] & 0xf {
		case seekParamFAD, seekParamMSF, seekParamPause:
			c.sectnum.Status = StatusPause
		case seekParamStop:
			c.sectnum.Status = StatusStandby
		}

		c.spiEnd()

	case spiCmdCDScan:
		c.log.Printf("%s: ignoring CD_SCAN", c.name)

		c.sectnum.Status = StatusPause

		c.spiEnd()

	// CHK_SECU and REQ_SECU are part of an undocumented security check.
	// The check has no observable side effects; a canned response is
	// sent when the results are requested.
	case spiCmdChkSecu:
		c.spiEnd()

	case spiCmdReqSecu:
		c.spiWriteToHost(securityReply)

	default:
		panic(fmt.Sprintf("unsupported SPI command 0x%02x", cmd))
	}
}

// spiWriteToHost starts a PIO transfer of response data to the host.
func (c *Comp) spiWriteToHost(data []byte) {
	c.cdr.numSectors = 0

	if len(data) >= bufferSize {
		panic("response does not fit the PIO buffer")
	}
	copy(c.pio.data[:], data)
	c.pio.size = len(data)
	c.pio.head = 0

	c.byteCount = uint16(c.pio.size)
	c.ireason.IO = true
	c.ireason.CoD = false
	c.status.DRQ = true
	c.status.BSY = false

	c.irq.Raise()

	c.state = StateWriteSpiData
}

// spiReadFromHost starts a PIO transfer of payload data from the host into
// the PIO buffer, to be committed by a later SpiData event.
func (c *Comp) spiReadFromHost(offset, size int) {
	c.cdr.numSectors = 0

	c.pio.head = 0
	c.pio.size = size
	c.pio.offset = offset

	c.byteCount = uint16(size)
	c.ireason.IO = true
	c.ireason.CoD = false
	c.status.DRQ = true
	c.status.BSY = false

	c.irq.Raise()

	c.state = StateReadSpiData
}

// handleSpiData commits a completed data-from-host transfer. Only SET_MODE
// transfers data to the drive; the payload lands in the hardware info
// block at the requested offset.
func (c *Comp) handleSpiData(arg int) {
	copy(c.hwInfo[c.pio.offset:], c.pio.data[:c.pio.size])

	c.spiEnd()
}

// spiEnd completes a packet command and returns to the command-read state.
func (c *Comp) spiEnd() {
	c.ireason.IO = true
	c.ireason.CoD = true
	c.status.DRDY = true
	c.status.BSY = false
	c.status.DRQ = false

	c.irq.Raise()

	c.state = StateReadCommand

	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosCommandComplete})
}
