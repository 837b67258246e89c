package drive

import "fmt"

// ATA command codes recognized by the outer protocol layer.
const (
	ataCmdNOP         = 0x00
	ataCmdSoftReset   = 0x08
	ataCmdExecDiag    = 0x90
	ataCmdPacket      = 0xa0
	ataCmdIdentifyDev = 0xec
	ataCmdSetFeatures = 0xef
)

func (c *Comp) handleAtaCommand(cmd int) {
	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosAtaCommand, Item: cmd})

	c.status.DRDY = false
	c.status.BSY = true

	// error bits represent the status of the most recent command, clear
	// before processing a new one
	c.errorReg = errorRegister{}
	c.status.CHECK = false

	readData := false

	switch cmd {
	case ataCmdNOP:
		// terminates the current command
		c.errorReg.ABRT = true
		c.status.CHECK = true

	case ataCmdSoftReset:
		c.SetDisc(c.disc)

	case ataCmdExecDiag:
		panic("ATA command EXEC_DIAG is not supported")

	case ataCmdPacket:
		readData = true

	case ataCmdIdentifyDev:
		panic("ATA command IDENTIFY_DEV is not supported")

	case ataCmdSetFeatures:
		// transfer mode settings are ignored

	default:
		panic(fmt.Sprintf("unsupported ATA command 0x%02x", cmd))
	}

	if readData {
		c.pio.head = 0

		c.ireason.CoD = true
		c.ireason.IO = false
		c.status.DRQ = true
		c.status.BSY = false

		c.state = StateReadAtaData
	} else {
		c.ataEnd()
	}
}

func (c *Comp) ataEnd() {
	c.status.DRDY = true
	c.status.BSY = false

	c.irq.Raise()

	c.state = StateReadCommand

	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosCommandComplete})
}
