package tracing

import (
	"log"

	"github.com/sarchlab/gdrom/drive"
)

// A CommandLogger is a hook that prints every command and sector-read
// chunk a controller executes.
type CommandLogger struct {
	*log.Logger
}

// NewCommandLogger returns a CommandLogger that writes into the logger.
func NewCommandLogger(logger *log.Logger) *CommandLogger {
	return &CommandLogger{Logger: logger}
}

// Func writes the hook information into the logger.
func (l *CommandLogger) Func(ctx drive.HookCtx) {
	comp, ok := ctx.Domain.(*drive.Comp)
	if !ok {
		return
	}

	switch ctx.Pos {
	case drive.HookPosAtaCommand:
		l.Printf("%s, ata command 0x%02x", comp.Name(), ctx.Item.(int))
	case drive.HookPosSpiCommand:
		l.Printf("%s, spi command 0x%02x", comp.Name(), ctx.Item.(int))
	case drive.HookPosReadChunk:
		chunk := ctx.Item.(drive.ReadChunk)
		l.Printf("%s, read chunk fad %d, %d sectors, %d bytes",
			comp.Name(), chunk.FAD, chunk.Sectors, chunk.Bytes)
	}
}
