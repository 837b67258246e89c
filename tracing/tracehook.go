package tracing

import (
	"github.com/rs/xid"

	"github.com/sarchlab/gdrom/drive"
)

// traceHook adapts a controller's hook positions into Tracer calls. A
// packet command is treated as a refinement of the ATA PACKET_CMD that
// carried it, so only the innermost command is reported.
type traceHook struct {
	comp   *drive.Comp
	tracer Tracer

	current *Command
}

// CollectTraces hooks a controller up with a tracer so that the tracer
// sees every command the controller executes.
func CollectTraces(comp *drive.Comp, tracer Tracer) {
	comp.AcceptHook(&traceHook{
		comp:   comp,
		tracer: tracer,
	})
}

// Func reacts to the controller's hook positions.
func (h *traceHook) Func(ctx drive.HookCtx) {
	switch ctx.Pos {
	case drive.HookPosAtaCommand:
		h.startCommand(Command{
			ID:    xid.New().String(),
			Where: h.comp.Name(),
			Kind:  "ata",
			Code:  ctx.Item.(int),
		})

	case drive.HookPosSpiCommand:
		h.startCommand(Command{
			ID:     xid.New().String(),
			Where:  h.comp.Name(),
			Kind:   "spi",
			Code:   ctx.Item.(int),
			Packet: ctx.Detail.([]byte),
		})

	case drive.HookPosReadChunk:
		if h.current == nil {
			return
		}

		chunk := ctx.Item.(drive.ReadChunk)
		h.tracer.AddChunk(Chunk{
			CommandID: h.current.ID,
			FAD:       chunk.FAD,
			Sectors:   chunk.Sectors,
			Bytes:     chunk.Bytes,
			DMA:       chunk.DMA,
		})

	case drive.HookPosCommandComplete:
		if h.current == nil {
			return
		}

		h.tracer.EndCommand(*h.current)
		h.current = nil
	}
}

func (h *traceHook) startCommand(cmd Command) {
	h.current = &cmd
	h.tracer.StartCommand(cmd)
}
