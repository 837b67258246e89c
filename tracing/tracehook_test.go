package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gdrom/disc"
	"github.com/sarchlab/gdrom/drive"
)

type nopLine struct{}

func (nopLine) Raise() {}
func (nopLine) Clear() {}

// captureTracer records every tracer call for inspection.
type captureTracer struct {
	started []Command
	chunks  []Chunk
	ended   []Command
}

func (t *captureTracer) StartCommand(cmd Command) {
	t.started = append(t.started, cmd)
}

func (t *captureTracer) AddChunk(chunk Chunk) {
	t.chunks = append(t.chunks, chunk)
}

func (t *captureTracer) EndCommand(cmd Command) {
	t.ended = append(t.ended, cmd)
}

func sendPacket(c *drive.Comp, packet []byte) {
	c.WriteRegister(drive.RegStatusCommand, 0xa0)
	for i := 0; i < len(packet); i += 2 {
		c.WriteRegister(drive.RegData,
			uint16(packet[i])|uint16(packet[i+1])<<8)
	}
}

func drainResponse(c *drive.Comp) {
	for c.State() == drive.StateWriteSpiData {
		c.ReadRegister(drive.RegData)
	}
}

var _ = Describe("TraceHook", func() {
	var (
		c      *drive.Comp
		tracer *captureTracer
	)

	BeforeEach(func() {
		d := disc.MakeMemoryBuilder().
			WithDataTrack(150, make([]byte, 4*disc.Mode1DataSize)).
			WithDataTrack(disc.HighDensityFAD, make([]byte, disc.Mode1DataSize)).
			Build()

		c = drive.MakeBuilder().
			WithInterruptLine(nopLine{}).
			WithDisc(d).
			Build("GDROM")

		tracer = &captureTracer{}
		CollectTraces(c, tracer)
	})

	It("should trace a bare ATA command", func() {
		c.WriteRegister(drive.RegStatusCommand, 0x00) // NOP

		Expect(tracer.started).To(HaveLen(1))
		Expect(tracer.started[0].Kind).To(Equal("ata"))
		Expect(tracer.started[0].Code).To(Equal(0x00))
		Expect(tracer.started[0].Where).To(Equal("GDROM"))

		Expect(tracer.ended).To(HaveLen(1))
		Expect(tracer.ended[0].ID).To(Equal(tracer.started[0].ID))
	})

	It("should report only the packet command of a PACKET_CMD", func() {
		sendPacket(c, []byte{
			0x00, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // TEST_UNIT
		})

		Expect(tracer.started).To(HaveLen(2))
		Expect(tracer.started[0].Kind).To(Equal("ata"))
		Expect(tracer.started[1].Kind).To(Equal("spi"))
		Expect(tracer.started[1].Packet).To(HaveLen(12))

		Expect(tracer.ended).To(HaveLen(1))
		Expect(tracer.ended[0].Kind).To(Equal("spi"))
		Expect(tracer.ended[0].ID).To(Equal(tracer.started[1].ID))
	})

	It("should attach read chunks to their command", func() {
		sendPacket(c, []byte{
			0x30, 0x24, 0, 0, 150, 0, 0, 0, 0, 0, 2, 0, // CD_READ
		})
		drainResponse(c)

		Expect(tracer.chunks).To(HaveLen(1))
		Expect(tracer.chunks[0].FAD).To(Equal(150))
		Expect(tracer.chunks[0].Sectors).To(Equal(2))
		Expect(tracer.chunks[0].Bytes).To(Equal(2 * disc.Mode1DataSize))
		Expect(tracer.chunks[0].DMA).To(BeFalse())
		Expect(tracer.chunks[0].CommandID).To(Equal(tracer.started[1].ID))
	})

	It("should assign distinct IDs to successive commands", func() {
		c.WriteRegister(drive.RegStatusCommand, 0x00)
		c.WriteRegister(drive.RegStatusCommand, 0x00)

		Expect(tracer.started).To(HaveLen(2))
		Expect(tracer.started[0].ID).NotTo(Equal(tracer.started[1].ID))
	})
})
