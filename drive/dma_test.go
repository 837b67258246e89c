package drive

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gdrom/disc"
)

var _ = Describe("DMA transfer", func() {
	var (
		line *fakeLine
		c    *Comp
	)

	BeforeEach(func() {
		line = &fakeLine{}
		c = MakeBuilder().
			WithInterruptLine(line).
			WithDisc(testDisc(30)).
			Build("GDROM")
	})

	startDMARead := func(numSectors int) {
		c.WriteRegister(RegErrorFeatures, 1) // DMA mode
		sendPacket(c, []byte{
			spiCmdCDRead, 0x24, 0, 0, 150, 0, 0, 0,
			byte(numSectors >> 16), byte(numSectors >> 8), byte(numSectors),
			0,
		})
	}

	It("should panic when no payload is pending", func() {
		Expect(func() {
			c.BeginDMA()
		}).To(Panic())
	})

	It("should hold the data phase without an interrupt", func() {
		startDMARead(2)

		Expect(c.State()).To(Equal(StateWriteDmaData))
		Expect(line.raised).To(BeZero())
	})

	It("should clamp a read to the data available", func() {
		startDMARead(1)
		c.BeginDMA()

		buf := make([]byte, 2*disc.Mode1DataSize)
		Expect(c.ReadDMA(buf)).To(Equal(disc.Mode1DataSize))
	})

	It("should stream a multi-chunk read through the pump", func() {
		startDMARead(30)
		c.BeginDMA()

		out := []byte{}
		buf := make([]byte, 4096)
		for c.State() == StateWriteDmaData {
			n := c.ReadDMA(buf)
			out = append(out, buf[:n]...)
		}
		c.EndDMA()

		want := make([]byte, 30*disc.Mode1DataSize)
		for i := range want {
			want[i] = byte(i * 7)
		}
		Expect(out).To(Equal(want))

		Expect(c.State()).To(Equal(StateReadCommand))
		Expect(c.ReadRegister(RegInterruptReason)).To(Equal(uint16(3)))
		Expect(line.raised).To(Equal(1),
			"the transfer completes with a single interrupt")
	})

	It("should panic on a read past the end of the transfer", func() {
		startDMARead(1)
		c.BeginDMA()

		buf := make([]byte, disc.Mode1DataSize)
		c.ReadDMA(buf)

		Expect(func() {
			c.ReadDMA(buf)
		}).To(Panic())
	})
})
