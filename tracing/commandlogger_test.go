package tracing

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gdrom/disc"
	"github.com/sarchlab/gdrom/drive"
)

var _ = Describe("CommandLogger", func() {
	var (
		buf *bytes.Buffer
		c   *drive.Comp
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

		buf = &bytes.Buffer{}
		c.AcceptHook(NewCommandLogger(log.New(buf, "", 0)))
	})

	It("should log ATA commands", func() {
		c.WriteRegister(drive.RegStatusCommand, 0x00) // NOP

		Expect(buf.String()).To(ContainSubstring("GDROM, ata command 0x00"))
	})

	It("should log packet commands and read chunks", func() {
		sendPacket(c, []byte{
			0x30, 0x24, 0, 0, 150, 0, 0, 0, 0, 0, 1, 0, // CD_READ
		})
		drainResponse(c)

		Expect(buf.String()).To(ContainSubstring("spi command 0x30"))
		Expect(buf.String()).To(ContainSubstring(
			"read chunk fad 150, 1 sectors, 2048 bytes"))
	})
})
