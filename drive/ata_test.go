package drive

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gdrom/disc"
)

var _ = Describe("ATA command layer", func() {
	var (
		line *fakeLine
		c    *Comp
	)

	BeforeEach(func() {
		line = &fakeLine{}
		c = MakeBuilder().
			WithInterruptLine(line).
			WithDisc(testDisc(4)).
			Build("GDROM")
	})

	It("should abort a NOP", func() {
		c.WriteRegister(RegStatusCommand, ataCmdNOP)

		status := c.ReadRegister(RegAltStatusDevCtrl)
		Expect(status & (1 << 0)).NotTo(BeZero(), "CHECK")
		Expect(status & (1 << 6)).NotTo(BeZero(), "DRDY")
		Expect(c.ReadRegister(RegErrorFeatures)).To(Equal(uint16(1 << 2)))
		Expect(c.State()).To(Equal(StateReadCommand))
		Expect(line.raised).To(Equal(1))
	})

	It("should clear error state on the next command", func() {
		c.WriteRegister(RegStatusCommand, ataCmdNOP)
		c.WriteRegister(RegStatusCommand, ataCmdSetFeatures)

		Expect(c.ReadRegister(RegErrorFeatures)).To(Equal(uint16(0)))
		Expect(c.ReadRegister(RegAltStatusDevCtrl) & (1 << 0)).To(BeZero())
	})

	It("should soft reset the protocol state", func() {
		c.WriteRegister(RegByteCountLo, 0xff)
		c.WriteRegister(RegStatusCommand, ataCmdPacket)
		Expect(c.State()).To(Equal(StateReadAtaData))

		c.WriteRegister(RegStatusCommand, ataCmdSoftReset)

		Expect(c.State()).To(Equal(StateReadCommand))
		Expect(c.ReadRegister(RegByteCountLo)).To(Equal(uint16(0)))
		Expect(c.ReadRegister(RegSectorNumber) & 0xf).
			To(Equal(uint16(StatusPause)))
	})

	It("should keep the disc across a soft reset", func() {
		c.WriteRegister(RegStatusCommand, ataCmdSoftReset)

		Expect(c.ReadRegister(RegSectorNumber) >> 4).
			To(Equal(uint16(disc.FormatGDROM)))
	})

	It("should enter the packet phase on PACKET_CMD", func() {
		c.WriteRegister(RegStatusCommand, ataCmdPacket)

		Expect(c.State()).To(Equal(StateReadAtaData))
		Expect(c.ReadRegister(RegInterruptReason)).To(Equal(uint16(1)),
			"CoD set, IO clear")
		Expect(c.ReadRegister(RegAltStatusDevCtrl) & (1 << 3)).NotTo(BeZero(),
			"DRQ")
		Expect(line.raised).To(BeZero(),
			"the packet phase starts without an interrupt")
	})

	It("should panic on diagnostic commands", func() {
		Expect(func() {
			c.WriteRegister(RegStatusCommand, ataCmdExecDiag)
		}).To(Panic())
	})

	It("should panic on IDENTIFY_DEV", func() {
		Expect(func() {
			c.WriteRegister(RegStatusCommand, ataCmdIdentifyDev)
		}).To(Panic())
	})

	It("should panic on unknown commands", func() {
		Expect(func() {
			c.WriteRegister(RegStatusCommand, 0x42)
		}).To(Panic())
	})
})
