package drive

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/gdrom/disc"
)

var _ = Describe("CD_READ chunking", func() {
	var (
		mockCtrl *gomock.Controller
		mockDisc *MockDisc
		line     *fakeLine
		c        *Comp
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockDisc = NewMockDisc(mockCtrl)
		mockDisc.EXPECT().Meta().Return(disc.Meta{}).AnyTimes()
		mockDisc.EXPECT().Format().Return(disc.FormatGDROM).AnyTimes()

		line = &fakeLine{}
		c = MakeBuilder().
			WithInterruptLine(line).
			WithDisc(mockDisc).
			Build("GDROM")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should split a long read into buffer-sized chunks", func() {
		fads := []int{}
		mockDisc.EXPECT().
			ReadSector(gomock.Any(), disc.SectorMode1, disc.MaskData).
			DoAndReturn(func(fad int, _ disc.SectorFormat, _ disc.SectorMask) []byte {
				fads = append(fads, fad)
				return make([]byte, disc.Mode1DataSize)
			}).
			Times(30)

		sendPacket(c, []byte{
			spiCmdCDRead, 0x24, 0, 0x12, 0x34, 0, 0, 0, 0, 0, 30, 0,
		})

		// first chunk fills the transfer buffer with 27 sectors
		Expect(c.ReadRegister(RegByteCountLo) |
			c.ReadRegister(RegByteCountHi)<<8).
			To(Equal(uint16(27 * disc.Mode1DataSize)))
		Expect(line.raised).To(Equal(1))

		drained := len(readResponse(c))

		// draining the first chunk starts the second one
		Expect(c.State()).To(Equal(StateWriteSpiData))
		Expect(line.raised).To(Equal(2))
		Expect(c.ReadRegister(RegByteCountLo) |
			c.ReadRegister(RegByteCountHi)<<8).
			To(Equal(uint16(3 * disc.Mode1DataSize)))

		drained += len(readResponse(c))

		Expect(drained).To(Equal(30 * disc.Mode1DataSize))
		Expect(c.State()).To(Equal(StateReadCommand))
		Expect(line.raised).To(Equal(3))

		// sectors are read in ascending frame address order
		Expect(fads).To(HaveLen(30))
		for i, fad := range fads {
			Expect(fad).To(Equal(0x1234 + i))
		}
	})

	It("should read nothing without a disc", func() {
		mockDisc.EXPECT().Close()
		c.SetDisc(nil)

		sendPacket(c, []byte{
			spiCmdCDRead, 0x24, 0, 0, 150, 0, 0, 0, 0, 0, 1, 0,
		})

		Expect(c.ReadRegister(RegByteCountLo)).To(Equal(uint16(0)))
	})
})
