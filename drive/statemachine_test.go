package drive

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Protocol state machine", func() {
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

	It("should accept an ATA command from every state", func() {
		for s := 0; s < numStates; s++ {
			Expect(transitions[s][EventAtaCommand]).NotTo(BeNil(),
				"state %s", State(s))
		}
	})

	It("should populate exactly the legal transitions", func() {
		legal := map[State][]Event{
			StateReadCommand:  {EventAtaCommand},
			StateReadAtaData:  {EventAtaCommand, EventPioWrite, EventSpiCommand},
			StateReadSpiData:  {EventAtaCommand, EventPioWrite, EventSpiData},
			StateWriteSpiData: {EventAtaCommand, EventPioRead},
			StateWriteDmaData: {EventAtaCommand, EventPioRead},
		}

		for s := 0; s < numStates; s++ {
			for e := 0; e < numEvents; e++ {
				want := false
				for _, ev := range legal[State(s)] {
					if ev == Event(e) {
						want = true
					}
				}

				entry := transitions[s][e]
				if want {
					Expect(entry).NotTo(BeNil(),
						"%s in %s", Event(e), State(s))
				} else {
					Expect(entry).To(BeNil(),
						"%s in %s", Event(e), State(s))
				}
			}
		}
	})

	It("should reject a data read while idle", func() {
		Expect(func() {
			c.ReadRegister(RegData)
		}).To(Panic())
	})

	It("should reject a data write while idle", func() {
		Expect(func() {
			c.WriteRegister(RegData, 0)
		}).To(Panic())
	})

	It("should reject a data write while responding", func() {
		sendPacket(c, []byte{
			spiCmdReqStat, 0, 0, 0, 10, 0, 0, 0, 0, 0, 0, 0,
		})
		Expect(c.State()).To(Equal(StateWriteSpiData))

		Expect(func() {
			c.WriteRegister(RegData, 0)
		}).To(Panic())
	})

	It("should let a new ATA command interrupt a packet in flight", func() {
		c.WriteRegister(RegStatusCommand, ataCmdPacket)
		Expect(c.State()).To(Equal(StateReadAtaData))

		c.WriteRegister(RegStatusCommand, ataCmdNOP)

		Expect(c.State()).To(Equal(StateReadCommand))
		Expect(c.ReadRegister(RegErrorFeatures) & (1 << 2)).NotTo(BeZero())
	})
})
