package drive

import "fmt"

// State identifies the phase of the controller's command protocol.
type State int

const (
	// StateReadCommand is the idle state, awaiting an ATA command.
	StateReadCommand State = iota
	// StateReadAtaData awaits the 12-byte packet of a PACKET_CMD.
	StateReadAtaData
	// StateReadSpiData awaits the payload of a data-from-host packet
	// command.
	StateReadSpiData
	// StateWriteSpiData delivers response data to the host over PIO.
	StateWriteSpiData
	// StateWriteDmaData holds CD_READ data for the external DMA pump.
	StateWriteDmaData

	numStates int = iota
)

func (s State) String() string {
	switch s {
	case StateReadCommand:
		return "ReadCommand"
	case StateReadAtaData:
		return "ReadAtaData"
	case StateReadSpiData:
		return "ReadSpiData"
	case StateWriteSpiData:
		return "WriteSpiData"
	case StateWriteDmaData:
		return "WriteDmaData"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Event is a protocol stimulus delivered to the state machine.
type Event int

const (
	// EventAtaCommand carries a write to the command register.
	EventAtaCommand Event = iota
	// EventPioWrite follows each 16-bit write to the data register.
	EventPioWrite
	// EventSpiCommand fires when a complete command packet has arrived.
	EventSpiCommand
	// EventPioRead follows each 16-bit read from the data register.
	EventPioRead
	// EventSpiData fires when a data-from-host payload has arrived.
	EventSpiData

	numEvents int = iota
)

func (e Event) String() string {
	switch e {
	case EventAtaCommand:
		return "AtaCommand"
	case EventPioWrite:
		return "PioWrite"
	case EventSpiCommand:
		return "SpiCommand"
	case EventPioRead:
		return "PioRead"
	case EventSpiData:
		return "SpiData"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

type eventHandler func(c *Comp, arg int)

// transitions maps each (state, event) pair to its handler. A nil entry is
// a protocol violation: correct guest drivers never produce it, so hitting
// one terminates emulation. An ATA command is legal from every state, a
// new top-level command always interrupts whatever phase is active.
//
// The table is filled in by init: the handlers reach event, which reads
// the table, so a composite literal would form an initialization cycle.
var transitions [numStates][numEvents]eventHandler

func init() {
	transitions = [numStates][numEvents]eventHandler{
		StateReadCommand: {
			EventAtaCommand: (*Comp).handleAtaCommand,
		},
		StateReadAtaData: {
			EventAtaCommand: (*Comp).handleAtaCommand,
			EventPioWrite:   (*Comp).handlePioWrite,
			EventSpiCommand: (*Comp).handleSpiCommand,
		},
		StateReadSpiData: {
			EventAtaCommand: (*Comp).handleAtaCommand,
			EventPioWrite:   (*Comp).handlePioWrite,
			EventSpiData:    (*Comp).handleSpiData,
		},
		StateWriteSpiData: {
			EventAtaCommand: (*Comp).handleAtaCommand,
			EventPioRead:    (*Comp).handlePioRead,
		},
		StateWriteDmaData: {
			EventAtaCommand: (*Comp).handleAtaCommand,
			EventPioRead:    (*Comp).handlePioRead,
		},
	}
}

func (c *Comp) event(ev Event, arg int) {
	handler := transitions[c.state][ev]
	if handler == nil {
		panic(fmt.Sprintf("illegal event %s in state %s", ev, c.state))
	}
	handler(c, arg)
}
