// Package tracing observes the protocol activity of GD-ROM drive
// controllers. Tracers attach to a controller as hooks and receive one
// call per ATA command, packet command, sector-read chunk and command
// completion.
package tracing

// A Command describes one ATA or packet command observed on a controller.
type Command struct {
	// ID uniquely identifies this command instance.
	ID string

	// Where is the name of the controller that executed the command.
	Where string

	// Kind is "ata" or "spi".
	Kind string

	// Code is the command code.
	Code int

	// Packet is the raw 12-byte command packet. ATA commands carry no
	// packet.
	Packet []byte
}

// A Chunk describes one chunk of CD_READ data produced by a controller's
// sector reader.
type Chunk struct {
	// CommandID is the ID of the command the chunk belongs to.
	CommandID string

	FAD     int
	Sectors int
	Bytes   int
	DMA     bool
}

// A Tracer can collect controller protocol traces.
type Tracer interface {
	// StartCommand reports that a command started executing.
	StartCommand(cmd Command)

	// AddChunk reports a sector-read chunk of the current command.
	AddChunk(chunk Chunk)

	// EndCommand reports that the command completed and the controller
	// returned to its idle state.
	EndCommand(cmd Command)
}
