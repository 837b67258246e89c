package tracing

import (
	"encoding/hex"

	"github.com/sarchlab/gdrom/datarecording"
)

type commandTableEntry struct {
	ID     string
	Where  string
	Kind   string
	Code   int
	Packet string
}

type chunkTableEntry struct {
	CommandID string
	FAD       int
	Sectors   int
	Bytes     int
	DMA       bool
}

// DBTracer stores commands and sector-read chunks through a DataRecorder
// backend, one table for each.
type DBTracer struct {
	backend datarecording.DataRecorder
}

// NewDBTracer creates a DBTracer writing through the given backend.
func NewDBTracer(backend datarecording.DataRecorder) *DBTracer {
	t := &DBTracer{
		backend: backend,
	}

	t.backend.CreateTable("gdrom_commands", commandTableEntry{})
	t.backend.CreateTable("gdrom_chunks", chunkTableEntry{})

	return t
}

// StartCommand does nothing. Commands are recorded on completion so that
// superseded commands never appear complete.
func (t *DBTracer) StartCommand(cmd Command) {
}

// AddChunk records a sector-read chunk.
func (t *DBTracer) AddChunk(chunk Chunk) {
	t.backend.InsertData("gdrom_chunks", chunkTableEntry{
		CommandID: chunk.CommandID,
		FAD:       chunk.FAD,
		Sectors:   chunk.Sectors,
		Bytes:     chunk.Bytes,
		DMA:       chunk.DMA,
	})
}

// EndCommand records a completed command.
func (t *DBTracer) EndCommand(cmd Command) {
	t.backend.InsertData("gdrom_commands", commandTableEntry{
		ID:     cmd.ID,
		Where:  cmd.Where,
		Kind:   cmd.Kind,
		Code:   cmd.Code,
		Packet: hex.EncodeToString(cmd.Packet),
	})
}
