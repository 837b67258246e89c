package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// captureRecorder is an in-memory DataRecorder backend.
type captureRecorder struct {
	tables  []string
	entries map[string][]any
	flushed int
}

func newCaptureRecorder() *captureRecorder {
	return &captureRecorder{
		entries: make(map[string][]any),
	}
}

func (r *captureRecorder) CreateTable(tableName string, sampleEntry any) {
	r.tables = append(r.tables, tableName)
}

func (r *captureRecorder) InsertData(tableName string, entry any) {
	r.entries[tableName] = append(r.entries[tableName], entry)
}

func (r *captureRecorder) ListTables() []string {
	return r.tables
}

func (r *captureRecorder) Flush() {
	r.flushed++
}

var _ = Describe("DBTracer", func() {
	var (
		backend *captureRecorder
		tracer  *DBTracer
	)

	BeforeEach(func() {
		backend = newCaptureRecorder()
		tracer = NewDBTracer(backend)
	})

	It("should create the command and chunk tables", func() {
		Expect(backend.tables).To(ConsistOf("gdrom_commands", "gdrom_chunks"))
	})

	It("should record commands on completion only", func() {
		cmd := Command{
			ID:     "cmd1",
			Where:  "GDROM",
			Kind:   "spi",
			Code:   0x30,
			Packet: []byte{0x30, 0x24},
		}

		tracer.StartCommand(cmd)
		Expect(backend.entries["gdrom_commands"]).To(BeEmpty())

		tracer.EndCommand(cmd)
		Expect(backend.entries["gdrom_commands"]).To(HaveLen(1))

		entry := backend.entries["gdrom_commands"][0].(commandTableEntry)
		Expect(entry.ID).To(Equal("cmd1"))
		Expect(entry.Kind).To(Equal("spi"))
		Expect(entry.Code).To(Equal(0x30))
		Expect(entry.Packet).To(Equal("3024"))
	})

	It("should record read chunks", func() {
		tracer.AddChunk(Chunk{
			CommandID: "cmd1",
			FAD:       45150,
			Sectors:   27,
			Bytes:     27 * 2048,
			DMA:       true,
		})

		Expect(backend.entries["gdrom_chunks"]).To(HaveLen(1))

		entry := backend.entries["gdrom_chunks"][0].(chunkTableEntry)
		Expect(entry.CommandID).To(Equal("cmd1"))
		Expect(entry.FAD).To(Equal(45150))
		Expect(entry.Sectors).To(Equal(27))
		Expect(entry.DMA).To(BeTrue())
	})
})
