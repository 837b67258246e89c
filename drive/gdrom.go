// Package drive emulates the GD-ROM drive controller of the Dreamcast. The
// controller is a register-addressable device speaking an ATA-style command
// protocol at the outer layer and an embedded SCSI-like packet protocol
// ("SPI") at the inner layer, moving sector data to and from a virtual
// optical disc via word-at-a-time PIO or block DMA transfers.
//
// The controller is fully synchronous: register accesses and the DMA pump
// are expected to arrive from a single emulation thread, and every
// operation completes within the call that triggered it.
package drive

import (
	"log"

	"github.com/sarchlab/gdrom/disc"
)

const (
	bufferSize     = 0x10000
	spiCommandSize = 12
)

// An InterruptLine is the controller's connection to the host interrupt
// controller. The line is level triggered: Raise is idempotent and the
// line stays asserted until a status register read clears it.
type InterruptLine interface {
	Raise()
	Clear()
}

// transferBuffer is a fixed-capacity staging buffer for PIO and DMA
// transfers. head is the next read/write position, size the valid length.
// 0 <= head <= size <= len(data) holds after every operation.
type transferBuffer struct {
	data [bufferSize]byte
	head int
	size int

	// offset is the destination offset within the hardware info block
	// for SET_MODE payloads.
	offset int
}

// cdreadState describes an in-progress multi-sector CD_READ.
type cdreadState struct {
	dma         bool
	format      disc.SectorFormat
	mask        disc.SectorMask
	firstSector int
	numSectors  int
}

// Comp is a GD-ROM drive controller. The host bus drives it through
// ReadRegister and WriteRegister; a bus-mastering DMA engine pumps it
// through BeginDMA, ReadDMA and EndDMA.
type Comp struct {
	HookableBase

	name string
	log  *log.Logger

	state  State
	hwInfo HardwareInfo
	disc   disc.Disc
	irq    InterruptLine

	errorReg  errorRegister
	features  featuresRegister
	ireason   interruptReasonRegister
	sectnum   sectorNumberRegister
	byteCount uint16
	status    statusRegister

	cdr cdreadState

	pio transferBuffer
	dma transferBuffer
}

// Name returns the name of the controller.
func (c *Comp) Name() string {
	return c.name
}

// State returns the current protocol state.
func (c *Comp) State() State {
	return c.state
}

// DriveMode returns a copy of the hardware info block.
func (c *Comp) DriveMode() HardwareInfo {
	return c.hwInfo
}

// SetDriveMode replaces the hardware info block.
func (c *Comp) SetDriveMode(info HardwareInfo) {
	c.hwInfo = info
}

// SetDisc attaches a disc to the drive, replacing and closing any disc
// attached before, and performs a protocol-level soft reset. Passing nil
// empties the drive.
func (c *Comp) SetDisc(d disc.Disc) {
	if c.disc != d {
		if c.disc != nil {
			c.disc.Close()
		}

		c.disc = d

		if d != nil {
			meta := d.Meta()
			c.log.Printf("%s: disc %s %s - %s",
				c.name, meta.Name, meta.Version, meta.ID)
		}
	}

	c.errorReg = errorRegister{}

	c.status = statusRegister{}
	c.status.DRDY = true

	c.sectnum = sectorNumberRegister{}
	if c.disc != nil {
		c.sectnum.Status = StatusPause
		c.sectnum.Format = c.disc.Format()
	} else {
		c.sectnum.Status = StatusNoDisc
	}

	c.byteCount = 0
	c.state = StateReadCommand
}

// Close releases the controller's resources, closing the attached disc.
func (c *Comp) Close() error {
	if c.disc == nil {
		return nil
	}

	err := c.disc.Close()
	c.disc = nil

	return err
}

// RegisterSnapshot is a side-effect-free view of the controller registers,
// used by the monitoring server.
type RegisterSnapshot struct {
	State           string `json:"state"`
	Status          uint16 `json:"status"`
	Error           uint16 `json:"error"`
	InterruptReason uint16 `json:"interrupt_reason"`
	SectorNumber    uint16 `json:"sector_number"`
	ByteCount       uint16 `json:"byte_count"`
	DriveStatus     string `json:"drive_status"`
}

// RegisterSnapshot captures the current register values without the access
// side effects of ReadRegister.
func (c *Comp) RegisterSnapshot() RegisterSnapshot {
	return RegisterSnapshot{
		State:           c.state.String(),
		Status:          c.status.pack(),
		Error:           c.errorReg.pack(),
		InterruptReason: c.ireason.pack(),
		SectorNumber:    c.sectnum.pack(),
		ByteCount:       c.byteCount,
		DriveStatus:     c.sectnum.Status.String(),
	}
}

// TransferSnapshot is a side-effect-free view of the transfer engines and
// the in-progress CD_READ, used by the monitoring server.
type TransferSnapshot struct {
	PioHead int `json:"pio_head"`
	PioSize int `json:"pio_size"`
	DmaHead int `json:"dma_head"`
	DmaSize int `json:"dma_size"`

	NextSector       int  `json:"next_sector"`
	SectorsRemaining int  `json:"sectors_remaining"`
	DMA              bool `json:"dma"`
}

// TransferSnapshot captures the current transfer engine positions.
func (c *Comp) TransferSnapshot() TransferSnapshot {
	return TransferSnapshot{
		PioHead:          c.pio.head,
		PioSize:          c.pio.size,
		DmaHead:          c.dma.head,
		DmaSize:          c.dma.size,
		NextSector:       c.cdr.firstSector,
		SectorsRemaining: c.cdr.numSectors,
		DMA:              c.cdr.dma,
	}
}

// Builder can build GD-ROM drive controllers.
type Builder struct {
	irq    InterruptLine
	disc   disc.Disc
	logger *log.Logger
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		logger: log.Default(),
	}
}

// WithInterruptLine sets the interrupt line the controller raises.
func (b Builder) WithInterruptLine(line InterruptLine) Builder {
	b.irq = line
	return b
}

// WithDisc sets the disc attached at build time. Without it the drive
// starts empty.
func (b Builder) WithDisc(d disc.Disc) Builder {
	b.disc = d
	return b
}

// WithLogger sets the logger for warnings and disc change messages.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates the controller, attaching the configured disc.
func (b Builder) Build(name string) *Comp {
	if b.irq == nil {
		panic("an interrupt line must be set")
	}

	c := &Comp{
		name:   name,
		log:    b.logger,
		irq:    b.irq,
		hwInfo: defaultHardwareInfo(),
	}

	c.SetDisc(b.disc)

	return c
}
