package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/gdrom/disc"
	"github.com/sarchlab/gdrom/drive"
	"github.com/sarchlab/gdrom/tracing"
)

var readCmd = &cobra.Command{
	Use:   "read <image.gdi>",
	Short: "Dump decoded sector data by driving a CD_READ through the controller",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

var (
	readFAD     int
	readCount   int
	readRaw     bool
	readOutput  string
	readVerbose bool
)

func init() {
	readCmd.Flags().IntVar(&readFAD, "fad", disc.HighDensityFAD,
		"frame address of the first sector")
	readCmd.Flags().IntVar(&readCount, "count", 1,
		"number of sectors to read")
	readCmd.Flags().BoolVar(&readRaw, "raw", false,
		"dump whole raw sectors instead of the data region")
	readCmd.Flags().StringVarP(&readOutput, "output", "o", "",
		"output file, stdout if empty")
	readCmd.Flags().BoolVarP(&readVerbose, "verbose", "v", false,
		"log every command the controller executes")

	rootCmd.AddCommand(readCmd)
}

// nullLine swallows the controller's interrupts. The CLI polls the
// controller state instead of waiting for interrupts.
type nullLine struct{}

func (nullLine) Raise() {}
func (nullLine) Clear() {}

func runRead(cmd *cobra.Command, args []string) error {
	d, err := disc.LoadGDI(args[0])
	if err != nil {
		return err
	}

	c := drive.MakeBuilder().
		WithInterruptLine(nullLine{}).
		WithDisc(d).
		Build("GDROM")
	defer c.Close()

	if readVerbose {
		c.AcceptHook(tracing.NewCommandLogger(log.New(os.Stderr, "", 0)))
	}

	out := os.Stdout
	if readOutput != "" {
		out, err = os.Create(readOutput)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	issueRead(c, readFAD, readCount, readRaw)

	// pump the pending payload out of the controller the way the
	// bus-mastering DMA engine would
	c.BeginDMA()

	buf := make([]byte, 0x8000)
	for c.State() == drive.StateWriteDmaData {
		n := c.ReadDMA(buf)
		if _, err := out.Write(buf[:n]); err != nil {
			return err
		}
	}

	c.EndDMA()

	if readOutput != "" {
		fmt.Fprintf(os.Stderr, "wrote %d sectors to %s\n",
			readCount, readOutput)
	}

	return nil
}

// issueRead drives a DMA-mode CD_READ through the register interface,
// exactly as a guest driver would.
func issueRead(c *drive.Comp, fad, count int, raw bool) {
	// data select: whole sector or user data only
	packet1 := byte(disc.SectorAny) << 1
	mask := disc.MaskData
	if raw {
		mask = disc.MaskHeader | disc.MaskSubheader | disc.MaskData | disc.MaskOther
	} else {
		packet1 = byte(disc.SectorMode1) << 1
	}
	packet1 |= byte(mask) << 4

	packet := [12]byte{
		0x30, // CD_READ
		packet1,
		byte(fad >> 16), byte(fad >> 8), byte(fad),
		0, 0, 0,
		byte(count >> 16), byte(count >> 8), byte(count),
		0,
	}

	c.WriteRegister(drive.RegErrorFeatures, 1) // DMA transfer mode
	c.WriteRegister(drive.RegStatusCommand, 0xa0)

	for i := 0; i < len(packet); i += 2 {
		word := uint16(packet[i]) | uint16(packet[i+1])<<8
		c.WriteRegister(drive.RegData, word)
	}
}
