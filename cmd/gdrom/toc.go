package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/gdrom/disc"
)

var tocCmd = &cobra.Command{
	Use:   "toc <image.gdi>",
	Short: "Print the table of contents of a disc image",
	Args:  cobra.ExactArgs(1),
	RunE:  runTOC,
}

func init() {
	rootCmd.AddCommand(tocCmd)
}

func runTOC(cmd *cobra.Command, args []string) error {
	d, err := disc.LoadGDI(args[0])
	if err != nil {
		return err
	}
	defer d.Close()

	printArea(d, "single density", disc.AreaSingleDensity)
	if d.Format() == disc.FormatGDROM {
		printArea(d, "high density", disc.AreaHighDensity)
	}

	return nil
}

func printArea(d disc.Disc, name string, area disc.Area) {
	toc := d.TOC(area)

	fmt.Printf("%s area:\n", name)
	for n := toc.FirstTrack.Num; n <= toc.LastTrack.Num; n++ {
		t := d.Track(n)
		fmt.Printf("  track %2d: ctrl %x, adr %x, fad %d\n",
			t.Num, t.Ctrl, t.ADR, t.FAD)
	}
	fmt.Printf("  leadin %d, leadout %d\n", toc.LeadinFAD, toc.LeadoutFAD)
}
