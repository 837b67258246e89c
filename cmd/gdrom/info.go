package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/gdrom/disc"
)

var infoCmd = &cobra.Command{
	Use:   "info <image.gdi>",
	Short: "Print the metadata and layout of a disc image",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	d, err := disc.LoadGDI(args[0])
	if err != nil {
		return err
	}
	defer d.Close()

	meta := d.Meta()
	fmt.Printf("Name:     %s\n", meta.Name)
	fmt.Printf("Version:  %s\n", meta.Version)
	fmt.Printf("ID:       %s\n", meta.ID)
	fmt.Printf("Format:   %s\n", d.Format())
	fmt.Printf("Sessions: %d\n", d.NumSessions())

	for n := 1; n <= d.NumSessions(); n++ {
		ses := d.Session(n)
		fmt.Printf("  session %d: first track %d, leadin %d, leadout %d\n",
			n, ses.FirstTrack, ses.LeadinFAD, ses.LeadoutFAD)
	}

	fmt.Printf("Tracks:   %d\n", d.NumTracks())
	for n := 1; n <= d.NumTracks(); n++ {
		t := d.Track(n)

		kind := "audio"
		if t.Ctrl&0x4 != 0 {
			kind = "data"
		}

		fmt.Printf("  track %2d: %s, fad %d, %d sectors\n",
			t.Num, kind, t.FAD, t.NumSectors)
	}

	return nil
}
