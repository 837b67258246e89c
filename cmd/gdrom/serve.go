package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/gdrom/datarecording"
	"github.com/sarchlab/gdrom/disc"
	"github.com/sarchlab/gdrom/drive"
	"github.com/sarchlab/gdrom/monitoring"
	"github.com/sarchlab/gdrom/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve <image.gdi>",
	Short: "Serve an emulated drive controller for monitoring and debugging",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

var (
	servePort    int
	serveTrace   string
	serveVerbose bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0,
		"port of the monitoring server, random if 0")
	serveCmd.Flags().StringVar(&serveTrace, "trace", "",
		"record a protocol trace into this SQLite database")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false,
		"log every command the controller executes")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := disc.LoadGDI(args[0])
	if err != nil {
		return err
	}

	c := drive.MakeBuilder().
		WithInterruptLine(nullLine{}).
		WithDisc(d).
		Build("GDROM")
	defer c.Close()

	if serveTrace != "" {
		recorder := datarecording.New(serveTrace)
		tracing.CollectTraces(c, tracing.NewDBTracer(recorder))
	}

	if serveVerbose {
		c.AcceptHook(tracing.NewCommandLogger(log.Default()))
	}

	monitor := monitoring.NewMonitor()
	if servePort != 0 {
		monitor.WithPortNumber(servePort)
	}
	monitor.RegisterController(c)
	monitor.StartServer()

	select {} // serve until killed, the trace is flushed at exit
}
