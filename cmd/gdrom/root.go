package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "gdrom",
	Short: "GD-ROM CLI tool can perform common tasks related to GD-ROM " +
		"disc images and the emulated drive controller.",
	Long: `GD-ROM CLI tool can perform common tasks related to GD-ROM ` +
		`disc images and the emulated drive controller. Currently, it ` +
		`supports inspecting image metadata and layout, dumping sector ` +
		`data through the controller, and serving a controller for ` +
		`monitoring.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
