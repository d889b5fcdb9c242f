package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "drivecap",
	Short: "Verify that a drive's advertised capacity is real",
	Long: `drivecap validates the usable capacity of block storage devices,
exposing counterfeit or firmware-falsified drives that silently wrap
writes back over earlier addresses instead of failing past their true
capacity.

It samples the address space, writes random payloads in randomized order
bypassing the OS cache, reads them back, and reports the contiguous
prefix of the drive that can be trusted to store data. Original block
content is captured first and restored afterwards.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Global output flags, usable by every subcommand.
var (
	quiet   bool
	noColor bool
)

// Execute runs the root command and exits non-zero on error. Exit happens
// only here, after every command has unwound its defers.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress and informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		validateCmd,
		infoCmd,
	)
}
