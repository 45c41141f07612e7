package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/folio/cmd"
	"github.com/cristianoliveira/folio/internal/version"
	"github.com/spf13/cobra"
)

// versionOutputWriter is where PrintVersion writes. Tests replace it.
var versionOutputWriter io.Writer = os.Stdout

// PrintVersion writes the version line.
func PrintVersion() {
	fmt.Fprintf(versionOutputWriter, "folio version %s (%s)\n", version.String(), version.GoVersion())
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show the current version of folio.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		PrintVersion()
	},
}

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
