package main

import (
	"os"

	"github.com/cristianoliveira/folio/cmd"
	"github.com/cristianoliveira/folio/internal/errors"
	"github.com/cristianoliveira/folio/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run executes the CLI and returns the process exit code.
func run(args []string, execute func() error) int {
	cmd.RootCmd.SetArgs(args)
	err := execute()

	if cerr := coreClient.Close(); cerr != nil {
		logging.Warn("closing cache failed", "error", cerr)
	}
	if err != nil {
		logging.Error("command failed", "error", err)
		errors.Report(errors.NewDefaultCLIHandler(), err)
	}
	_ = logging.ShutdownGlobal()
	if err != nil {
		return 1
	}
	return 0
}
