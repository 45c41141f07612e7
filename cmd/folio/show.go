package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cristianoliveira/folio/cmd"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/format"
	"github.com/spf13/cobra"
)

type showClient interface {
	Project(ctx context.Context, slug string) (domain.Project, error)
}

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(client showClient) *cobra.Command {
	if client == nil {
		panic("NewShowCmd: client dependency cannot be nil")
	}

	var asJSON bool

	showCmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a project",
		Long: `Show the details of a project.

USAGE:
    folio show <slug> [--json]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := client.Project(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("show %s: %w", args[0], err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(project)
			}
			return format.FormatProject(cmd.OutOrStdout(), project)
		},
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "Print the project as JSON")

	return showCmd
}

var showCmd = NewShowCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(showCmd)
}
