package main

import (
	"github.com/cristianoliveira/folio/cmd"
	"github.com/cristianoliveira/folio/internal/tui/app"
	"github.com/cristianoliveira/folio/internal/tui/state"
	"github.com/spf13/cobra"
)

const tuiCommandLong = `Open the interactive portfolio browser.

USAGE:
    folio tui

KEY BINDINGS:
    1-5              Home, projects, experience, education, contact
    j/k              Move up/down in a list
    /                Search the current list
    t / T            Next/previous technology or type filter
    f                Toggle featured projects
    s / S            Cycle sort field / flip order
    x                Reset filters
    enter            Open a project, or its gallery
    esc              Close the gallery, project or search
    r                Reload
    q                Quit

GALLERY:
    left/right       Previous/next image (drag with the mouse too)
    space            Toggle autoplay
    + / - / 0        Zoom in, zoom out, reset zoom
    g                Toggle grid view
    f                Toggle fullscreen`

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client app.Client) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI for the portfolio",
		Long:  tuiCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(client)
		},
	}
}

func runTUI(client app.Client) error {
	defer client.Close()

	model, err := client.CreateModel()
	if err != nil {
		return err
	}
	return client.RunProgram(model)
}

// tuiClient builds its backend when the command runs, after configuration
// has been loaded.
var tuiClient = &lazyTUIClient{}

// lazyTUIClient reads the timing options from the loaded configuration.
type lazyTUIClient struct {
	*app.DefaultClient
}

func (c *lazyTUIClient) CreateModel() (app.Model, error) {
	c.DefaultClient = app.NewDefaultClient(nil, nil, nil, state.OptionsFromConfig())
	return c.DefaultClient.CreateModel()
}

func (c *lazyTUIClient) Close() error {
	if c.DefaultClient == nil {
		return nil
	}
	return c.DefaultClient.Close()
}

var tuiCmd = NewTUICmd(tuiClient)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
	cmd.RootCmd.Args = cobra.NoArgs
	cmd.RootCmd.RunE = tuiCmd.RunE
}
