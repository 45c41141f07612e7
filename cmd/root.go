// Package cmd holds the root command of the folio CLI. Sub-commands are
// registered by cmd/folio.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/folio/internal/colors"
	"github.com/cristianoliveira/folio/internal/config"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/version"
	"github.com/spf13/cobra"
)

const description = "A terminal client for a portfolio site: projects, experience, education and contact."

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:               "folio",
	Short:             description,
	Long:              description,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// outputWriter receives the help text. Nil means stdout.
var outputWriter io.Writer

var (
	apiURLFlag string
	debugFlag  bool
	quietFlag  bool
	plainFlag  bool
)

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	defaultHelp := RootCmd.HelpFunc()
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			defaultHelp(cmd, args)
			return
		}
		PrintHelp(cmd)
	})

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&apiURLFlag, "api-url", "", "Portfolio API root (overrides api_url)")
	flags.BoolVar(&debugFlag, "debug", false, "Print debug output and log at debug level")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Only print warnings and errors")
	flags.BoolVar(&plainFlag, "no-color", false, "Disable colored output")
}

// setup loads the configuration, applies the global flags and starts the
// structured logger before any sub-command runs.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	if apiURLFlag != "" {
		config.Set("api_url", apiURLFlag)
	}
	if debugFlag {
		config.Set("debug", "true")
	}
	if quietFlag {
		config.Set("quiet", "true")
	}
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if plainFlag {
		colors.SetPlain(true)
	}

	cfg := logging.FromGlobalConfig()
	cfg.Command = strings.TrimSpace(strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()))
	if cfg.Command == "" {
		cfg.Command = cmd.Root().Name()
	}
	if err := logging.InitGlobalWith(cfg); err != nil {
		colors.Warning(fmt.Sprintf("structured logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cfg.Command, "version", version.String())
	return nil
}

// commandOrder is the order of commands in the help text.
var commandOrder = []string{
	"tui",
	"list",
	"show",
	"contact",
	"resume",
	"maintenance",
	"cache",
	"serve",
	"help",
	"version",
}

// PrintHelp writes the root help text.
func PrintHelp(cmd *cobra.Command) {
	w := outputWriter
	if w == nil {
		w = os.Stdout
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-24s %s", found.Use, found.Short))
	}

	fmt.Fprintf(w, `folio v%s

%s

USAGE:
    folio [COMMAND] [OPTIONS]

    Without a command, folio opens the interactive terminal UI.

COMMANDS:
%s

OPTIONS:
    --api-url <url>   Portfolio API root (overrides api_url)
    --debug           Print debug output
    -q, --quiet       Only print warnings and errors
    --no-color        Disable colored output
    -h, --help        Show help message
`, cmd.Version, description, strings.Join(cmdLines, "\n"))
}
