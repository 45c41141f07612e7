package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/folio/cmd"
	"github.com/cristianoliveira/folio/internal/config"
	"github.com/cristianoliveira/folio/internal/core"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/server"
	"github.com/spf13/cobra"
)

type serveClient interface {
	Relay() (domain.ContentRepository, *core.Pages, error)
}

// NewServeCmd creates the serve command with explicit dependencies.
func NewServeCmd(client serveClient) *cobra.Command {
	if client == nil {
		panic("NewServeCmd: client dependency cannot be nil")
	}

	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the filtered pages as JSON",
		Long: `Serve the filtered list pages over HTTP.

USAGE:
    folio serve [--addr :8080]

ENDPOINTS:
    GET  /health
    GET  /api/projects        ?search= &technology= &featured= &sort= &order=
    GET  /api/projects/{slug}
    GET  /api/experience      ?search= &type= &sort= &order=
    GET  /api/education       ?search= &sort= &order=
    GET  /api/maintenance
    POST /api/contact

Requests are logged to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = config.Get("serve_addr", server.DefaultAddr)
			}
			cfg := logging.FromGlobalConfig()
			cfg.Enabled = true
			cfg.Command = "serve"
			cfg.Output = cmd.ErrOrStderr()
			if err := logging.InitGlobalWith(cfg); err != nil {
				return err
			}

			repo, pages, err := client.Relay()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(repo, pages).ListenAndServe(ctx, addr)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "Listen address (overrides serve_addr)")

	return serveCmd
}

var serveCmd = NewServeCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(serveCmd)
}
