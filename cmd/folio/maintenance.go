package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cristianoliveira/folio/cmd"
	"github.com/cristianoliveira/folio/internal/config"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/format"
	"github.com/cristianoliveira/folio/internal/maintenance"
	"github.com/cristianoliveira/folio/internal/schedule"
	"github.com/spf13/cobra"
)

type maintenanceClient interface {
	Maintenance(ctx context.Context) (domain.Maintenance, error)
}

// maintenanceScheduler drives --watch. Tests swap in a manual scheduler.
var maintenanceScheduler schedule.Scheduler = schedule.New()

// NewMaintenanceCmd creates the maintenance command with explicit dependencies.
func NewMaintenanceCmd(client maintenanceClient) *cobra.Command {
	if client == nil {
		panic("NewMaintenanceCmd: client dependency cannot be nil")
	}

	var watch bool
	var interval time.Duration

	maintenanceCmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Show whether the site is under maintenance",
		Long: `Show whether the site is under maintenance.

USAGE:
    folio maintenance [--watch] [--interval 30s]

With --watch the status is polled until interrupted and printed whenever it
changes. The interval defaults to maintenance_poll_seconds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("interval") {
				interval = time.Duration(config.GetInt("maintenance_poll_seconds", 30)) * time.Second
			}
			if !watch {
				status, err := client.Maintenance(cmd.Context())
				if err != nil {
					return err
				}
				return format.FormatMaintenance(cmd.OutOrStdout(), status)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchMaintenance(ctx, cmd.OutOrStdout(), client, interval)
		},
	}
	maintenanceCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Poll until interrupted")
	maintenanceCmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "Polling interval for --watch")

	return maintenanceCmd
}

// watchMaintenance prints every status change until ctx is done.
func watchMaintenance(ctx context.Context, w io.Writer, client maintenanceClient, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval: %s", interval)
	}
	var (
		mu       sync.Mutex
		writeErr error
	)
	poller := maintenance.New(client.Maintenance,
		maintenance.WithScheduler(maintenanceScheduler),
		maintenance.WithInterval(interval),
		maintenance.WithTimeout(time.Duration(config.GetInt("api_timeout", 10))*time.Second),
		maintenance.WithOnChange(func(status domain.Maintenance) {
			mu.Lock()
			defer mu.Unlock()
			if err := format.FormatMaintenance(w, status); err != nil {
				writeErr = err
			}
		}),
	)
	poller.Start(ctx)

	<-ctx.Done()
	poller.Stop()
	mu.Lock()
	defer mu.Unlock()
	return writeErr
}

var maintenanceCmd = NewMaintenanceCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(maintenanceCmd)
}
