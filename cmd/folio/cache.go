package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cristianoliveira/folio/cmd"
	"github.com/cristianoliveira/folio/internal/colors"
	"github.com/cristianoliveira/folio/internal/storage"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type cacheClient interface {
	ClearCache(ctx context.Context) (int64, error)
	CacheStats(ctx context.Context) (storage.Stats, error)
}

// NewCacheCmd creates the cache command with explicit dependencies.
func NewCacheCmd(client cacheClient) *cobra.Command {
	if client == nil {
		panic("NewCacheCmd: client dependency cannot be nil")
	}

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the offline response cache",
		Long: `Inspect or clear the offline response cache.

API responses are cached in {state_dir}/cache.db and served when the API
is unreachable. The cache is disabled with cache_enabled=false.

USAGE:
    folio cache stats
    folio cache clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache size and age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := client.CacheStats(cmd.Context())
			if err != nil {
				return fmt.Errorf("cache stats: %w", err)
			}
			return printCacheStats(cmd.OutOrStdout(), stats)
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := client.ClearCache(cmd.Context())
			if err != nil {
				return fmt.Errorf("cache clear: %w", err)
			}
			colors.Success(fmt.Sprintf("Removed %d cached responses", n))
			return nil
		},
	})

	return cacheCmd
}

func printCacheStats(w io.Writer, s storage.Stats) error {
	if s.Entries == 0 {
		_, err := fmt.Fprintln(w, "Cache is empty.")
		return err
	}
	_, err := fmt.Fprintf(w, "Entries: %d\nSize:    %s\nOldest:  %s\nNewest:  %s\n",
		s.Entries,
		humanize.Bytes(uint64(s.Bytes)),
		humanize.Time(s.Oldest),
		humanize.Time(s.Newest),
	)
	return err
}

var cacheCmd = NewCacheCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(cacheCmd)
}
