// Package storage provides the response cache used for offline reads.
package storage

import (
	"context"
	"time"

	"github.com/cristianoliveira/folio/internal/storage/sqlite"
)

// Entry is one cached response.
type Entry = sqlite.Entry

// Stats summarizes cache contents.
type Stats = sqlite.Stats

// ErrCacheMiss is returned by Get when no entry exists.
var ErrCacheMiss = sqlite.ErrCacheMiss

// Cache stores raw API responses.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) (int64, error)
	Prune(ctx context.Context, maxAge time.Duration) (int64, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

var _ Cache = (*sqlite.Cache)(nil)
