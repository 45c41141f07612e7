package storage

import (
	"context"
	"time"
)

// NoopCache stores nothing. Every Get misses.
type NoopCache struct{}

var _ Cache = NoopCache{}

func (NoopCache) Get(context.Context, string) (Entry, error)          { return Entry{}, ErrCacheMiss }
func (NoopCache) Put(context.Context, string, []byte) error           { return nil }
func (NoopCache) Delete(context.Context, string) error                { return nil }
func (NoopCache) Clear(context.Context) (int64, error)                { return 0, nil }
func (NoopCache) Prune(context.Context, time.Duration) (int64, error) { return 0, nil }
func (NoopCache) Stats(context.Context) (Stats, error)                { return Stats{}, nil }
func (NoopCache) Close() error                                        { return nil }
