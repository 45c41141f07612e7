// Package sqlite provides a SQLite-backed response cache.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS responses (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_responses_fetched_at ON responses(fetched_at);
`

// Entry is one cached response.
type Entry struct {
	Key       string
	Payload   []byte
	FetchedAt time.Time
}

// Age returns how long ago the entry was fetched, relative to now.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int
	Bytes   int64
	Oldest  time.Time
	Newest  time.Time
}

// Cache stores raw response payloads keyed by request.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// Open creates or opens the cache database at dbPath.
func Open(dbPath string, opts ...Option) (*Cache, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite cache: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite cache: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite cache: open db: %w", err)
	}

	c := &Cache{db: db, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	if _, err := c.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite cache: set busy timeout: %w", err)
	}
	if _, err := c.db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("sqlite cache: set journal mode: %w", err)
	}
	if _, err := c.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite cache: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the entry stored under key or ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) (Entry, error) {
	if strings.TrimSpace(key) == "" {
		return Entry{}, ErrInvalidKey
	}
	var (
		payload []byte
		fetched int64
	)
	err := c.db.QueryRowContext(ctx,
		"SELECT payload, fetched_at FROM responses WHERE key = ?", key,
	).Scan(&payload, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrCacheMiss
	}
	if err != nil {
		return Entry{}, fmt.Errorf("sqlite cache: get %s: %w", key, err)
	}
	return Entry{Key: key, Payload: payload, FetchedAt: time.UnixMilli(fetched)}, nil
}

// Put stores payload under key, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, key string, payload []byte) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO responses (key, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		key, payload, c.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlite cache: put %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry stored under key. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM responses WHERE key = ?", key); err != nil {
		return fmt.Errorf("sqlite cache: delete %s: %w", key, err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM responses")
	if err != nil {
		return 0, fmt.Errorf("sqlite cache: clear: %w", err)
	}
	return res.RowsAffected()
}

// Prune removes entries fetched more than maxAge ago.
func (c *Cache) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge < 0 {
		return 0, fmt.Errorf("sqlite cache: max age must be >= 0")
	}
	cutoff := c.now().Add(-maxAge).UnixMilli()
	res, err := c.db.ExecContext(ctx, "DELETE FROM responses WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("sqlite cache: prune: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports the number and size of stored entries.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	var (
		st             Stats
		size           sql.NullInt64
		oldest, newest sql.NullInt64
	)
	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(*), SUM(LENGTH(payload)), MIN(fetched_at), MAX(fetched_at) FROM responses",
	).Scan(&st.Entries, &size, &oldest, &newest)
	if err != nil {
		return Stats{}, fmt.Errorf("sqlite cache: stats: %w", err)
	}
	st.Bytes = size.Int64
	if oldest.Valid {
		st.Oldest = time.UnixMilli(oldest.Int64)
	}
	if newest.Valid {
		st.Newest = time.UnixMilli(newest.Int64)
	}
	return st, nil
}
