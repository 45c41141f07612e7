// Package core provides the read-through cached content service used by the
// CLI, the TUI and the relay server.
package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/cristianoliveira/folio/internal/api"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/storage"
)

// DefaultTTL is how long a cached response is served without refetching.
const DefaultTTL = 10 * time.Minute

// DefaultPageSize is the page size asked of list endpoints.
const DefaultPageSize = 50

// Source is the upstream API.
type Source interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	SubmitContact(ctx context.Context, msg domain.ContactMessage) error
	DownloadResume(ctx context.Context, id domain.ID) ([]byte, string, error)
}

var _ Source = (*api.Client)(nil)

// Option configures a Core.
type Option func(*Core)

// WithTTL sets the cache freshness window. Zero disables cache hits while
// keeping the stale fallback.
func WithTTL(ttl time.Duration) Option {
	return func(c *Core) {
		if ttl >= 0 {
			c.ttl = ttl
		}
	}
}

// WithPageSize sets the page size of list requests.
func WithPageSize(n int) Option {
	return func(c *Core) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithClock overrides the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Core) {
		if now != nil {
			c.now = now
		}
	}
}

// Core serves portfolio content from the API with a response cache in front.
// When the API is unreachable, cached responses are served regardless of age.
type Core struct {
	source   Source
	cache    storage.Cache
	ttl      time.Duration
	pageSize int
	now      func() time.Time

	offline atomic.Bool
}

var _ domain.ContentRepository = (*Core)(nil)

// New creates a Core. A nil cache disables caching.
func New(source Source, cache storage.Cache, opts ...Option) *Core {
	if cache == nil {
		cache = storage.NoopCache{}
	}
	c := &Core{
		source:   source,
		cache:    cache,
		ttl:      DefaultTTL,
		pageSize: DefaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Offline reports whether the last read was served from a stale cache entry
// because the API could not be reached.
func (c *Core) Offline() bool {
	return c.offline.Load()
}

// Close releases the cache.
func (c *Core) Close() error {
	return c.cache.Close()
}

func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// fetch returns a fresh cache entry, or the API response, or a stale entry
// when the API is unavailable.
func (c *Core) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	key := cacheKey(path, query)
	entry, cacheErr := c.cache.Get(ctx, key)
	if cacheErr != nil && !errors.Is(cacheErr, storage.ErrCacheMiss) {
		logging.Warn("core: cache read failed", "key", key, "error", cacheErr)
	}
	cached := cacheErr == nil
	if cached && c.ttl > 0 && entry.Age(c.now()) < c.ttl {
		logging.Debug("core: cache hit", "key", key)
		return entry.Payload, nil
	}

	data, err := c.source.Get(ctx, path, query)
	if err != nil {
		if cached && errors.Is(err, api.ErrUnavailable) {
			logging.Warn("core: serving stale response", "key", key, "age", entry.Age(c.now()).String(), "error", err)
			c.offline.Store(true)
			return entry.Payload, nil
		}
		return nil, err
	}
	c.offline.Store(false)
	if err := c.cache.Put(ctx, key, data); err != nil {
		logging.Warn("core: cache write failed", "key", key, "error", err)
	}
	return data, nil
}

func fetchJSON[T any](ctx context.Context, c *Core, path string, query url.Values) (T, error) {
	var out T
	data, err := c.fetch(ctx, path, query)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func fetchList[T any](ctx context.Context, c *Core, path string, query url.Values) ([]T, error) {
	data, err := c.fetch(ctx, path, query)
	if err != nil {
		return nil, err
	}
	items, err := api.DecodeList[T](data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return items, nil
}

// Projects returns the project list.
func (c *Core) Projects(ctx context.Context) (domain.ProjectPage, error) {
	data, err := c.fetch(ctx, api.PathProjects, api.PageQuery(c.pageSize))
	if err != nil {
		return domain.ProjectPage{}, err
	}
	page, err := api.DecodeProjectPage(data)
	if err != nil {
		return domain.ProjectPage{}, fmt.Errorf("decode %s: %w", api.PathProjects, err)
	}
	return page, nil
}

// Project returns one project by slug.
func (c *Core) Project(ctx context.Context, slug string) (domain.Project, error) {
	return fetchJSON[domain.Project](ctx, c, api.ProjectPath(slug), nil)
}

// Technologies returns the technology catalogue.
func (c *Core) Technologies(ctx context.Context) ([]domain.Technology, error) {
	return fetchList[domain.Technology](ctx, c, api.PathTechnologies, nil)
}

// Experiences returns the experience entries.
func (c *Core) Experiences(ctx context.Context) ([]domain.Experience, error) {
	return fetchList[domain.Experience](ctx, c, api.PathExperiences, api.PageQuery(c.pageSize))
}

// Education returns the education entries.
func (c *Core) Education(ctx context.Context) ([]domain.Education, error) {
	return fetchList[domain.Education](ctx, c, api.PathEducation, api.PageQuery(c.pageSize))
}

// Settings returns the aggregated site settings.
func (c *Core) Settings(ctx context.Context) (domain.SiteSettings, error) {
	return fetchJSON[domain.SiteSettings](ctx, c, api.PathSettingsAll, nil)
}

// RotatingTexts returns the hero typewriter settings.
func (c *Core) RotatingTexts(ctx context.Context) (domain.RotatingTexts, error) {
	return fetchJSON[domain.RotatingTexts](ctx, c, api.PathRotatingText, nil)
}

// Home returns the home page aggregate.
func (c *Core) Home(ctx context.Context) (domain.Home, error) {
	return fetchJSON[domain.Home](ctx, c, api.PathHome, nil)
}

// PrimaryResume returns the primary resume metadata.
func (c *Core) PrimaryResume(ctx context.Context) (domain.Resume, error) {
	return fetchJSON[domain.Resume](ctx, c, api.PathPrimaryResume, nil)
}

// Maintenance always asks the API; a cached status would hide the end of a
// maintenance window.
func (c *Core) Maintenance(ctx context.Context) (domain.Maintenance, error) {
	var m domain.Maintenance
	data, err := c.source.Get(ctx, api.PathMaintenance, nil)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode %s: %w", api.PathMaintenance, err)
	}
	return m, nil
}

// DownloadResume fetches a resume file. Files are not cached.
func (c *Core) DownloadResume(ctx context.Context, id domain.ID) ([]byte, string, error) {
	return c.source.DownloadResume(ctx, id)
}

// SubmitContact posts a contact message.
func (c *Core) SubmitContact(ctx context.Context, msg domain.ContactMessage) error {
	return c.source.SubmitContact(ctx, msg)
}

// ClearCache removes every cached response.
func (c *Core) ClearCache(ctx context.Context) (int64, error) {
	n, err := c.cache.Clear(ctx)
	if err != nil {
		return 0, err
	}
	logging.Info("core: cache cleared", "entries", n)
	return n, nil
}

// CacheStats reports the cache contents.
func (c *Core) CacheStats(ctx context.Context) (storage.Stats, error) {
	return c.cache.Stats(ctx)
}
