package main

import (
	"context"
	"sync"

	"github.com/cristianoliveira/folio/internal/core"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/format"
	"github.com/cristianoliveira/folio/internal/storage"
	"github.com/cristianoliveira/folio/internal/tui/app"
)

// appClient opens the backend on first use, after the root command has
// loaded the configuration and applied the global flags.
type appClient struct {
	factory app.BackendFactory

	once    sync.Once
	backend *app.Backend
	err     error
}

func newAppClient(factory app.BackendFactory) *appClient {
	if factory == nil {
		factory = app.NewDefaultBackendFactory()
	}
	return &appClient{factory: factory}
}

var coreClient = newAppClient(nil)

// Backend returns the shared backend, building it once.
func (c *appClient) Backend() (*app.Backend, error) {
	c.once.Do(func() {
		c.backend, c.err = c.factory.NewBackend()
	})
	return c.backend, c.err
}

// Close releases the backend if one was opened.
func (c *appClient) Close() error {
	if c.backend == nil {
		return nil
	}
	return c.backend.Close()
}

func (c *appClient) Listing(ctx context.Context, page domain.Page, f domain.Filters) (format.Listing, error) {
	b, err := c.Backend()
	if err != nil {
		return format.Listing{}, err
	}
	return b.Pages.Listing(ctx, page, f)
}

func (c *appClient) Project(ctx context.Context, slug string) (domain.Project, error) {
	b, err := c.Backend()
	if err != nil {
		return domain.Project{}, err
	}
	return b.Core.Project(ctx, slug)
}

func (c *appClient) SubmitContact(ctx context.Context, msg domain.ContactMessage) error {
	b, err := c.Backend()
	if err != nil {
		return err
	}
	return b.Core.SubmitContact(ctx, msg)
}

func (c *appClient) Maintenance(ctx context.Context) (domain.Maintenance, error) {
	b, err := c.Backend()
	if err != nil {
		return domain.Maintenance{}, err
	}
	return b.Core.Maintenance(ctx)
}

func (c *appClient) PrimaryResume(ctx context.Context) (domain.Resume, error) {
	b, err := c.Backend()
	if err != nil {
		return domain.Resume{}, err
	}
	return b.Core.PrimaryResume(ctx)
}

func (c *appClient) DownloadResume(ctx context.Context, id domain.ID) ([]byte, string, error) {
	b, err := c.Backend()
	if err != nil {
		return nil, "", err
	}
	return b.Core.DownloadResume(ctx, id)
}

func (c *appClient) ClearCache(ctx context.Context) (int64, error) {
	b, err := c.Backend()
	if err != nil {
		return 0, err
	}
	return b.Core.ClearCache(ctx)
}

func (c *appClient) CacheStats(ctx context.Context) (storage.Stats, error) {
	b, err := c.Backend()
	if err != nil {
		return storage.Stats{}, err
	}
	return b.Core.CacheStats(ctx)
}

// Relay returns what the HTTP relay serves from.
func (c *appClient) Relay() (domain.ContentRepository, *core.Pages, error) {
	b, err := c.Backend()
	if err != nil {
		return nil, nil, err
	}
	return b.Core, b.Pages, nil
}
