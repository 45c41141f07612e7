package main

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/cristianoliveira/folio/internal/api"
	"github.com/cristianoliveira/folio/internal/core"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/search"
	"github.com/cristianoliveira/folio/internal/settings"
	"github.com/cristianoliveira/folio/internal/storage"
	"github.com/cristianoliveira/folio/internal/tui/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExitCodes(t *testing.T) {
	buf := captureColors(t)

	assert.Equal(t, 0, run([]string{"version"}, func() error { return nil }))
	assert.Equal(t, 1, run([]string{"list"}, func() error { return api.ErrUnavailable }))
	assert.Contains(t, buf.String(), "unreachable")
}

type countingFactory struct {
	backend *app.Backend
	err     error
	calls   int
}

func (f *countingFactory) NewBackend() (*app.Backend, error) {
	f.calls++
	return f.backend, f.err
}

func memoryBackend() *app.Backend {
	c := core.New(unavailableSource{}, storage.NoopCache{})
	return &app.Backend{Core: c, Pages: core.NewPages(c, search.NewSubstringProvider())}
}

// unavailableSource fails every request as if the API were down.
type unavailableSource struct{}

func (unavailableSource) Get(context.Context, string, url.Values) ([]byte, error) {
	return nil, api.ErrUnavailable
}

func (unavailableSource) SubmitContact(context.Context, domain.ContactMessage) error {
	return api.ErrUnavailable
}

func (unavailableSource) DownloadResume(context.Context, domain.ID) ([]byte, string, error) {
	return nil, "", api.ErrUnavailable
}

func TestAppClientBuildsBackendOnce(t *testing.T) {
	factory := &countingFactory{backend: memoryBackend()}
	client := newAppClient(factory)

	_, err := client.Listing(context.Background(), domain.PageProjects, domain.Filters{})
	assert.ErrorIs(t, err, api.ErrUnavailable)
	_, err = client.Maintenance(context.Background())
	assert.ErrorIs(t, err, api.ErrUnavailable)

	repo, pages, err := client.Relay()
	require.NoError(t, err)
	assert.NotNil(t, repo)
	assert.Same(t, factory.backend.Pages, pages)
	assert.Equal(t, 1, factory.calls)
	assert.NoError(t, client.Close())
}

func TestAppClientReportsFactoryError(t *testing.T) {
	factory := &countingFactory{err: errors.New("bad api_url")}
	client := newAppClient(factory)

	_, err := client.Project(context.Background(), "folio")
	assert.EqualError(t, err, "bad api_url")
	_, err = client.ClearCache(context.Background())
	assert.EqualError(t, err, "bad api_url")
	assert.Equal(t, 1, factory.calls)
	assert.NoError(t, client.Close())
}

type fakeTUIClient struct {
	createErr error
	runErr    error
	ran       bool
	closed    bool
}

func (f *fakeTUIClient) CreateModel() (app.Model, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return nil, nil
}

func (f *fakeTUIClient) LoadSettings() (*settings.Settings, error) {
	return settings.DefaultSettings(), nil
}

func (f *fakeTUIClient) RunProgram(app.Model) error {
	f.ran = true
	return f.runErr
}

func (f *fakeTUIClient) Close() error {
	f.closed = true
	return nil
}

func TestRunTUI(t *testing.T) {
	client := &fakeTUIClient{}
	require.NoError(t, runTUI(client))
	assert.True(t, client.ran)
	assert.True(t, client.closed)

	failing := &fakeTUIClient{createErr: errors.New("no backend")}
	assert.EqualError(t, runTUI(failing), "no backend")
	assert.False(t, failing.ran)
	assert.True(t, failing.closed)
}
