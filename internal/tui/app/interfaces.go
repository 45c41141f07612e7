// Package app provides TUI application adapters for command wiring.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/folio/internal/config"
	"github.com/cristianoliveira/folio/internal/core"
	"github.com/cristianoliveira/folio/internal/preview"
	"github.com/cristianoliveira/folio/internal/search"
	"github.com/cristianoliveira/folio/internal/settings"
)

// ProgramRunner defines the interface for running a bubbletea program.
type ProgramRunner interface {
	// Run starts the bubbletea program with the given model.
	Run(model Model) error
}

// DefaultProgramRunner wraps tea.NewProgram with the standard options.
type DefaultProgramRunner struct {
	options []tea.ProgramOption
}

// NewDefaultProgramRunner creates a new DefaultProgramRunner. Extra options
// are appended to the alt screen and mouse options.
func NewDefaultProgramRunner(opts ...tea.ProgramOption) *DefaultProgramRunner {
	return &DefaultProgramRunner{options: opts}
}

// Run starts a bubbletea program with the given model. The model receives
// the program's Send so timers can post back into the update loop.
func (r *DefaultProgramRunner) Run(model Model) error {
	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, r.options...)
	p := tea.NewProgram(model, opts...)
	model.SetSender(p.Send)
	defer model.Dispose()

	_, err := p.Run()
	return err
}

// SettingsLoader defines the interface for loading settings.
// This allows injecting custom loaders for testing.
type SettingsLoader interface {
	// Load loads settings from the configured source.
	Load() (*settings.Settings, error)
}

// DefaultSettingsLoader reads tui.toml from the config directory.
type DefaultSettingsLoader struct{}

// NewDefaultSettingsLoader creates a new DefaultSettingsLoader.
func NewDefaultSettingsLoader() *DefaultSettingsLoader {
	return &DefaultSettingsLoader{}
}

// Load loads settings from disk using settings.Load.
func (l *DefaultSettingsLoader) Load() (*settings.Settings, error) {
	return settings.Load()
}

// Backend bundles what the model reads from.
type Backend struct {
	Core  *core.Core
	Pages *core.Pages
	// Media is nil when image previews are disabled.
	Media preview.Fetcher
}

// Close releases the cache behind the backend.
func (b *Backend) Close() error {
	if b == nil || b.Core == nil {
		return nil
	}
	return b.Core.Close()
}

// BackendFactory builds the content backend.
type BackendFactory interface {
	NewBackend() (*Backend, error)
}

// DefaultBackendFactory builds the backend from the loaded configuration.
type DefaultBackendFactory struct{}

// NewDefaultBackendFactory creates a new DefaultBackendFactory.
func NewDefaultBackendFactory() *DefaultBackendFactory {
	return &DefaultBackendFactory{}
}

// NewBackend connects to the configured API and opens the cache.
func (f *DefaultBackendFactory) NewBackend() (*Backend, error) {
	c, client, err := core.NewFromConfig()
	if err != nil {
		return nil, err
	}
	provider, err := search.NewProvider(config.Get("search_mode", search.ModeSubstring), search.WithCaseInsensitive(true))
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("search provider: %w", err)
	}
	b := &Backend{Core: c, Pages: core.NewPages(c, provider)}
	if config.GetBool("image_previews", true) {
		b.Media = client
	}
	return b, nil
}
