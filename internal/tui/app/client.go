package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/folio/internal/colors"
	"github.com/cristianoliveira/folio/internal/config"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/settings"
	"github.com/cristianoliveira/folio/internal/tui/state"
)

// Model defines the narrow TUI model surface used by command wiring.
type Model interface {
	tea.Model
	SetSender(send func(tea.Msg))
	SetLoadedSettings(loadedSettings *settings.Settings)
	Dispose()
}

// Client defines dependencies needed by the tui command.
type Client interface {
	CreateModel() (Model, error)
	LoadSettings() (*settings.Settings, error)
	RunProgram(model Model) error
	Close() error
}

// DefaultClient is the default adapter-based implementation used by CLI wiring.
type DefaultClient struct {
	backendFactory BackendFactory
	programRunner  ProgramRunner
	settingsLoader SettingsLoader
	options        state.Options
	backend        *Backend
}

// NewDefaultClient creates a default TUI client adapter.
// If backendFactory is nil, a DefaultBackendFactory will be used.
// If programRunner is nil, a DefaultProgramRunner will be used.
// If settingsLoader is nil, a DefaultSettingsLoader will be used.
func NewDefaultClient(backendFactory BackendFactory, programRunner ProgramRunner, settingsLoader SettingsLoader, opts state.Options) *DefaultClient {
	if backendFactory == nil {
		backendFactory = NewDefaultBackendFactory()
	}
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	if settingsLoader == nil {
		settingsLoader = NewDefaultSettingsLoader()
	}
	return &DefaultClient{
		backendFactory: backendFactory,
		programRunner:  programRunner,
		settingsLoader: settingsLoader,
		options:        opts,
	}
}

// LoadSettings loads persisted settings using the injected SettingsLoader.
func (d *DefaultClient) LoadSettings() (*settings.Settings, error) {
	return d.settingsLoader.Load()
}

// CreateModel builds the backend and a TUI model reading from it. When
// remember_filters is on, the saved screen and filters are restored and
// saved again on exit. Unreadable settings are reported and left alone.
func (d *DefaultClient) CreateModel() (Model, error) {
	backend, err := d.backendFactory.NewBackend()
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}
	d.backend = backend

	opts := d.options
	opts.Backend = backend.Core
	opts.Pages = backend.Pages
	opts.Media = backend.Media
	model := state.NewModel(opts)

	if config.GetBool("remember_filters", true) {
		loaded, err := d.LoadSettings()
		if err != nil {
			logging.Warn("tui: saved settings ignored", "error", err)
			colors.Warning(fmt.Sprintf("Ignoring saved TUI settings: %v", err))
		} else {
			model.SetLoadedSettings(loaded)
		}
	}
	return model, nil
}

// RunProgram starts the bubbletea program using the configured ProgramRunner.
func (d *DefaultClient) RunProgram(model Model) error {
	err := d.programRunner.Run(model)
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}

// Close releases the backend created by CreateModel.
func (d *DefaultClient) Close() error {
	err := d.backend.Close()
	d.backend = nil
	return err
}
