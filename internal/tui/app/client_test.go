package app

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/folio/internal/api"
	"github.com/cristianoliveira/folio/internal/config"
	"github.com/cristianoliveira/folio/internal/core"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/schedule"
	"github.com/cristianoliveira/folio/internal/search"
	"github.com/cristianoliveira/folio/internal/settings"
	"github.com/cristianoliveira/folio/internal/storage"
	"github.com/cristianoliveira/folio/internal/tui/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offlineSource fails every request as if the API were down.
type offlineSource struct{}

func (offlineSource) Get(context.Context, string, url.Values) ([]byte, error) {
	return nil, api.ErrUnavailable
}

func (offlineSource) SubmitContact(context.Context, domain.ContactMessage) error {
	return api.ErrUnavailable
}

func (offlineSource) DownloadResume(context.Context, domain.ID) ([]byte, string, error) {
	return nil, "", api.ErrUnavailable
}

type mockBackendFactory struct {
	backend *Backend
	err     error
	calls   int
}

func (f *mockBackendFactory) NewBackend() (*Backend, error) {
	f.calls++
	return f.backend, f.err
}

type mockRunner struct {
	model Model
	err   error
}

func (r *mockRunner) Run(model Model) error {
	r.model = model
	return r.err
}

func testBackend() *Backend {
	c := core.New(offlineSource{}, storage.NoopCache{})
	return &Backend{Core: c, Pages: core.NewPages(c, search.NewSubstringProvider())}
}

func testOptions() state.Options {
	return state.Options{Scheduler: schedule.NewManual(), PollScheduler: schedule.NewManual()}
}

func TestDefaultClient_CreateModel_WithInjectedFactory(t *testing.T) {
	factory := &mockBackendFactory{backend: testBackend()}
	client := NewDefaultClient(factory, &mockRunner{}, &mockSettingsLoader{}, testOptions())

	model, err := client.CreateModel()
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Equal(t, 1, factory.calls)
	assert.Same(t, factory.backend, client.backend)

	model.Dispose()
	require.NoError(t, client.Close())
	assert.Nil(t, client.backend)
}

func TestDefaultClient_CreateModel_FactoryError(t *testing.T) {
	factory := &mockBackendFactory{err: errors.New("no api")}
	client := NewDefaultClient(factory, &mockRunner{}, &mockSettingsLoader{}, testOptions())

	_, err := client.CreateModel()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no api")
	assert.NoError(t, client.Close())
}

func TestDefaultClient_RunProgram(t *testing.T) {
	runner := &mockRunner{}
	client := NewDefaultClient(&mockBackendFactory{backend: testBackend()}, runner, &mockSettingsLoader{}, testOptions())
	model, err := client.CreateModel()
	require.NoError(t, err)
	defer model.Dispose()

	require.NoError(t, client.RunProgram(model))
	assert.Same(t, model, runner.model)

	runner.err = errors.New("tty unavailable")
	assert.EqualError(t, client.RunProgram(model), "tty unavailable")
}

func TestNewDefaultClient_Defaults(t *testing.T) {
	client := NewDefaultClient(nil, nil, nil, state.Options{})
	assert.IsType(t, &DefaultBackendFactory{}, client.backendFactory)
	assert.IsType(t, &DefaultProgramRunner{}, client.programRunner)
	assert.IsType(t, &DefaultSettingsLoader{}, client.settingsLoader)
}

// mockSettingsLoader is a test double for SettingsLoader.
type mockSettingsLoader struct {
	settings *settings.Settings
	err      error
	calls    int
}

func (m *mockSettingsLoader) Load() (*settings.Settings, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		return settings.DefaultSettings(), nil
	}
	return m.settings, nil
}

func setupConfig(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "config")
	t.Setenv("FOLIO_CONFIG_DIR", configDir)
	t.Setenv("FOLIO_STATE_DIR", filepath.Join(tmpDir, "state"))
	t.Setenv("FOLIO_ENV_FILE", filepath.Join(tmpDir, "missing.env"))
	config.Load()
	return configDir
}

func TestDefaultClient_LoadSettings_WithInjectedLoader(t *testing.T) {
	expected := &settings.Settings{LastScreen: settings.ScreenEducation}
	loader := &mockSettingsLoader{settings: expected}
	client := NewDefaultClient(nil, nil, loader, state.Options{})

	result, err := client.LoadSettings()
	require.NoError(t, err)
	assert.Same(t, expected, result)

	loader.err = errors.New("corrupt file")
	_, err = client.LoadSettings()
	assert.EqualError(t, err, "corrupt file")
}

func TestDefaultClient_CreateModel_RestoresSettings(t *testing.T) {
	configDir := setupConfig(t)
	loaded := &settings.Settings{
		LastScreen: settings.ScreenProjects,
		Projects:   settings.PageFilters{Technology: "Go"},
	}
	loader := &mockSettingsLoader{settings: loaded}
	client := NewDefaultClient(&mockBackendFactory{backend: testBackend()}, &mockRunner{}, loader, testOptions())

	model, err := client.CreateModel()
	require.NoError(t, err)
	assert.Equal(t, 1, loader.calls)

	m, ok := model.(*state.Model)
	require.True(t, ok)
	m.Init()
	prefs := m.Preferences()
	assert.Equal(t, settings.ScreenProjects, prefs.Screen)
	assert.Equal(t, "Go", prefs.Filters[domain.PageProjects].Technology)

	model.Dispose()
	require.NoError(t, client.Close())
	assert.NoFileExists(t, filepath.Join(configDir, "tui.toml"), "unchanged settings are not rewritten")
}

func TestDefaultClient_CreateModel_SettingsErrorsAreNotFatal(t *testing.T) {
	configDir := setupConfig(t)
	loader := &mockSettingsLoader{err: errors.New("corrupt file")}
	client := NewDefaultClient(&mockBackendFactory{backend: testBackend()}, &mockRunner{}, loader, testOptions())

	model, err := client.CreateModel()
	require.NoError(t, err)
	assert.Equal(t, 1, loader.calls)

	model.Dispose()
	require.NoError(t, client.Close())
	assert.NoFileExists(t, filepath.Join(configDir, "tui.toml"))
}

func TestDefaultClient_CreateModel_RememberFiltersDisabled(t *testing.T) {
	setupConfig(t)
	config.Set("remember_filters", "false")
	loader := &mockSettingsLoader{}
	client := NewDefaultClient(&mockBackendFactory{backend: testBackend()}, &mockRunner{}, loader, testOptions())

	model, err := client.CreateModel()
	require.NoError(t, err)
	defer model.Dispose()
	assert.Zero(t, loader.calls)
	require.NoError(t, client.Close())
}

// stubModel records the sender and disposal.
type stubModel struct {
	sender   func(tea.Msg)
	disposed bool
}

func (s *stubModel) Init() tea.Cmd                        { return tea.Quit }
func (s *stubModel) Update(tea.Msg) (tea.Model, tea.Cmd)  { return s, nil }
func (s *stubModel) View() string                         { return "" }
func (s *stubModel) SetSender(send func(tea.Msg))         { s.sender = send }
func (s *stubModel) SetLoadedSettings(*settings.Settings) {}
func (s *stubModel) Dispose()                             { s.disposed = true }

func TestDefaultProgramRunner_WiresSenderAndDisposes(t *testing.T) {
	runner := NewDefaultProgramRunner(
		tea.WithInput(nil),
		tea.WithOutput(&discard{}),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	model := &stubModel{}

	require.NoError(t, runner.Run(model))
	assert.NotNil(t, model.sender)
	assert.True(t, model.disposed)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
