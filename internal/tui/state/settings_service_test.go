package state

import (
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/folio/internal/config"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/query"
	"github.com/cristianoliveira/folio/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSettingsDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "config")
	t.Setenv("FOLIO_CONFIG_DIR", configDir)
	t.Setenv("FOLIO_STATE_DIR", filepath.Join(tmpDir, "state"))
	t.Setenv("FOLIO_ENV_FILE", filepath.Join(tmpDir, "missing.env"))
	config.Load()
	return filepath.Join(configDir, "tui.toml")
}

func TestSetLoadedSettingsRestoresScreenAndFilters(t *testing.T) {
	setupSettingsDir(t)
	tm := newTestModel(t)
	tm.SetLoadedSettings(&settings.Settings{
		LastScreen: settings.ScreenExperience,
		Projects:   settings.PageFilters{Technology: "Go", SortBy: domain.FieldTitle, SortOrder: settings.SortOrderDesc},
		Experience: settings.PageFilters{Type: domain.ExperienceContract},
	})

	assert.Equal(t, screenHome, tm.screen, "the screen opens on Init")
	require.NotNil(t, tm.Init())
	assert.Equal(t, screenExperience, tm.screen)
	assert.True(t, tm.lists[domain.PageExperience].loading)

	assert.Equal(t, domain.ExperienceContract, tm.lists[domain.PageExperience].filters.Type)
	projects := tm.lists[domain.PageProjects].filters
	assert.Equal(t, "Go", projects.Technology)
	assert.Equal(t, query.OrderDesc, projects.SortOrder)
	assert.Equal(t, query.All, tm.lists[domain.PageEducation].filters.Type)

	tm.key("2")
	l := tm.loadPage(t, domain.PageProjects)
	assert.Equal(t, []string{"Folio", "Atlas"}, titles(l))
}

func TestQuitSavesChangedPreferences(t *testing.T) {
	path := setupSettingsDir(t)
	tm := newTestModel(t)
	tm.SetLoadedSettings(settings.DefaultSettings())
	tm.Init()

	tm.key("2")
	tm.loadPage(t, domain.PageProjects)
	tm.key("t")
	tm.key("S")
	require.NotNil(t, tm.key("q"))
	require.FileExists(t, path)

	saved, err := settings.Load()
	require.NoError(t, err)
	assert.Equal(t, settings.ScreenProjects, saved.LastScreen)
	assert.Equal(t, settings.PageFilters{Technology: "Go", SortOrder: settings.SortOrderDesc}, saved.Projects)
	assert.True(t, saved.Experience.IsZero())
}

func TestOpenProjectIsRememberedAsProjectsList(t *testing.T) {
	setupSettingsDir(t)
	tm := newTestModel(t)
	tm.SetLoadedSettings(settings.DefaultSettings())
	tm.openProject(t)

	assert.Equal(t, settings.ScreenProjects, tm.Preferences().Screen)
	tm.Dispose()

	saved, err := settings.Load()
	require.NoError(t, err)
	assert.Equal(t, settings.ScreenProjects, saved.LastScreen)
}

func TestUnchangedPreferencesAreNotRewritten(t *testing.T) {
	path := setupSettingsDir(t)
	tm := newTestModel(t)
	tm.SetLoadedSettings(settings.DefaultSettings())
	tm.Init()

	tm.key("q")
	assert.NoFileExists(t, path)
}

func TestPreferencesAreNotSavedWithoutLoadedSettings(t *testing.T) {
	path := setupSettingsDir(t)
	tm := newTestModel(t)

	tm.key("3")
	tm.key("t")
	tm.key("q")
	assert.NoFileExists(t, path)
}
