package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cristianoliveira/folio/internal/config"
	"github.com/pelletier/go-toml/v2"
)

// PageFilters is the saved filter selection of one list page.
type PageFilters struct {
	Search     string `toml:"search,omitempty"`
	Type       string `toml:"type,omitempty"`
	Technology string `toml:"technology,omitempty"`
	Featured   bool   `toml:"featured,omitempty"`
	SortBy     string `toml:"sort_by,omitempty"`
	SortOrder  string `toml:"sort_order,omitempty"`
}

// IsZero reports whether no filter is saved.
func (f PageFilters) IsZero() bool {
	return f == PageFilters{}
}

// Settings holds TUI user preferences persisted to disk.
//
// Example tui.toml:
//
//	last_screen = "projects"
//
//	[projects]
//	technology = "Go"
//	sort_by = "title"
//	sort_order = "desc"
//
//	[experience]
//	type = "contract"
//
// Settings are stored at {config_dir}/tui.toml.
type Settings struct {
	// LastScreen is the screen shown when the TUI opens. Empty means home.
	LastScreen string `toml:"last_screen,omitempty"`

	Projects   PageFilters `toml:"projects"`
	Experience PageFilters `toml:"experience"`
	Education  PageFilters `toml:"education"`
}

// DefaultSettings returns settings with all default values.
func DefaultSettings() *Settings {
	return &Settings{LastScreen: ScreenHome}
}

// Load reads settings from the config directory.
// If the settings file does not exist, returns default settings.
func Load() (*Settings, error) {
	config.EnsureLoaded()
	settingsPath := getSettingsPath()

	data, err := os.ReadFile(settingsPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if err := Validate(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// Save writes settings to the config directory, creating it if needed.
func Save(settings *Settings) error {
	config.EnsureLoaded()

	if err := Validate(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	settingsPath := getSettingsPath()
	if err := os.MkdirAll(filepath.Dir(settingsPath), FileModeDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(settingsPath, data, FileModeFile); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
