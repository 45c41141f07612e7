package state

import (
	"fmt"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/settings"
)

// settingsService saves the preferences the model was started with. Nothing
// is written unless settings were loaded.
type settingsService struct {
	loadedSettings *settings.Settings
}

func newSettingsService() *settingsService {
	return &settingsService{}
}

func (s *settingsService) setLoadedSettings(loaded *settings.Settings) {
	s.loadedSettings = loaded
}

func (s *settingsService) save(state settings.TUIState) error {
	if s.loadedSettings == nil {
		return nil
	}
	nextSettings := state.ToSettings()
	if *s.loadedSettings == *nextSettings {
		return nil
	}
	if err := settings.Save(nextSettings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.loadedSettings = nextSettings
	return nil
}

// screenNames maps persisted screen names back to screens.
var screenNames = map[string]screen{
	settings.ScreenHome:       screenHome,
	settings.ScreenProjects:   screenProjects,
	settings.ScreenExperience: screenExperience,
	settings.ScreenEducation:  screenEducation,
	settings.ScreenContact:    screenContact,
}

// SetLoadedSettings restores the saved screen and list filters. The model
// saves its preferences back when it is disposed.
func (m *Model) SetLoadedSettings(loaded *settings.Settings) {
	m.settings.setLoadedSettings(loaded)
	state := settings.FromSettings(loaded)
	for page, f := range state.Filters {
		if l, ok := m.lists[page]; ok {
			l.filters = f
		}
	}
	m.startScreen = screenNames[state.Screen]
}

// Preferences returns the state worth restoring next time. An open project
// is remembered as the projects list.
func (m *Model) Preferences() settings.TUIState {
	s := m.screen
	if s == screenProject {
		s = screenProjects
	}
	filters := make(map[domain.Page]domain.Filters, len(m.lists))
	for page, l := range m.lists {
		filters[page] = l.filters
	}
	return settings.TUIState{Screen: screenName(s), Filters: filters}
}

func (m *Model) saveSettings() {
	if err := m.settings.save(m.Preferences()); err != nil {
		logging.Warn("tui: settings not saved", "error", err)
	}
}
