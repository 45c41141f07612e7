package settings

import (
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/query"
)

// TUIState represents the TUI model state that can be persisted.
// This DTO keeps internal/settings independent of the TUI packages.
type TUIState struct {
	// Screen is the screen name, one of the Screen* constants.
	Screen string

	// Filters holds the selection of every list page.
	Filters map[domain.Page]domain.Filters
}

// FromSettings converts Settings to TUIState. Filters come back normalized.
func FromSettings(s *Settings) TUIState {
	if s == nil {
		return TUIState{}
	}
	return TUIState{
		Screen: NormalizeScreen(s.LastScreen),
		Filters: map[domain.Page]domain.Filters{
			domain.PageProjects:   s.Projects.toFilters(),
			domain.PageExperience: s.Experience.toFilters(),
			domain.PageEducation:  s.Education.toFilters(),
		},
	}
}

// ToSettings converts TUIState to Settings. "All" selections and the
// default order are left out of the file.
func (t TUIState) ToSettings() *Settings {
	return &Settings{
		LastScreen: NormalizeScreen(t.Screen),
		Projects:   pageFilters(t.Filters[domain.PageProjects]),
		Experience: pageFilters(t.Filters[domain.PageExperience]),
		Education:  pageFilters(t.Filters[domain.PageEducation]),
	}
}

// IsEmpty returns true if no screen or filter is set.
func (t TUIState) IsEmpty() bool {
	if t.Screen != "" && t.Screen != ScreenHome {
		return false
	}
	for _, f := range t.Filters {
		if !pageFilters(f).IsZero() {
			return false
		}
	}
	return true
}

func (f PageFilters) toFilters() domain.Filters {
	return domain.NormalizeFilters(domain.Filters{
		Search:     f.Search,
		Type:       f.Type,
		Technology: f.Technology,
		Featured:   f.Featured,
		SortField:  f.SortBy,
		SortOrder:  query.Order(f.SortOrder),
	})
}

func pageFilters(f domain.Filters) PageFilters {
	out := PageFilters{
		Search:     f.Search,
		Type:       f.Type,
		Technology: f.Technology,
		Featured:   f.Featured,
		SortBy:     f.SortField,
		SortOrder:  string(f.SortOrder),
	}
	if out.Type == query.All {
		out.Type = ""
	}
	if out.Technology == query.All {
		out.Technology = ""
	}
	if out.SortOrder == SortOrderAsc {
		out.SortOrder = ""
	}
	return out
}
