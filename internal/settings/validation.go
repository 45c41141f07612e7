package settings

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/query"
)

// Validate checks that settings values are valid. The screen name is
// normalized in place.
// Preconditions: settings must be non-nil.
func Validate(settings *Settings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}

	settings.LastScreen = NormalizeScreen(settings.LastScreen)
	if err := validatePage("projects", settings.Projects, domain.ProjectSchema().Has); err != nil {
		return err
	}
	if err := validatePage("experience", settings.Experience, domain.ExperienceSchema().Has); err != nil {
		return err
	}
	if err := validatePage("education", settings.Education, domain.EducationSchema().Has); err != nil {
		return err
	}
	if settings.Projects.Type != "" {
		return fmt.Errorf("invalid projects.type: projects have no type filter")
	}
	if settings.Experience.Technology != "" || settings.Education.Technology != "" {
		return fmt.Errorf("invalid technology filter: only projects filter by technology")
	}
	return validateExperienceType(settings.Experience.Type)
}

func validatePage(name string, f PageFilters, hasField func(string) bool) error {
	if err := validateSortOrder(f.SortOrder); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if f.SortBy != "" && !hasField(f.SortBy) {
		return fmt.Errorf("%s: invalid sort_by value: %s", name, f.SortBy)
	}
	return nil
}

func validateSortOrder(order string) error {
	if order == "" {
		return nil
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return fmt.Errorf("invalid sort_order value: %s", order)
	}
	return nil
}

func validateExperienceType(t string) error {
	if t == "" || t == query.All {
		return nil
	}
	for _, known := range domain.ExperienceTypes {
		if strings.EqualFold(t, known) {
			return nil
		}
	}
	return fmt.Errorf("invalid experience.type value: %s", t)
}

// IsValidScreen returns true if name is a screen the TUI can open on.
func IsValidScreen(name string) bool {
	switch name {
	case ScreenHome, ScreenProjects, ScreenExperience, ScreenEducation, ScreenContact:
		return true
	default:
		return false
	}
}

// NormalizeScreen converts arbitrary persisted input to a valid screen name.
// Missing or invalid values always resolve to home.
func NormalizeScreen(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if IsValidScreen(name) {
		return name
	}
	return ScreenHome
}
