package domain

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/cristianoliveira/folio/internal/query"
)

// Page identifies one of the filterable list pages.
type Page string

const (
	PageProjects   Page = "projects"
	PageExperience Page = "experience"
	PageEducation  Page = "education"
)

// Pages lists the list pages in navigation order.
var Pages = []Page{PageProjects, PageExperience, PageEducation}

// ParsePage parses a page name. A few plural and singular spellings are accepted.
func ParsePage(s string) (Page, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "projects", "project":
		return PageProjects, nil
	case "experience", "experiences":
		return PageExperience, nil
	case "education", "educations":
		return PageEducation, nil
	default:
		return "", fmt.Errorf("invalid page: %s (expected projects, experience or education)", s)
	}
}

// Filter keys used in the specs built by this package.
const (
	FilterSearch     = "search"
	FilterType       = "type"
	FilterTechnology = "technology"
	FilterFeatured   = "featured"
)

// Filters is the user's selection on a list page.
type Filters struct {
	Search     string
	Type       string
	Technology string
	Featured   bool
	SortField  string
	SortOrder  query.Order
}

// NormalizeFilters fills in the "all" sentinels and a valid order.
func NormalizeFilters(f Filters) Filters {
	if strings.TrimSpace(f.Type) == "" {
		f.Type = query.All
	}
	if strings.TrimSpace(f.Technology) == "" {
		f.Technology = query.All
	}
	if f.SortOrder == "" || !f.SortOrder.IsValid() {
		f.SortOrder = query.OrderAsc
	}
	return f
}

// ProjectSearchFields are the text fields consulted by the projects search box.
var ProjectSearchFields = []string{FieldTitle, FieldShortDescription, FieldTags}

// ExperienceSearchFields are the text fields consulted by the experience search box.
var ExperienceSearchFields = []string{FieldPosition, FieldCompany, FieldDescription}

// EducationSearchFields are the text fields consulted by the education search box.
var EducationSearchFields = []string{FieldDegree, FieldInstitution, FieldFieldOfStudy}

// ProjectsSpec builds the projects page spec. technologies are the names
// offered as filter buttons; they get a facet count even when unused.
func ProjectsSpec(f Filters, technologies []string) query.Spec {
	f = NormalizeFilters(f)
	spec := query.NewSpec().
		Set(FilterSearch, query.Search(f.Search, ProjectSearchFields...)).
		Set(FilterTechnology, query.EqualsFold(FieldTechnology, f.Technology, technologies...)).
		Set(FilterFeatured, query.Flag(FieldFeatured, f.Featured))
	return withSort(spec, f)
}

// ExperienceSpec builds the experience page spec.
func ExperienceSpec(f Filters) query.Spec {
	f = NormalizeFilters(f)
	spec := query.NewSpec().
		Set(FilterSearch, query.Search(f.Search, ExperienceSearchFields...)).
		Set(FilterType, query.Equals(FieldExperienceType, f.Type, ExperienceTypes...)).
		Set(FilterFeatured, query.Flag(FieldFeatured, f.Featured))
	return withSort(spec, f)
}

// EducationSpec builds the education page spec.
func EducationSpec(f Filters) query.Spec {
	f = NormalizeFilters(f)
	spec := query.NewSpec().
		Set(FilterSearch, query.Search(f.Search, EducationSearchFields...)).
		Set(FilterType, query.Equals(FieldEducationType, f.Type, EducationTypes...)).
		Set(FilterFeatured, query.Flag(FieldFeatured, f.Featured))
	return withSort(spec, f)
}

func withSort(spec query.Spec, f Filters) query.Spec {
	if f.SortField == "" {
		return spec
	}
	return spec.SortBy(f.SortField, f.SortOrder)
}

// EducationTimeline returns the entries ordered by start date, newest first.
func EducationTimeline(entries []Education) []Education {
	spec := query.NewSpec().SortBy(FieldStartDate, query.OrderDesc)
	return query.Apply(EducationSchema(), entries, spec).View
}

// ProjectStats are the derived counters of the projects page.
type ProjectStats struct {
	Total     int
	Completed int
	Featured  int
}

// SummarizeProjects counts the base collection.
func SummarizeProjects(projects []Project) ProjectStats {
	stats := ProjectStats{Total: len(projects)}
	for _, p := range projects {
		if p.IsCompleted() {
			stats.Completed++
		}
		if p.IsFeatured {
			stats.Featured++
		}
	}
	return stats
}

// ExperienceStats are the derived counters of the experience page.
type ExperienceStats struct {
	Total    int
	Current  int
	Featured int
}

// SummarizeExperience counts the base collection.
func SummarizeExperience(entries []Experience) ExperienceStats {
	stats := ExperienceStats{Total: len(entries)}
	for _, e := range entries {
		if e.IsCurrent {
			stats.Current++
		}
		if e.IsFeatured {
			stats.Featured++
		}
	}
	return stats
}

// EducationStats are the derived counters of the education page.
type EducationStats struct {
	Total     int
	Current   int
	HighGrade int
}

// SummarizeEducation counts the base collection.
func SummarizeEducation(entries []Education) EducationStats {
	stats := EducationStats{Total: len(entries)}
	for _, e := range entries {
		if e.IsCurrent {
			stats.Current++
		}
		if e.GradeValue >= HighGradeThreshold {
			stats.HighGrade++
		}
	}
	return stats
}

// TypeLabel turns a snake_case type value into a display label.
func TypeLabel(value string) string {
	if value == "" || value == query.All {
		return "All"
	}
	if value == EducationPhD {
		return "PhD"
	}
	words := strings.Split(value, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Query parameter names understood by FiltersFromQuery.
const (
	ParamSearch     = "search"
	ParamType       = "type"
	ParamTechnology = "technology"
	ParamFeatured   = "featured"
	ParamSort       = "sort"
	ParamOrder      = "order"
)

// FiltersFromQuery reads filters from URL query parameters. "q" is accepted
// as a short form of "search".
func FiltersFromQuery(values url.Values) (Filters, error) {
	f := Filters{
		Search:     values.Get(ParamSearch),
		Type:       values.Get(ParamType),
		Technology: values.Get(ParamTechnology),
		SortField:  strings.TrimSpace(values.Get(ParamSort)),
	}
	if f.Search == "" {
		f.Search = values.Get("q")
	}
	if raw := strings.TrimSpace(values.Get(ParamFeatured)); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return Filters{}, fmt.Errorf("invalid %s value: %s", ParamFeatured, raw)
		}
		f.Featured = featured
	}
	if raw := values.Get(ParamOrder); raw != "" {
		order, err := query.ParseOrder(raw)
		if err != nil {
			return Filters{}, err
		}
		f.SortOrder = order
	}
	return NormalizeFilters(f), nil
}

// TechnologyOptions returns the technology filter buttons: the catalogue
// names when there is a catalogue, otherwise every name used by a project.
// Duplicates differing only in case are kept once.
func TechnologyOptions(catalogue []Technology, projects []Project) []string {
	var names []string
	if len(catalogue) > 0 {
		for _, t := range catalogue {
			names = append(names, t.Name)
		}
	} else {
		for _, p := range projects {
			names = append(names, p.TechnologyNames()...)
		}
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
