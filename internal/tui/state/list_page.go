package state

import (
	"fmt"
	"sort"

	"github.com/cristianoliveira/folio/internal/core"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/format"
	"github.com/cristianoliveira/folio/internal/query"
)

// sortFields lists the sort keys cycled by the sort key, "" meaning the
// page's natural order.
var sortFields = map[domain.Page][]string{
	domain.PageProjects:   {"", domain.FieldTitle, domain.FieldCompletionDate},
	domain.PageExperience: {"", domain.FieldStartDate, domain.FieldCompany},
	domain.PageEducation:  {"", domain.FieldStartDate, domain.FieldGradeValue},
}

// listPage is the state of one filterable page. The base collection is
// fetched once; filters are applied synchronously on every change.
type listPage struct {
	page       domain.Page
	filters    domain.Filters
	collection core.Collection
	listing    format.Listing
	cursor     int
	loaded     bool
	loading    bool
}

func newListPage(page domain.Page) *listPage {
	return &listPage{page: page, filters: domain.NormalizeFilters(domain.Filters{})}
}

// filterKey is the categorical filter offered on the page.
func (p *listPage) filterKey() string {
	if p.page == domain.PageProjects {
		return domain.FilterTechnology
	}
	return domain.FilterType
}

// filterValue returns the selected value of the categorical filter.
func (p *listPage) filterValue() string {
	if p.page == domain.PageProjects {
		return p.filters.Technology
	}
	return p.filters.Type
}

func (p *listPage) setFilterValue(v string) {
	if p.page == domain.PageProjects {
		p.filters.Technology = v
	} else {
		p.filters.Type = v
	}
}

// filterOptions lists the values of the categorical filter in display order.
func (p *listPage) filterOptions() []string {
	switch p.page {
	case domain.PageExperience:
		return domain.ExperienceTypes
	case domain.PageEducation:
		return domain.EducationTypes
	}
	if len(p.collection.Technologies) > 0 {
		return p.collection.Technologies
	}
	counts := p.listing.Facets[domain.FilterTechnology]
	out := make([]string, 0, len(counts))
	for v := range counts {
		if v != query.All {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// cycleFilter moves the categorical selection by step, wrapping through "all".
func (p *listPage) cycleFilter(step int) {
	values := append([]string{query.All}, p.filterOptions()...)
	current := 0
	for i, v := range values {
		if v == p.filterValue() {
			current = i
			break
		}
	}
	n := len(values)
	p.setFilterValue(values[((current+step)%n+n)%n])
}

// cycleSort moves to the next sort field.
func (p *listPage) cycleSort() {
	fields := sortFields[p.page]
	next := 0
	for i, f := range fields {
		if f == p.filters.SortField {
			next = (i + 1) % len(fields)
			break
		}
	}
	p.filters.SortField = fields[next]
}

// flipOrder switches between ascending and descending.
func (p *listPage) flipOrder() {
	if p.filters.SortOrder == query.OrderDesc {
		p.filters.SortOrder = query.OrderAsc
	} else {
		p.filters.SortOrder = query.OrderDesc
	}
}

// reset clears every filter and the sort.
func (p *listPage) reset() {
	p.filters = domain.NormalizeFilters(domain.Filters{})
}

// apply re-evaluates the filters over the base collection.
func (p *listPage) apply(pages *core.Pages) {
	if !p.loaded {
		return
	}
	p.filters = domain.NormalizeFilters(p.filters)
	p.listing = pages.Filter(p.collection, p.filters)
	p.clampCursor()
}

func (p *listPage) clampCursor() {
	n := len(p.listing.Rows)
	switch {
	case n == 0:
		p.cursor = 0
	case p.cursor >= n:
		p.cursor = n - 1
	case p.cursor < 0:
		p.cursor = 0
	}
}

// move shifts the cursor by delta within the view.
func (p *listPage) move(delta int) {
	p.cursor += delta
	p.clampCursor()
}

// selectedProject returns the project under the cursor on the projects page.
func (p *listPage) selectedProject() (domain.Project, bool) {
	projects, ok := p.listing.Items.([]domain.Project)
	if !ok || p.cursor < 0 || p.cursor >= len(projects) {
		return domain.Project{}, false
	}
	return projects[p.cursor], true
}

// stats returns the derived counters shown next to the summary.
func (p *listPage) stats() string {
	switch p.page {
	case domain.PageProjects:
		s := domain.SummarizeProjects(p.collection.Projects)
		return fmt.Sprintf("%d completed  %d featured", s.Completed, s.Featured)
	case domain.PageExperience:
		s := domain.SummarizeExperience(p.collection.Experience)
		return fmt.Sprintf("%d current  %d featured", s.Current, s.Featured)
	default:
		s := domain.SummarizeEducation(p.collection.Education)
		return fmt.Sprintf("%d current  %d with distinction", s.Current, s.HighGrade)
	}
}
