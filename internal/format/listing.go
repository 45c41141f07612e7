package format

import (
	"strconv"
	"strings"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/query"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func period(start, end string, current bool) string {
	switch {
	case start == "" && end == "":
		return ""
	case current:
		return start + " - present"
	case end == "":
		return start
	default:
		return start + " - " + end
	}
}

// ProjectsListing flattens a projects result.
func ProjectsListing(res query.Result[domain.Project]) Listing {
	rows := make([][]string, 0, len(res.View))
	for _, p := range res.View {
		rows = append(rows, []string{
			p.Title,
			p.CategoryName(),
			p.Status,
			strings.Join(p.TechnologyNames(), ", "),
			yesNo(p.IsFeatured),
		})
	}
	return Listing{
		Page: domain.PageProjects,
		Columns: []Column{
			{Name: "Title", Width: 28},
			{Name: "Category", Width: 14},
			{Name: "Status", Width: 11},
			{Name: "Technologies", Width: 30},
			{Name: "Featured", Width: 8},
		},
		Rows:   rows,
		Items:  nonNil(res.View),
		Facets: res.Facets,
		Total:  res.Total,
	}
}

// ExperienceListing flattens an experience result.
func ExperienceListing(res query.Result[domain.Experience]) Listing {
	rows := make([][]string, 0, len(res.View))
	for _, e := range res.View {
		rows = append(rows, []string{
			e.Position,
			e.Company,
			domain.TypeLabel(e.ExperienceType),
			period(e.StartDate, e.EndDate, e.IsCurrent),
			e.Location,
		})
	}
	return Listing{
		Page: domain.PageExperience,
		Columns: []Column{
			{Name: "Position", Width: 26},
			{Name: "Company", Width: 20},
			{Name: "Type", Width: 10},
			{Name: "Period", Width: 23},
			{Name: "Location", Width: 16},
		},
		Rows:   rows,
		Items:  nonNil(res.View),
		Facets: res.Facets,
		Total:  res.Total,
	}
}

// EducationListing flattens an education result.
func EducationListing(res query.Result[domain.Education]) Listing {
	rows := make([][]string, 0, len(res.View))
	for _, e := range res.View {
		grade := e.FormattedGrade
		if grade == "" && e.GradeValue > 0 {
			grade = strconv.FormatFloat(e.GradeValue, 'f', -1, 64)
		}
		rows = append(rows, []string{
			e.Degree,
			e.Institution,
			domain.TypeLabel(e.EducationType),
			period(e.StartDate, e.EndDate, e.IsCurrent),
			grade,
		})
	}
	return Listing{
		Page: domain.PageEducation,
		Columns: []Column{
			{Name: "Degree", Width: 28},
			{Name: "Institution", Width: 24},
			{Name: "Type", Width: 13},
			{Name: "Period", Width: 23},
			{Name: "Grade", Width: 6, Alignment: "right"},
		},
		Rows:   rows,
		Items:  nonNil(res.View),
		Facets: res.Facets,
		Total:  res.Total,
	}
}

// nonNil keeps JSON output an array for empty views.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
