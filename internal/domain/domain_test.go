package domain

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/cristianoliveira/folio/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjects() []Project {
	return []Project{
		{ID: "1", Title: "React App", ShortDescription: "Dashboard", Tags: []string{"frontend"},
			Technologies: []Technology{{Name: "React"}, {Name: "TypeScript"}}, Status: "completed", IsFeatured: true},
		{ID: "2", Title: "Vue App", ShortDescription: "Storefront", Tags: []string{"shop"},
			Technologies: []Technology{{Name: "Vue"}}, Status: "in_progress"},
		{ID: "3", Title: "API Server", ShortDescription: "REST backend for the react dashboard",
			Technologies: []Technology{{Name: "Go"}, {Name: "react"}}, Status: "completed"},
	}
}

func projectTitles(ps []Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func TestIDUnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	var rec struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 42, "b": "featured", "c": null}`), &rec))
	assert.Equal(t, ID("42"), rec.A)
	assert.Equal(t, ID("featured"), rec.B)
	assert.Equal(t, ID(""), rec.C)

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

func TestProjectDecoding(t *testing.T) {
	payload := `{"items":[{"id":7,"title":"Folio","slug":"folio","status":"completed",
		"category":{"id":1,"name":"Web"},"technologies":[{"id":3,"name":"Go"}],
		"images":[{"id":9,"image":"/media/a.png","caption":"Home"}],"is_featured":true}],"total":1}`
	var page ProjectPage
	require.NoError(t, json.Unmarshal([]byte(payload), &page))
	require.Len(t, page.Items, 1)
	p := page.Items[0]
	assert.Equal(t, ID("7"), p.ID)
	assert.Equal(t, "Web", p.CategoryName())
	assert.Equal(t, []string{"Go"}, p.TechnologyNames())
	assert.True(t, p.IsCompleted())
	assert.Equal(t, ID("9"), p.Images[0].ID)
}

func TestProjectsSpecSearch(t *testing.T) {
	res := query.Apply(ProjectSchema(), sampleProjects(), ProjectsSpec(Filters{Search: "react"}, nil))
	assert.Equal(t, []string{"React App", "API Server"}, projectTitles(res.View))
}

func TestProjectsSpecTechnologyIsCaseInsensitive(t *testing.T) {
	techs := []string{"React", "Vue", "Go", "Rust"}
	res := query.Apply(ProjectSchema(), sampleProjects(), ProjectsSpec(Filters{Technology: "REACT"}, techs))
	assert.Equal(t, []string{"React App", "API Server"}, projectTitles(res.View))

	assert.Equal(t, 3, res.Count(FilterTechnology, query.All))
	assert.Equal(t, 2, res.Count(FilterTechnology, "React"))
	assert.Equal(t, 1, res.Count(FilterTechnology, "Vue"))
	assert.Equal(t, 0, res.Count(FilterTechnology, "Rust"))
}

func TestProjectsSpecFeatured(t *testing.T) {
	res := query.Apply(ProjectSchema(), sampleProjects(), ProjectsSpec(Filters{Featured: true}, nil))
	assert.Equal(t, []string{"React App"}, projectTitles(res.View))
}

func TestProjectsSpecNeutral(t *testing.T) {
	spec := ProjectsSpec(Filters{}, []string{"React"})
	assert.True(t, spec.IsNeutral())
	res := query.Apply(ProjectSchema(), sampleProjects(), spec)
	assert.Equal(t, projectTitles(sampleProjects()), projectTitles(res.View))
}

func TestExperienceSpec(t *testing.T) {
	entries := []Experience{
		{Position: "Engineer", Company: "Acme", ExperienceType: ExperienceFullTime, IsCurrent: true, IsFeatured: true},
		{Position: "Consultant", Company: "Globex", ExperienceType: ExperienceContract},
		{Position: "Intern", Company: "Acme", ExperienceType: ExperienceInternship, Description: "go tooling"},
	}
	schema := ExperienceSchema()

	res := query.Apply(schema, entries, ExperienceSpec(Filters{Type: ExperienceContract}))
	require.Len(t, res.View, 1)
	assert.Equal(t, "Consultant", res.View[0].Position)
	assert.Equal(t, 1, res.Count(FilterType, ExperienceFullTime))
	assert.Equal(t, 0, res.Count(FilterType, ExperienceFreelance))

	res = query.Apply(schema, entries, ExperienceSpec(Filters{Search: "acme", Featured: true}))
	require.Len(t, res.View, 1)
	assert.Equal(t, "Engineer", res.View[0].Position)
	assert.Equal(t, 3, res.Count(FilterType, query.All))

	stats := SummarizeExperience(entries)
	assert.Equal(t, ExperienceStats{Total: 3, Current: 1, Featured: 1}, stats)
}

func TestEducationSpecAndTimeline(t *testing.T) {
	entries := []Education{
		{Degree: "BSc", Institution: "State", EducationType: EducationBachelors, StartDate: "2012-09-01", GradeValue: 92},
		{Degree: "MSc", Institution: "Tech", EducationType: EducationMasters, StartDate: "2016-09-01", IsCurrent: true},
		{Degree: "CKA", Institution: "CNCF", EducationType: EducationCertification, StartDate: "2020-01-10", GradeValue: 85},
	}

	res := query.Apply(EducationSchema(), entries, EducationSpec(Filters{Search: "tech"}))
	require.Len(t, res.View, 1)
	assert.Equal(t, "MSc", res.View[0].Degree)
	assert.Equal(t, 1, res.Count(FilterType, EducationBachelors))
	assert.Equal(t, 0, res.Count(FilterType, EducationPhD))

	timeline := EducationTimeline(entries)
	require.Len(t, timeline, 3)
	assert.Equal(t, []string{"CKA", "MSc", "BSc"}, []string{timeline[0].Degree, timeline[1].Degree, timeline[2].Degree})
	assert.Equal(t, "BSc", entries[0].Degree, "timeline must not reorder the input")

	assert.Equal(t, EducationStats{Total: 3, Current: 1, HighGrade: 1}, SummarizeEducation(entries))
}

func TestSummarizeProjects(t *testing.T) {
	assert.Equal(t, ProjectStats{Total: 3, Completed: 2, Featured: 1}, SummarizeProjects(sampleProjects()))
	assert.Equal(t, ProjectStats{}, SummarizeProjects(nil))
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		in      string
		want    Page
		wantErr bool
	}{
		{"projects", PageProjects, false},
		{"Project", PageProjects, false},
		{"experiences", PageExperience, false},
		{" education ", PageEducation, false},
		{"blog", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePage(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "All", TypeLabel(query.All))
	assert.Equal(t, "Full Time", TypeLabel(ExperienceFullTime))
	assert.Equal(t, "PhD", TypeLabel(EducationPhD))
	assert.Equal(t, "Certification", TypeLabel(EducationCertification))
}

func TestMaintenanceMessageDefault(t *testing.T) {
	assert.Equal(t, DefaultMaintenanceMessage, Maintenance{MaintenanceMode: true}.Message())
	assert.Equal(t, "back at 5", Maintenance{MaintenanceMessage: "back at 5"}.Message())
}

func TestSocialLinksSkipsBlankURLs(t *testing.T) {
	s := SiteSettings{Social: map[string]string{
		"twitter":  "",
		"github":   "https://github.com/me",
		"linkedin": "https://linkedin.com/in/me",
		"mastodon": "https://fosstodon.org/@me",
	}}
	links := s.SocialLinks()
	require.Len(t, links, 3)
	assert.Equal(t, SocialLink{Platform: "github", Name: "GitHub", URL: "https://github.com/me"}, links[0])
	assert.Equal(t, "LinkedIn", links[1].Name)
	assert.Equal(t, "Mastodon", links[2].Name)
}

func TestFiltersFromQuery(t *testing.T) {
	f, err := FiltersFromQuery(url.Values{
		"q":          {" react "},
		"type":       {"full_time"},
		"featured":   {"true"},
		"sort":       {"start_date"},
		"order":      {"DESC"},
		"technology": {""},
	})
	require.NoError(t, err)
	assert.Equal(t, Filters{
		Search:     "react",
		Type:       ExperienceFullTime,
		Technology: query.All,
		Featured:   true,
		SortField:  FieldStartDate,
		SortOrder:  query.OrderDesc,
	}, f)

	f, err = FiltersFromQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, query.All, f.Type)
	assert.Equal(t, query.OrderAsc, f.SortOrder)

	_, err = FiltersFromQuery(url.Values{"featured": {"maybe"}})
	assert.ErrorContains(t, err, "featured")
	_, err = FiltersFromQuery(url.Values{"order": {"sideways"}})
	assert.Error(t, err)
}

func TestTechnologyOptions(t *testing.T) {
	assert.Equal(t, []string{"Go", "React", "TypeScript", "Vue"}, TechnologyOptions(nil, sampleProjects()))
	assert.Equal(t, []string{"Go", "Rust"}, TechnologyOptions([]Technology{{Name: "Rust"}, {Name: "Go"}, {Name: "go"}, {Name: " "}}, sampleProjects()))
	assert.Empty(t, TechnologyOptions(nil, nil))
}

func TestNormalizeFiltersKeepsSearchText(t *testing.T) {
	f := NormalizeFilters(Filters{Search: " App"})
	assert.Equal(t, " App", f.Search)
	assert.Equal(t, query.All, f.Type)
	assert.Equal(t, query.OrderAsc, f.SortOrder)

	res := query.Apply(ProjectSchema(), []Project{{Title: "React App"}, {Title: "AppStore"}}, ProjectsSpec(f, nil))
	assert.Equal(t, []string{"React App"}, projectTitles(res.View))
}
