package core

import (
	"context"
	"errors"
	"testing"

	"github.com/cristianoliveira/folio/internal/api"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	domain.ContentRepository
	projects     []domain.Project
	technologies []domain.Technology
	techErr      error
	experience   []domain.Experience
	education    []domain.Education
	err          error
}

func (s *stubRepo) Projects(context.Context) (domain.ProjectPage, error) {
	return domain.ProjectPage{Items: s.projects, Total: len(s.projects)}, s.err
}

func (s *stubRepo) Technologies(context.Context) ([]domain.Technology, error) {
	return s.technologies, s.techErr
}

func (s *stubRepo) Experiences(context.Context) ([]domain.Experience, error) {
	return s.experience, s.err
}

func (s *stubRepo) Education(context.Context) ([]domain.Education, error) {
	return s.education, s.err
}

func portfolioRepo() *stubRepo {
	return &stubRepo{
		projects: []domain.Project{
			{Title: "Folio", Slug: "folio", Technologies: []domain.Technology{{Name: "Go"}}, IsFeatured: true},
			{Title: "Shop", Slug: "shop", Technologies: []domain.Technology{{Name: "React"}}},
		},
		technologies: []domain.Technology{{Name: "Go"}, {Name: "React"}, {Name: "Rust"}},
		experience: []domain.Experience{
			{Position: "Engineer", Company: "Acme", ExperienceType: domain.ExperienceFullTime, IsCurrent: true},
			{Position: "Consultant", Company: "Self", ExperienceType: domain.ExperienceFreelance},
		},
		education: []domain.Education{
			{Degree: "BSc", EducationType: domain.EducationBachelors, StartDate: "2010-09-01"},
			{Degree: "MSc", EducationType: domain.EducationMasters, StartDate: "2014-09-01"},
		},
	}
}

func TestPagesProjects(t *testing.T) {
	pages := NewPages(portfolioRepo(), nil)
	res, err := pages.Projects(context.Background(), domain.Filters{Technology: "go"})
	require.NoError(t, err)

	require.Len(t, res.View, 1)
	assert.Equal(t, "folio", res.View[0].Slug)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 0, res.Count(domain.FilterTechnology, "Rust"), "catalogue entries get a zero count")
	assert.Contains(t, res.Facets[domain.FilterTechnology], "Rust")
}

func TestPagesProjectsWithoutCatalogue(t *testing.T) {
	repo := portfolioRepo()
	repo.technologies, repo.techErr = nil, api.ErrUnavailable
	res, err := NewPages(repo, nil).Projects(context.Background(), domain.Filters{})
	require.NoError(t, err)
	assert.Len(t, res.View, 2)
	assert.NotContains(t, res.Facets[domain.FilterTechnology], "Rust")
	assert.Equal(t, 1, res.Count(domain.FilterTechnology, "React"))
}

func TestPagesExperienceUsesProvider(t *testing.T) {
	provider, err := search.NewProvider(search.ModeToken, search.WithCaseInsensitive(true))
	require.NoError(t, err)
	res, err := NewPages(portfolioRepo(), provider).Experience(context.Background(), domain.Filters{Search: "acme engineer"})
	require.NoError(t, err)
	require.Len(t, res.View, 1)
	assert.Equal(t, "Acme", res.View[0].Company)
	assert.Equal(t, 1, res.Count(domain.FilterType, domain.ExperienceFreelance))
}

func TestPagesEducationTimeline(t *testing.T) {
	pages := NewPages(portfolioRepo(), nil)
	res, err := pages.Education(context.Background(), domain.Filters{})
	require.NoError(t, err)
	require.Len(t, res.View, 2)
	assert.Equal(t, "MSc", res.View[0].Degree)

	res, err = pages.Education(context.Background(), domain.Filters{SortField: domain.FieldDegree})
	require.NoError(t, err)
	assert.Equal(t, "BSc", res.View[0].Degree)
}

func TestPagesListing(t *testing.T) {
	pages := NewPages(portfolioRepo(), nil)
	for _, page := range domain.Pages {
		l, err := pages.Listing(context.Background(), page, domain.Filters{})
		require.NoError(t, err)
		assert.Equal(t, page, l.Page)
		assert.Len(t, l.Rows, 2)
	}
	_, err := pages.Listing(context.Background(), "blog", domain.Filters{})
	assert.ErrorContains(t, err, "unknown page")

	repo := portfolioRepo()
	repo.err = errors.New("boom")
	_, err = NewPages(repo, nil).Listing(context.Background(), domain.PageExperience, domain.Filters{})
	assert.EqualError(t, err, "boom")
}

func TestPagesFetchThenFilter(t *testing.T) {
	pages := NewPages(portfolioRepo(), nil)
	c, err := pages.Fetch(context.Background(), domain.PageProjects)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.NotEmpty(t, c.Technologies)

	all := pages.Filter(c, domain.Filters{})
	assert.Len(t, all.Rows, 2)

	filtered := pages.Filter(c, domain.Filters{Search: "no such project"})
	assert.Empty(t, filtered.Rows)
	assert.Equal(t, 2, filtered.Total)

	_, err = pages.Fetch(context.Background(), "blog")
	assert.ErrorContains(t, err, "unknown page")
}
