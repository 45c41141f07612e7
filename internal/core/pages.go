package core

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/format"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/cristianoliveira/folio/internal/query"
	"github.com/cristianoliveira/folio/internal/search"
)

// Pages evaluates the filterable list pages over repository content.
type Pages struct {
	repo       domain.ContentRepository
	projects   *query.Engine[domain.Project]
	experience *query.Engine[domain.Experience]
	education  *query.Engine[domain.Education]
}

// NewPages creates a Pages. A nil provider keeps the engine's default
// case-insensitive substring search.
func NewPages(repo domain.ContentRepository, provider search.Provider) *Pages {
	var opts []query.EngineOption
	if provider != nil {
		opts = append(opts, query.WithProvider(provider))
	}
	return &Pages{
		repo:       repo,
		projects:   query.New(domain.ProjectSchema(), opts...),
		experience: query.New(domain.ExperienceSchema(), opts...),
		education:  query.New(domain.EducationSchema(), opts...),
	}
}

// Projects fetches the projects and filters them. The technology catalogue
// supplies the facet options; without it they come from the projects.
func (p *Pages) Projects(ctx context.Context, f domain.Filters) (query.Result[domain.Project], error) {
	c, err := p.Fetch(ctx, domain.PageProjects)
	if err != nil {
		return query.Result[domain.Project]{}, err
	}
	return p.projects.Apply(c.Projects, domain.ProjectsSpec(f, c.Technologies)), nil
}

// Experience fetches the experience entries and filters them.
func (p *Pages) Experience(ctx context.Context, f domain.Filters) (query.Result[domain.Experience], error) {
	entries, err := p.repo.Experiences(ctx)
	if err != nil {
		return query.Result[domain.Experience]{}, err
	}
	return p.experience.Apply(entries, domain.ExperienceSpec(f)), nil
}

// Education fetches the education entries and filters them. Without an
// explicit sort the timeline order (newest start first) is kept.
func (p *Pages) Education(ctx context.Context, f domain.Filters) (query.Result[domain.Education], error) {
	entries, err := p.repo.Education(ctx)
	if err != nil {
		return query.Result[domain.Education]{}, err
	}
	if f.SortField == "" {
		entries = domain.EducationTimeline(entries)
	}
	return p.education.Apply(entries, domain.EducationSpec(f)), nil
}

// Collection is the unfiltered content of one list page. The TUI fetches it
// once and filters it again on every keystroke.
type Collection struct {
	Page         domain.Page
	Projects     []domain.Project
	Technologies []string
	Experience   []domain.Experience
	Education    []domain.Education
}

// Len returns the number of records in the collection.
func (c Collection) Len() int {
	switch c.Page {
	case domain.PageProjects:
		return len(c.Projects)
	case domain.PageExperience:
		return len(c.Experience)
	default:
		return len(c.Education)
	}
}

// Fetch loads the base collection of page.
func (p *Pages) Fetch(ctx context.Context, page domain.Page) (Collection, error) {
	c := Collection{Page: page}
	switch page {
	case domain.PageProjects:
		projects, err := p.repo.Projects(ctx)
		if err != nil {
			return c, err
		}
		catalogue, err := p.repo.Technologies(ctx)
		if err != nil {
			logging.Warn("technology catalogue unavailable", "err", err)
		}
		c.Projects = projects.Items
		c.Technologies = domain.TechnologyOptions(catalogue, projects.Items)
	case domain.PageExperience:
		entries, err := p.repo.Experiences(ctx)
		if err != nil {
			return c, err
		}
		c.Experience = entries
	case domain.PageEducation:
		entries, err := p.repo.Education(ctx)
		if err != nil {
			return c, err
		}
		c.Education = entries
	default:
		return c, fmt.Errorf("unknown page: %s", page)
	}
	return c, nil
}

// Filter applies f to a fetched collection and flattens the result.
func (p *Pages) Filter(c Collection, f domain.Filters) format.Listing {
	switch c.Page {
	case domain.PageProjects:
		return format.ProjectsListing(p.projects.Apply(c.Projects, domain.ProjectsSpec(f, c.Technologies)))
	case domain.PageExperience:
		return format.ExperienceListing(p.experience.Apply(c.Experience, domain.ExperienceSpec(f)))
	default:
		entries := c.Education
		if f.SortField == "" {
			entries = domain.EducationTimeline(entries)
		}
		return format.EducationListing(p.education.Apply(entries, domain.EducationSpec(f)))
	}
}

// Listing fetches page and evaluates f over it.
func (p *Pages) Listing(ctx context.Context, page domain.Page, f domain.Filters) (format.Listing, error) {
	c, err := p.Fetch(ctx, page)
	if err != nil {
		return format.Listing{}, err
	}
	return p.Filter(c, f), nil
}
