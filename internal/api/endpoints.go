package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cristianoliveira/folio/internal/domain"
)

// Public API paths.
const (
	PathHome            = "/public/home"
	PathRotatingText    = "/public/rotating-text"
	PathStats           = "/public/stats"
	PathProjects        = "/public/projects"
	PathTechnologies    = "/public/technologies"
	PathCategories      = "/public/categories"
	PathContact         = "/public/contact"
	PathSettings        = "/public/settings"
	PathSettingsAll     = "/public/settings/all"
	PathMaintenance     = "/public/settings/maintenance"
	PathTheme           = "/public/settings/theme"
	PathExperiences     = "/public/experiences"
	PathEducation       = "/public/education"
	PathResumes         = "/public/resumes"
	PathPrimaryResume   = "/public/resumes/primary"
	PathAboutExperience = "/public/about/experience"
	PathAboutEducation  = "/public/about/education"
)

// ProjectPath returns the detail path of the project with slug.
func ProjectPath(slug string) string {
	return PathProjects + "/" + url.PathEscape(slug)
}

// ResumeDownloadPath returns the download path of a resume.
func ResumeDownloadPath(id domain.ID) string {
	return PathResumes + "/" + url.PathEscape(id.String()) + "/download"
}

// PageQuery returns the query asking for up to size items.
func PageQuery(size int) url.Values {
	q := url.Values{}
	if size > 0 {
		q.Set("page_size", strconv.Itoa(size))
	}
	return q
}

// DecodeList decodes either a bare JSON array or an {"items": [...]} envelope.
func DecodeList[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var envelope struct {
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// DecodeProjectPage decodes the project list, accepting a bare array too.
func DecodeProjectPage(data []byte) (domain.ProjectPage, error) {
	var page domain.ProjectPage
	if err := json.Unmarshal(data, &page); err == nil && (page.Items != nil || page.Total > 0) {
		if page.Total == 0 {
			page.Total = len(page.Items)
		}
		return page, nil
	}
	items, err := DecodeList[domain.Project](data)
	if err != nil {
		return domain.ProjectPage{}, err
	}
	return domain.ProjectPage{Items: items, Total: len(items)}, nil
}

func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	data, err := c.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	items, err := DecodeList[T](data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return items, nil
}

// Projects fetches the project list.
func (c *Client) Projects(ctx context.Context, pageSize int) (domain.ProjectPage, error) {
	data, err := c.Get(ctx, PathProjects, PageQuery(pageSize))
	if err != nil {
		return domain.ProjectPage{}, err
	}
	page, err := DecodeProjectPage(data)
	if err != nil {
		return domain.ProjectPage{}, fmt.Errorf("decode %s: %w", PathProjects, err)
	}
	return page, nil
}

// Project fetches one project by slug.
func (c *Client) Project(ctx context.Context, slug string) (domain.Project, error) {
	var p domain.Project
	err := c.GetJSON(ctx, ProjectPath(slug), nil, &p)
	return p, err
}

// Technologies fetches the technology catalogue.
func (c *Client) Technologies(ctx context.Context) ([]domain.Technology, error) {
	return getList[domain.Technology](ctx, c, PathTechnologies, nil)
}

// Categories fetches the project categories.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	return getList[domain.Category](ctx, c, PathCategories, nil)
}

// Experiences fetches the experience entries.
func (c *Client) Experiences(ctx context.Context, pageSize int) ([]domain.Experience, error) {
	return getList[domain.Experience](ctx, c, PathExperiences, PageQuery(pageSize))
}

// Education fetches the education entries.
func (c *Client) Education(ctx context.Context, pageSize int) ([]domain.Education, error) {
	return getList[domain.Education](ctx, c, PathEducation, PageQuery(pageSize))
}

// Settings fetches the aggregated site settings.
func (c *Client) Settings(ctx context.Context) (domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := c.GetJSON(ctx, PathSettingsAll, nil, &s)
	return s, err
}

// Theme fetches the theme settings only.
func (c *Client) Theme(ctx context.Context) (domain.Theme, error) {
	var t domain.Theme
	err := c.GetJSON(ctx, PathTheme, nil, &t)
	return t, err
}

// Maintenance fetches the maintenance status.
func (c *Client) Maintenance(ctx context.Context) (domain.Maintenance, error) {
	var m domain.Maintenance
	err := c.GetJSON(ctx, PathMaintenance, nil, &m)
	return m, err
}

// RotatingTexts fetches the hero typewriter settings.
func (c *Client) RotatingTexts(ctx context.Context) (domain.RotatingTexts, error) {
	var r domain.RotatingTexts
	err := c.GetJSON(ctx, PathRotatingText, nil, &r)
	return r, err
}

// Home fetches the home page aggregate.
func (c *Client) Home(ctx context.Context) (domain.Home, error) {
	var h domain.Home
	err := c.GetJSON(ctx, PathHome, nil, &h)
	return h, err
}

// PrimaryResume fetches the primary resume metadata.
func (c *Client) PrimaryResume(ctx context.Context) (domain.Resume, error) {
	var r domain.Resume
	err := c.GetJSON(ctx, PathPrimaryResume, nil, &r)
	return r, err
}

// DefaultResumeFilename is used when the backend sends no Content-Disposition.
const DefaultResumeFilename = "resume.pdf"

// DownloadResume fetches the resume file. The returned name comes from the
// response headers.
func (c *Client) DownloadResume(ctx context.Context, id domain.ID) ([]byte, string, error) {
	resp, err := c.Do(ctx, http.MethodGet, ResumeDownloadPath(id), nil, nil)
	if err != nil {
		return nil, "", err
	}
	name := resp.Filename
	if name == "" {
		name = DefaultResumeFilename
	}
	return resp.Body, name, nil
}

// SubmitContact posts a contact message.
func (c *Client) SubmitContact(ctx context.Context, msg domain.ContactMessage) error {
	_, err := c.Do(ctx, http.MethodPost, PathContact, nil, msg)
	return err
}
