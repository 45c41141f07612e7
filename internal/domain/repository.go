package domain

import "context"

// ContentRepository provides the portfolio content consumed by the pages.
type ContentRepository interface {
	Projects(ctx context.Context) (ProjectPage, error)
	Project(ctx context.Context, slug string) (Project, error)
	Technologies(ctx context.Context) ([]Technology, error)
	Experiences(ctx context.Context) ([]Experience, error)
	Education(ctx context.Context) ([]Education, error)
	Settings(ctx context.Context) (SiteSettings, error)
	Maintenance(ctx context.Context) (Maintenance, error)
	RotatingTexts(ctx context.Context) (RotatingTexts, error)
	SubmitContact(ctx context.Context, msg ContactMessage) error
}
