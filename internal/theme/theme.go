// Package theme resolves the site configuration once per session and turns
// its colours into terminal styles.
package theme

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/sanitize"
)

const (
	DefaultPrimary   = "#3b82f6"
	DefaultSecondary = "#8b5cf6"
	DefaultSiteName  = "Portfolio"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether c is a #rgb or #rrggbb colour.
func ValidColor(c string) bool {
	return hexColor.MatchString(strings.TrimSpace(c))
}

// SiteConfig is the resolved site identity and theme. It is passed
// explicitly to everything that renders.
type SiteConfig struct {
	Site   domain.SiteInfo
	Theme  domain.Theme
	Social []domain.SocialLink
	SEO    domain.SEOSettings
}

// DefaultSiteConfig is used until settings are fetched.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		Site:  domain.SiteInfo{Name: DefaultSiteName},
		Theme: domain.Theme{PrimaryColor: DefaultPrimary, SecondaryColor: DefaultSecondary, DarkMode: true},
	}
}

// Resolve builds a SiteConfig from fetched settings, falling back to the
// defaults for missing or malformed values. Descriptions are reduced to
// plain text.
func Resolve(s domain.SiteSettings) SiteConfig {
	cfg := DefaultSiteConfig()
	cfg.Site = s.Site
	if strings.TrimSpace(cfg.Site.Name) == "" {
		cfg.Site.Name = DefaultSiteName
	}
	cfg.Site.SelfDescription = sanitize.Text(cfg.Site.SelfDescription)
	cfg.Site.SelfLongDescription = sanitize.Text(cfg.Site.SelfLongDescription)

	cfg.Theme.DarkMode = s.Theme.DarkMode
	if ValidColor(s.Theme.PrimaryColor) {
		cfg.Theme.PrimaryColor = strings.TrimSpace(s.Theme.PrimaryColor)
	}
	if ValidColor(s.Theme.SecondaryColor) {
		cfg.Theme.SecondaryColor = strings.TrimSpace(s.Theme.SecondaryColor)
	}
	cfg.Social = s.SocialLinks()
	cfg.SEO = s.SEO
	return cfg
}

// Title returns the window title for a page.
func (c SiteConfig) Title(page string) string {
	if page == "" {
		return c.Site.Name
	}
	return page + " | " + c.Site.Name
}

// Styles are the lipgloss styles derived from a SiteConfig.
type Styles struct {
	Header        lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Accent        lipgloss.Style
	Muted         lipgloss.Style
	Text          lipgloss.Style
	Card          lipgloss.Style
	SelectedCard  lipgloss.Style
	FacetActive   lipgloss.Style
	FacetInactive lipgloss.Style
	Badge         lipgloss.Style
	Error         lipgloss.Style
	Warning       lipgloss.Style
	Success       lipgloss.Style
	Lightbox      lipgloss.Style
	Footer        lipgloss.Style
}

// NewStyles derives styles from cfg.
func NewStyles(cfg SiteConfig) Styles {
	primary := lipgloss.Color(cfg.Theme.PrimaryColor)
	secondary := lipgloss.Color(cfg.Theme.SecondaryColor)

	fg := lipgloss.Color("#111827")
	muted := lipgloss.Color("#6b7280")
	surface := lipgloss.Color("#f3f4f6")
	if cfg.Theme.DarkMode {
		fg = lipgloss.Color("#f9fafb")
		muted = lipgloss.Color("#9ca3af")
		surface = lipgloss.Color("#1f2937")
	}

	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(primary).Padding(0, 1),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Subtitle: lipgloss.NewStyle().Foreground(secondary),
		Accent:   lipgloss.NewStyle().Foreground(secondary).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Text:     lipgloss.NewStyle().Foreground(fg),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		SelectedCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		FacetActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(primary).Padding(0, 1),
		FacetInactive: lipgloss.NewStyle().Foreground(fg).Background(surface).Padding(0, 1),
		Badge:         lipgloss.NewStyle().Foreground(secondary).Border(lipgloss.NormalBorder(), false, true),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		Warning:       lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")),
		Success:       lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		Lightbox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(secondary).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
