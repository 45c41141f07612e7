package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/sanitize"
)

type fieldWriter struct {
	w   io.Writer
	err error
}

func (fw *fieldWriter) line(format string, args ...any) {
	if fw.err != nil {
		return
	}
	_, fw.err = fmt.Fprintf(fw.w, format+"\n", args...)
}

func (fw *fieldWriter) field(label, value string) {
	if value == "" {
		return
	}
	fw.line("%-14s %s", label+":", value)
}

func (fw *fieldWriter) list(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fw.line("%s:", label)
	for _, item := range items {
		fw.line("  • %s", item)
	}
}

// FormatProject writes a project detail view. HTML descriptions are reduced
// to plain text.
func FormatProject(w io.Writer, p domain.Project) error {
	fw := &fieldWriter{w: w}
	fw.line("%s", p.Title)
	fw.line("%s", strings.Repeat("=", len([]rune(p.Title))))
	fw.field("Slug", p.Slug)
	fw.field("Category", p.CategoryName())
	fw.field("Status", p.Status)
	if p.IsFeatured {
		fw.field("Featured", "yes")
	}
	fw.field("Started", p.StartDate)
	fw.field("Completed", p.CompletionDate)
	fw.field("Technologies", strings.Join(p.TechnologyNames(), ", "))
	fw.field("Tags", strings.Join(p.Tags, ", "))
	fw.field("GitHub", p.GithubURL)
	fw.field("Demo", p.DemoURL)
	fw.field("Docs", p.DocumentationURL)
	if n := len(p.Images); n > 0 || p.FeaturedImage != "" {
		if p.FeaturedImage != "" {
			n++
		}
		fw.field("Images", fmt.Sprintf("%d", n))
	}
	if text := sanitize.Text(p.ShortDescription); text != "" {
		fw.line("")
		fw.line("%s", text)
	}
	if text := sanitize.Text(p.LongDescription); text != "" {
		fw.line("")
		fw.line("%s", text)
	}
	if len(p.Features) > 0 {
		fw.line("")
		fw.list("Features", p.Features)
	}
	if text := sanitize.Text(p.InstallationGuide); text != "" {
		fw.line("")
		fw.line("Installation:")
		fw.line("%s", text)
	}
	return fw.err
}

// FormatProjectStats writes the header counters of the projects page.
func FormatProjectStats(w io.Writer, s domain.ProjectStats) error {
	_, err := fmt.Fprintf(w, "Projects: %d  Completed: %d  Featured: %d\n", s.Total, s.Completed, s.Featured)
	return err
}

// FormatExperienceStats writes the header counters of the experience page.
func FormatExperienceStats(w io.Writer, s domain.ExperienceStats) error {
	_, err := fmt.Fprintf(w, "Positions: %d  Current: %d  Featured: %d\n", s.Total, s.Current, s.Featured)
	return err
}

// FormatEducationStats writes the header counters of the education page.
func FormatEducationStats(w io.Writer, s domain.EducationStats) error {
	_, err := fmt.Fprintf(w, "Entries: %d  In progress: %d  High grades: %d\n", s.Total, s.Current, s.HighGrade)
	return err
}

// FormatMaintenance writes the maintenance status line.
func FormatMaintenance(w io.Writer, m domain.Maintenance) error {
	if !m.MaintenanceMode {
		_, err := fmt.Fprintln(w, "Site is online.")
		return err
	}
	_, err := fmt.Fprintf(w, "Site is under maintenance: %s\n", m.Message())
	return err
}
