package state

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/errors"
	"github.com/cristianoliveira/folio/internal/tui/render"
)

var tabs = []struct {
	key    string
	label  string
	screen screen
}{
	{"1", "Home", screenHome},
	{"2", "Projects", screenProjects},
	{"3", "Experience", screenExperience},
	{"4", "Education", screenEducation},
	{"5", "Contact", screenContact},
}

// View renders the current screen. Maintenance mode replaces everything and
// an open lightbox covers the screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width, height := m.ui.Width(), m.ui.Height()
	if m.maintenance.MaintenanceMode {
		return render.Maintenance(m.styles, m.maintenance, m.site.Site.Name, width, height)
	}
	if m.lightboxOpen() {
		return m.lightboxView()
	}
	m.refreshContent()

	var b strings.Builder
	b.WriteString(m.headerView(width))
	b.WriteString("\n\n")
	if l, ok := m.currentList(); ok {
		b.WriteString(m.listControlsView(l, width))
		b.WriteString("\n")
	}
	b.WriteString(m.ui.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.footerView(width))
	return b.String()
}

func (m *Model) headerView(width int) string {
	active := m.screen
	if active == screenProject {
		active = screenProjects
	}
	items := make([]render.Tab, 0, len(tabs))
	for _, t := range tabs {
		items = append(items, render.Tab{Key: t.key, Label: t.label, Active: t.screen == active})
	}
	return render.Header(m.styles, m.site.Site.Name, items, width)
}

// listControlsView renders the search box, the filter bar and the summary.
func (m *Model) listControlsView(l *listPage, width int) string {
	name := "Type"
	label := domain.TypeLabel
	if l.page == domain.PageProjects {
		name = "Technology"
		label = nil
	}
	bar := render.FacetBar(m.styles, name,
		render.FacetOptions(l.listing.Facets[l.filterKey()], l.filterOptions(), l.filterValue(), label), width)

	sortLabel := "natural order"
	if l.filters.SortField != "" {
		sortLabel = fmt.Sprintf("sort: %s %s", l.filters.SortField, l.filters.SortOrder)
	}
	controls := render.SearchBox(m.styles, m.search.View(), l.filters.Search, m.searching) + "  " +
		render.Toggle(m.styles, "*", "featured", l.filters.Featured) + "  " +
		m.styles.Muted.Render(sortLabel)

	var summary string
	switch {
	case l.loading && !l.loaded:
		summary = m.spinner.View() + m.styles.Muted.Render(" loading "+string(l.page))
	case !l.loaded:
		summary = m.styles.Muted.Render("nothing loaded, press r to retry")
	default:
		summary = render.Summary(m.styles, len(l.listing.Rows), l.listing.Total, l.page, l.stats())
	}
	return strings.Join([]string{controls, bar, summary}, "\n")
}

// refreshContent renders the body of the current screen into the viewport.
func (m *Model) refreshContent() {
	width := m.ui.Width()
	var content string
	switch m.screen {
	case screenHome:
		featured := m.home.FeaturedProjects
		if len(featured) > featuredOnHome {
			featured = featured[:featuredOnHome]
		}
		content = render.Home(m.styles, render.HomeState{
			Site:     m.site,
			Typed:    m.typed,
			Home:     m.home,
			Loaded:   m.homeLoaded,
			Featured: featured,
		}, width)
	case screenContact:
		content = m.contactView()
	case screenProject:
		if m.project != nil {
			content = render.ProjectDetail(m.styles, *m.project, width)
		}
	default:
		l, _ := m.currentList()
		if l.loaded {
			content = render.Table(m.styles, l.listing, l.cursor, width)
		}
	}
	m.ui.viewport.SetContent(content)
	if l, ok := m.currentList(); ok && l.loaded {
		// the table header takes the first line
		m.ui.EnsureVisible(l.cursor + 1)
	}
}

func (m *Model) statusView() string {
	msg, ok := m.errorHandler.Visible(errors.DefaultMessageTTL)
	if !ok {
		return ""
	}
	return render.Status(m.styles, msg)
}

func (m *Model) footerView(width int) string {
	st := render.FooterState{
		Screen:      screenName(m.screen),
		SearchMode:  m.searching,
		FormMode:    m.screen == screenContact && m.contact.editing,
		Offline:     m.opts.Backend.Offline(),
		ViewingItem: m.screen == screenProject,
		HasGallery:  m.gallery != nil && m.gallery.Len() > 0,
	}
	if l, ok := m.currentList(); ok {
		st.HasTechFlt = l.page == domain.PageProjects
		st.HasTypeFlt = !st.HasTechFlt
	}
	return render.Footer(m.styles, st, width)
}

func screenName(s screen) string {
	if page, ok := screenPages[s]; ok {
		return string(page)
	}
	switch s {
	case screenContact:
		return "contact"
	case screenProject:
		return "project"
	default:
		return "home"
	}
}
