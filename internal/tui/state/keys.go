package state

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/folio/internal/domain"
)

// screenKeys maps the number keys to the navigation tabs.
var screenKeys = map[string]screen{
	"1": screenHome,
	"2": screenProjects,
	"3": screenExperience,
	"4": screenEducation,
	"5": screenContact,
}

// handleKeyMsg routes a key to the layer that owns it: the maintenance
// screen, the lightbox, the search box, the contact form, then the screen.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if m.maintenance.MaintenanceMode {
		if key == "q" || key == "ctrl+c" {
			return m.quit()
		}
		return nil
	}
	if m.lightboxOpen() {
		return m.handleLightboxKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.screen == screenContact {
		if cmd, handled := m.handleContactKey(msg); handled {
			return cmd
		}
	}

	switch key {
	case "q", "ctrl+c":
		return m.quit()
	case "r":
		return m.reload()
	}
	if s, ok := screenKeys[key]; ok {
		return m.setScreen(s)
	}
	if l, ok := m.currentList(); ok {
		return m.handleListKey(l, key)
	}
	if m.screen == screenProject {
		return m.handleProjectKey(key)
	}
	m.scroll(key)
	return nil
}

// handleListKey handles cursor movement and filter changes on a list page.
// Every filter change re-applies the filters immediately.
func (m *Model) handleListKey(l *listPage, key string) tea.Cmd {
	switch key {
	case "j", "down":
		l.move(1)
	case "k", "up":
		l.move(-1)
	case "pgdown", "ctrl+d":
		l.move(m.ui.viewport.Height)
	case "pgup", "ctrl+u":
		l.move(-m.ui.viewport.Height)
	case "g", "home":
		l.cursor = 0
	case "G", "end":
		l.move(len(l.listing.Rows))
	case "/":
		m.searching = true
		m.lastSearch = l.filters.Search
		m.search.SetValue(l.filters.Search)
		m.search.CursorEnd()
		return m.search.Focus()
	case "t":
		l.cycleFilter(1)
	case "T":
		l.cycleFilter(-1)
	case "*", "f":
		l.filters.Featured = !l.filters.Featured
	case "s":
		l.cycleSort()
	case "S":
		l.flipOrder()
	case "x":
		l.reset()
	case "enter", "o":
		if l.page == domain.PageProjects {
			return m.openSelected()
		}
		return nil
	default:
		return nil
	}
	l.apply(m.opts.Pages)
	return nil
}

// handleSearchKey edits the search query. The view is filtered on every
// keystroke; esc restores the query the search started with.
func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	l, ok := m.currentList()
	if !ok {
		m.searching = false
		return nil
	}
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "enter":
		m.searching = false
		m.search.Blur()
		return nil
	case "esc":
		m.searching = false
		m.search.Blur()
		l.filters.Search = m.lastSearch
		l.apply(m.opts.Pages)
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != l.filters.Search {
		l.filters.Search = m.search.Value()
		l.cursor = 0
		l.apply(m.opts.Pages)
	}
	return cmd
}

// handleProjectKey scrolls the detail and opens the gallery.
func (m *Model) handleProjectKey(key string) tea.Cmd {
	switch key {
	case "esc", "backspace", "h":
		return m.setScreen(screenProjects)
	case "enter", "o", " ":
		if m.gallery != nil {
			m.gallery.Open(0)
		}
		return nil
	case "g":
		if m.gallery != nil {
			m.gallery.ToggleViewMode()
		}
		return nil
	}
	m.scroll(key)
	return nil
}

// scroll moves the viewport of text screens. It is ignored while the
// lightbox holds the scroll.
func (m *Model) scroll(key string) {
	if m.host.scrollLocked {
		return
	}
	vp := &m.ui.viewport
	switch key {
	case "j", "down":
		vp.SetYOffset(vp.YOffset + 1)
	case "k", "up":
		vp.SetYOffset(vp.YOffset - 1)
	case "pgdown", "ctrl+d":
		vp.SetYOffset(vp.YOffset + vp.Height)
	case "pgup", "ctrl+u":
		vp.SetYOffset(vp.YOffset - vp.Height)
	case "home":
		vp.GotoTop()
	case "end":
		vp.GotoBottom()
	}
}

// handleMouseMsg handles the wheel on screens and routes mouse events to
// the lightbox while it is open.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	if m.maintenance.MaintenanceMode {
		return nil
	}
	if m.lightboxOpen() {
		return m.handleLightboxMouse(msg)
	}
	var key string
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		key = "down"
	case tea.MouseButtonWheelUp:
		key = "up"
	default:
		return nil
	}
	if l, ok := m.currentList(); ok {
		return m.handleListKey(l, key)
	}
	m.scroll(key)
	return nil
}

// reload drops the loaded collections and fetches the current page again.
func (m *Model) reload() tea.Cmd {
	for _, l := range m.lists {
		if !l.loading {
			l.loaded = false
		}
	}
	cmds := []tea.Cmd{m.loadSite()}
	if l, ok := m.currentList(); ok {
		cmds = append(cmds, m.loadPage(l.page, true))
	}
	return tea.Batch(cmds...)
}
