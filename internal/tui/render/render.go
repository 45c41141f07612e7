// Package render draws the TUI screens. Every function is pure: it takes the
// values to show and the styles to show them with and returns a string.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/errors"
	"github.com/cristianoliveira/folio/internal/format"
	"github.com/cristianoliveira/folio/internal/query"
	"github.com/cristianoliveira/folio/internal/theme"
	"github.com/mattn/go-runewidth"
)

const (
	ellipsis     = "…"
	columnGap    = 2
	cursorSymbol = "›"
	minColumn    = 4
)

// Tab is one entry of the navigation bar.
type Tab struct {
	Key    string
	Label  string
	Active bool
}

// Header renders the site name followed by the navigation tabs.
func Header(s theme.Styles, site string, tabs []Tab, width int) string {
	parts := []string{s.Header.Render(site)}
	for _, t := range tabs {
		label := t.Key + " " + t.Label
		if t.Active {
			parts = append(parts, s.FacetActive.Render(label))
		} else {
			parts = append(parts, s.Muted.Render(label))
		}
	}
	return clip(strings.Join(parts, " "), width)
}

// FacetOption is one filter button.
type FacetOption struct {
	Value  string
	Label  string
	Count  int
	Active bool
}

// FacetOptions builds the buttons of one filter: "all" first, then order.
// Counts come from the facets of the unfiltered collection.
func FacetOptions(counts map[string]int, order []string, active string, label func(string) string) []FacetOption {
	if label == nil {
		label = func(v string) string { return v }
	}
	values := append([]string{query.All}, order...)
	out := make([]FacetOption, 0, len(values))
	for _, v := range values {
		l := label(v)
		if v == query.All {
			l = "All"
		}
		out = append(out, FacetOption{
			Value:  v,
			Label:  l,
			Count:  counts[v],
			Active: strings.EqualFold(v, active),
		})
	}
	return out
}

// FacetBar renders a labelled row of filter buttons.
func FacetBar(s theme.Styles, name string, options []FacetOption, width int) string {
	parts := []string{s.Muted.Render(name + ":")}
	for _, o := range options {
		label := fmt.Sprintf("%s (%d)", o.Label, o.Count)
		if o.Active {
			parts = append(parts, s.FacetActive.Render(label))
		} else {
			parts = append(parts, s.FacetInactive.Render(label))
		}
	}
	return clip(strings.Join(parts, " "), width)
}

// Toggle renders an on/off filter such as "featured only".
func Toggle(s theme.Styles, key, label string, on bool) string {
	mark := "[ ]"
	style := s.FacetInactive
	if on {
		mark = "[x]"
		style = s.FacetActive
	}
	return style.Render(fmt.Sprintf("%s %s %s", key, mark, label))
}

// SearchBox renders the search field. input is the textinput view while
// editing, query the current value otherwise.
func SearchBox(s theme.Styles, input, query string, editing bool) string {
	switch {
	case editing:
		return input
	case query == "":
		return s.Muted.Render("/ search")
	default:
		return s.Accent.Render("/ " + query)
	}
}

// Table renders the rows of a listing with a header and a cursor marker.
func Table(s theme.Styles, l format.Listing, cursor, width int) string {
	widths := columnWidths(l.Columns, width)
	var b strings.Builder

	cells := make([]string, len(l.Columns))
	for i, col := range l.Columns {
		cells[i] = pad(col.Name, widths[i], col.Alignment)
	}
	b.WriteString(s.Title.Render("  " + strings.Join(cells, strings.Repeat(" ", columnGap))))
	b.WriteString("\n")

	if len(l.Rows) == 0 {
		b.WriteString(s.Muted.Render("  No results match the current filters."))
		return b.String()
	}
	for r, row := range l.Rows {
		for i, col := range l.Columns {
			var v string
			if i < len(row) {
				v = row[i]
			}
			cells[i] = pad(runewidth.Truncate(v, widths[i], ellipsis), widths[i], col.Alignment)
		}
		line := strings.Join(cells, strings.Repeat(" ", columnGap))
		if r == cursor {
			b.WriteString(s.Accent.Render(cursorSymbol + " " + line))
		} else {
			b.WriteString(s.Text.Render("  " + line))
		}
		if r < len(l.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Summary renders "n of total page".
func Summary(s theme.Styles, shown, total int, page domain.Page, extra string) string {
	line := fmt.Sprintf("%d of %d %s", shown, total, page)
	if extra != "" {
		line += "  " + extra
	}
	return s.Muted.Render(line)
}

// columnWidths shrinks the declared widths proportionally to fit width.
func columnWidths(cols []format.Column, width int) []int {
	widths := make([]int, len(cols))
	total := 0
	for i, c := range cols {
		widths[i] = c.Width
		if widths[i] <= 0 {
			widths[i] = runewidth.StringWidth(c.Name)
		}
		total += widths[i]
	}
	avail := width - 2 - columnGap*(len(cols)-1)
	if width <= 0 || total <= avail || total == 0 {
		return widths
	}
	for i := range widths {
		widths[i] = widths[i] * avail / total
		if widths[i] < minColumn {
			widths[i] = minColumn
		}
	}
	return widths
}

func pad(v string, width int, align string) string {
	switch align {
	case "right":
		return runewidth.FillLeft(v, width)
	case "center":
		gap := width - runewidth.StringWidth(v)
		if gap <= 0 {
			return v
		}
		return runewidth.FillRight(strings.Repeat(" ", gap/2)+v, width)
	default:
		return runewidth.FillRight(v, width)
	}
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	Screen      string
	SearchMode  bool
	FormMode    bool
	Offline     bool
	HasTypeFlt  bool
	HasTechFlt  bool
	HasGallery  bool
	ViewingItem bool
}

// Footer renders the key help line for the current screen.
func Footer(s theme.Styles, st FooterState, width int) string {
	var help []string
	switch {
	case st.FormMode:
		help = []string{"tab: next field", "ctrl+s: send", "esc: leave form"}
	case st.SearchMode:
		help = []string{"enter: apply", "esc: cancel"}
	case st.ViewingItem:
		help = []string{"j/k: scroll"}
		if st.HasGallery {
			help = append(help, "enter/o: gallery")
		}
		help = append(help, "esc: back", "q: quit")
	default:
		help = []string{"1-5: pages", "j/k: move"}
		if st.Screen == string(domain.PageProjects) || st.Screen == string(domain.PageExperience) || st.Screen == string(domain.PageEducation) {
			help = append(help, "/: search")
			if st.HasTypeFlt {
				help = append(help, "t: type")
			}
			if st.HasTechFlt {
				help = append(help, "t: technology")
			}
			help = append(help, "*: featured", "s: sort", "x: reset")
		}
		help = append(help, "r: reload", "q: quit")
	}
	line := strings.Join(help, "  |  ")
	if st.Offline {
		line = "offline  |  " + line
	}
	return s.Footer.Render(runewidth.Truncate(line, max(width, 1), ellipsis))
}

// Status renders a status message with the style of its type.
func Status(s theme.Styles, msg errors.Message) string {
	switch msg.Type {
	case errors.MessageTypeError:
		return s.Error.Render("✗ " + msg.Text)
	case errors.MessageTypeWarning:
		return s.Warning.Render("! " + msg.Text)
	case errors.MessageTypeSuccess:
		return s.Success.Render("✓ " + msg.Text)
	default:
		return s.Accent.Render(msg.Text)
	}
}

func clip(v string, width int) string {
	if width <= 0 {
		return v
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(v)
}
