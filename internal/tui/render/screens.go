package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/format"
	"github.com/cristianoliveira/folio/internal/gallery"
	"github.com/cristianoliveira/folio/internal/theme"
	"github.com/mattn/go-runewidth"
)

const (
	typingCursor = "▌"
	lightboxHelp = "←/→ prev/next  space autoplay  +/- zoom  0 reset  f fullscreen  g grid  esc close"
)

// HomeState defines the inputs of the home screen.
type HomeState struct {
	Site     theme.SiteConfig
	Typed    string
	Home     domain.Home
	Loaded   bool
	Featured []domain.Project
}

// Home renders the landing screen: hero, typewriter line and stats.
func Home(s theme.Styles, st HomeState, width int) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(st.Site.Site.Name))
	b.WriteString("\n")
	if st.Site.Site.Tagline != "" {
		b.WriteString(s.Subtitle.Render(st.Site.Site.Tagline))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Accent.Render(st.Typed + typingCursor))
	b.WriteString("\n\n")
	if desc := st.Site.Site.SelfDescription; desc != "" {
		b.WriteString(s.Text.Width(max(width-2, 10)).Render(desc))
		b.WriteString("\n\n")
	}
	if st.Loaded {
		stats := st.Home.Stats
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			statCard(s, "Projects", stats.Projects),
			statCard(s, "Technologies", stats.Technologies),
			statCard(s, "Years", stats.Experience),
		))
		b.WriteString("\n")
	}
	if len(st.Featured) > 0 {
		b.WriteString("\n")
		b.WriteString(s.Title.Render("Featured projects"))
		b.WriteString("\n")
		for _, p := range st.Featured {
			line := "• " + p.Title
			if p.ShortDescription != "" {
				line += s.Muted.Render("  " + p.ShortDescription)
			}
			b.WriteString(clip(line, width))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func statCard(s theme.Styles, label string, n int) string {
	return s.Card.Render(s.Accent.Render(fmt.Sprintf("%d", n)) + "\n" + s.Muted.Render(label))
}

// ProjectDetail renders a project with its gallery summary.
func ProjectDetail(s theme.Styles, p domain.Project, width int) string {
	var b strings.Builder
	if err := format.FormatProject(&b, p); err != nil {
		return s.Error.Render(err.Error())
	}
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) > 0 {
		lines[0] = s.Title.Render(lines[0])
	}
	if len(lines) > 1 {
		lines[1] = s.Muted.Render(lines[1])
	}
	body := s.Text.Width(max(width-2, 10)).Render(strings.Join(lines[min(2, len(lines)):], "\n"))
	head := strings.Join(lines[:min(2, len(lines))], "\n")
	return head + "\n" + body
}

// Rect is a screen area in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell x, y lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

const (
	lightboxMarginX = 2
	lightboxMarginY = 1
	// border rows, caption line, thumbnail strip and help line
	lightboxChromeRows = 2 + 1 + 2
	lightboxChromeCols = 2 + 2
	gridColumns        = 4
)

// LightboxFrame returns the area covered by the lightbox. Fullscreen uses the
// whole terminal.
func LightboxFrame(width, height int, fullscreen bool) Rect {
	if fullscreen {
		return Rect{W: width, H: height}
	}
	return Rect{
		X: lightboxMarginX,
		Y: lightboxMarginY,
		W: max(width-2*lightboxMarginX, 10),
		H: max(height-2*lightboxMarginY, 6),
	}
}

// LightboxArtSize returns the cells available for the image inside frame.
func LightboxArtSize(frame Rect, mode gallery.ViewMode, items int) (cols, rows int) {
	chrome := lightboxChromeRows
	if mode == gallery.ViewGrid {
		chrome += (items+gridColumns-1)/gridColumns - 1
	}
	return max(frame.W-lightboxChromeCols, 1), max(frame.H-chrome, 1)
}

// LightboxState defines the inputs of the lightbox overlay.
type LightboxState struct {
	Items      []gallery.MediaItem
	Index      int
	Zoom       float64
	Autoplay   bool
	Fullscreen bool
	ViewMode   gallery.ViewMode
	Art        string
	Loading    bool
	Err        string
}

// Lightbox renders the gallery overlay inside LightboxFrame.
func Lightbox(s theme.Styles, st LightboxState, width, height int) string {
	if len(st.Items) == 0 {
		return ""
	}
	frame := LightboxFrame(width, height, st.Fullscreen)
	cols, rows := LightboxArtSize(frame, st.ViewMode, len(st.Items))
	item := st.Items[st.Index]

	caption := item.Caption
	if caption == "" {
		caption = "Image"
	}
	info := fmt.Sprintf("%d/%d  zoom %d%%", st.Index+1, len(st.Items), int(st.Zoom*100+0.5))
	if st.Autoplay {
		info += "  ▶ autoplay"
	}
	if st.Fullscreen {
		info += "  ⛶"
	}
	top := s.Title.Render(runewidth.Truncate(caption, max(cols-runewidth.StringWidth(info)-2, 1), ellipsis)) +
		"  " + s.Muted.Render(info)

	art := st.Art
	switch {
	case st.Loading:
		art = s.Muted.Render("loading " + item.URL)
	case st.Err != "":
		art = s.Warning.Render(st.Err)
	}
	art = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, art)

	help := s.Footer.Render(runewidth.Truncate(lightboxHelp, cols, ellipsis))
	content := lipgloss.JoinVertical(lipgloss.Left, top, art, Thumbnails(s, st.Items, st.Index, st.ViewMode, cols), help)
	box := s.Lightbox.
		Width(frame.W - 2).
		Height(frame.H - 2).
		MaxHeight(frame.H).
		Render(content)
	return lipgloss.NewStyle().MarginTop(frame.Y).MarginLeft(frame.X).Render(box)
}

// Thumbnails renders the item strip: a single scrolling row in slider mode,
// a numbered grid otherwise.
func Thumbnails(s theme.Styles, items []gallery.MediaItem, current int, mode gallery.ViewMode, width int) string {
	labels := make([]string, len(items))
	for i, it := range items {
		label := fmt.Sprintf("%d", i+1)
		if mode == gallery.ViewGrid && it.Caption != "" {
			label += " " + it.Caption
		}
		labels[i] = label
	}

	if mode == gallery.ViewGrid {
		cell := max(width/gridColumns-1, 4)
		var rowsOut []string
		for start := 0; start < len(labels); start += gridColumns {
			var row []string
			for i := start; i < min(start+gridColumns, len(labels)); i++ {
				row = append(row, thumb(s, runewidth.FillRight(runewidth.Truncate(labels[i], cell, ellipsis), cell), i == current))
			}
			rowsOut = append(rowsOut, strings.Join(row, " "))
		}
		return strings.Join(rowsOut, "\n")
	}

	var parts []string
	used := 0
	first := max(current-2, 0)
	if first > 0 {
		parts = append(parts, s.Muted.Render(ellipsis))
		used += 2
	}
	for i := first; i < len(labels); i++ {
		w := runewidth.StringWidth(labels[i]) + 3
		if used+w > width-2 {
			parts = append(parts, s.Muted.Render(ellipsis))
			break
		}
		parts = append(parts, thumb(s, labels[i], i == current))
		used += w
	}
	return strings.Join(parts, " ")
}

func thumb(s theme.Styles, label string, active bool) string {
	if active {
		return s.FacetActive.Render(label)
	}
	return s.FacetInactive.Render(label)
}

// ContactField is one rendered input of the contact form.
type ContactField struct {
	Label   string
	View    string
	Error   string
	Focused bool
}

// ContactState defines the inputs of the contact screen.
type ContactState struct {
	Site    theme.SiteConfig
	Fields  []ContactField
	Sending string
	Editing bool
}

// Contact renders the contact form with the site's contact details and
// social links.
func Contact(s theme.Styles, st ContactState, width int) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Get in touch"))
	b.WriteString("\n")
	site := st.Site.Site
	for _, kv := range [][2]string{{"Email", site.ContactEmail}, {"Phone", site.ContactPhone}, {"Location", site.Location}} {
		if kv[1] != "" {
			b.WriteString(s.Muted.Render(fmt.Sprintf("%-9s", kv[0])) + s.Text.Render(kv[1]) + "\n")
		}
	}
	if len(st.Site.Social) > 0 {
		links := make([]string, 0, len(st.Site.Social))
		for _, l := range st.Site.Social {
			links = append(links, s.Badge.Render(l.Name)+" "+s.Muted.Render(l.URL))
		}
		b.WriteString(clip(strings.Join(links, "  "), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, f := range st.Fields {
		label := f.Label
		if f.Focused && st.Editing {
			label = s.Accent.Render(cursorSymbol + " " + label)
		} else {
			label = s.Muted.Render("  " + label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(f.View)
		b.WriteString("\n")
		if f.Error != "" {
			b.WriteString(s.Error.Render("  " + f.Error))
			b.WriteString("\n")
		}
	}
	if st.Sending != "" {
		b.WriteString(s.Muted.Render(st.Sending + " sending…"))
	} else if !st.Editing {
		b.WriteString(s.Muted.Render("enter: edit the form"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Maintenance renders the full-screen maintenance notice.
func Maintenance(s theme.Styles, m domain.Maintenance, site string, width, height int) string {
	name := m.SiteName
	if name == "" {
		name = site
	}
	msgWidth := min(max(width-8, 20), 60)
	body := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(name),
		"",
		s.Warning.Render("Under maintenance"),
		"",
		s.Text.Width(msgWidth).Align(lipgloss.Center).Render(m.Message()),
		"",
		s.Muted.Render("q: quit"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.Card.Render(body))
}
