package render

import (
	"strings"
	"testing"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/errors"
	"github.com/cristianoliveira/folio/internal/format"
	"github.com/cristianoliveira/folio/internal/gallery"
	"github.com/cristianoliveira/folio/internal/query"
	"github.com/cristianoliveira/folio/internal/theme"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStyles() theme.Styles {
	return theme.NewStyles(theme.DefaultSiteConfig())
}

func TestFacetOptionsPutsAllFirst(t *testing.T) {
	counts := map[string]int{query.All: 3, "full_time": 2, "contract": 1}
	opts := FacetOptions(counts, []string{"full_time", "contract", "freelance"}, "contract", domain.TypeLabel)

	require.Len(t, opts, 4)
	assert.Equal(t, FacetOption{Value: query.All, Label: "All", Count: 3}, opts[0])
	assert.Equal(t, "full_time", opts[1].Value)
	assert.Equal(t, 2, opts[1].Count)
	assert.True(t, opts[2].Active)
	assert.Equal(t, 0, opts[3].Count)
}

func TestFacetOptionsWithoutLabelFunc(t *testing.T) {
	opts := FacetOptions(map[string]int{"Go": 2}, []string{"Go"}, query.All, nil)
	assert.Equal(t, "Go", opts[1].Label)
	assert.True(t, opts[0].Active)
}

func TestFacetBarShowsCounts(t *testing.T) {
	bar := FacetBar(testStyles(), "Technology", []FacetOption{
		{Value: query.All, Label: "All", Count: 3, Active: true},
		{Value: "Go", Label: "Go", Count: 2},
	}, 120)
	assert.Contains(t, bar, "Technology:")
	assert.Contains(t, bar, "All (3)")
	assert.Contains(t, bar, "Go (2)")
}

func TestTableMarksCursorAndTruncates(t *testing.T) {
	l := format.Listing{
		Columns: []format.Column{{Name: "TITLE", Width: 10}, {Name: "YEAR", Width: 4, Alignment: "right"}},
		Rows: [][]string{
			{"A very long project title", "2024"},
			{"Short", "2023"},
		},
	}
	out := Table(testStyles(), l, 1, 80)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "A very lo…")
	assert.Contains(t, lines[2], cursorSymbol+" Short")
}

func TestTableEmptyState(t *testing.T) {
	l := format.Listing{Columns: []format.Column{{Name: "TITLE", Width: 10}}}
	assert.Contains(t, Table(testStyles(), l, 0, 80), "No results match the current filters.")
}

func TestColumnWidthsShrinkToFit(t *testing.T) {
	cols := []format.Column{{Name: "A", Width: 40}, {Name: "B", Width: 40}}
	widths := columnWidths(cols, 42)
	assert.LessOrEqual(t, widths[0]+widths[1]+columnGap+2, 42)
	assert.Equal(t, []int{40, 40}, columnWidths(cols, 200))
	assert.Equal(t, []int{minColumn, minColumn}, columnWidths(cols, 4))
}

func TestPadAlignment(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4, "left"))
	assert.Equal(t, "  ab", pad("ab", 4, "right"))
	assert.Equal(t, " ab ", pad("ab", 4, "center"))
	assert.Equal(t, "abcdef", pad("abcdef", 4, "center"))
}

func TestFooterPerMode(t *testing.T) {
	s := testStyles()
	list := Footer(s, FooterState{Screen: string(domain.PageProjects), HasTechFlt: true}, 200)
	assert.Contains(t, list, "/: search")
	assert.Contains(t, list, "t: technology")

	form := Footer(s, FooterState{Screen: "contact", FormMode: true}, 200)
	assert.Contains(t, form, "ctrl+s: send")

	detail := Footer(s, FooterState{Screen: "project", ViewingItem: true, HasGallery: true, Offline: true}, 200)
	assert.Contains(t, detail, "enter/o: gallery")
	assert.Contains(t, detail, "offline  |")

	narrow := Footer(s, FooterState{Screen: "home"}, 10)
	assert.LessOrEqual(t, runewidth.StringWidth(narrow), 10)
}

func TestStatusPrefixes(t *testing.T) {
	s := testStyles()
	assert.Contains(t, Status(s, errors.Message{Text: "bad", Type: errors.MessageTypeError}), "✗ bad")
	assert.Contains(t, Status(s, errors.Message{Text: "sent", Type: errors.MessageTypeSuccess}), "✓ sent")
	assert.Contains(t, Status(s, errors.Message{Text: "hm", Type: errors.MessageTypeWarning}), "! hm")
}

func TestLightboxFrame(t *testing.T) {
	assert.Equal(t, Rect{W: 80, H: 24}, LightboxFrame(80, 24, true))

	frame := LightboxFrame(80, 24, false)
	assert.Equal(t, Rect{X: 2, Y: 1, W: 76, H: 22}, frame)
	assert.True(t, frame.Contains(2, 1))
	assert.False(t, frame.Contains(1, 1))
	assert.False(t, frame.Contains(78, 10))

	cols, rows := LightboxArtSize(frame, gallery.ViewSlider, 3)
	assert.Equal(t, 72, cols)
	assert.Equal(t, 17, rows)
	_, gridRows := LightboxArtSize(frame, gallery.ViewGrid, 9)
	assert.Equal(t, 15, gridRows)
}

func TestLightboxShowsCaptionAndPosition(t *testing.T) {
	items := []gallery.MediaItem{
		{ID: gallery.FeaturedID, URL: "/a.png", Caption: gallery.FeaturedCaption},
		{ID: "2", URL: "/b.png"},
	}
	out := Lightbox(testStyles(), LightboxState{Items: items, Index: 1, Zoom: 1.5, Autoplay: true, Err: "preview unavailable"}, 80, 24)

	assert.Contains(t, out, "Image")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "zoom 150%")
	assert.Contains(t, out, "autoplay")
	assert.Contains(t, out, "preview unavailable")
	assert.Empty(t, Lightbox(testStyles(), LightboxState{}, 80, 24))
}

func TestThumbnailsGrid(t *testing.T) {
	items := make([]gallery.MediaItem, 6)
	out := Thumbnails(testStyles(), items, 0, gallery.ViewGrid, 40)
	assert.Len(t, strings.Split(out, "\n"), 2)

	slider := Thumbnails(testStyles(), items, 5, gallery.ViewSlider, 40)
	assert.Contains(t, slider, ellipsis)
	assert.Contains(t, slider, "6")
}

func TestContactShowsDetailsAndErrors(t *testing.T) {
	site := theme.DefaultSiteConfig()
	site.Site.ContactEmail = "jane@example.com"
	out := Contact(testStyles(), ContactState{
		Site: site,
		Fields: []ContactField{
			{Label: "Name", View: "> Jane", Focused: true},
			{Label: "Email", View: ">", Error: "Email is required"},
		},
		Editing: true,
	}, 80)

	assert.Contains(t, out, "jane@example.com")
	assert.Contains(t, out, cursorSymbol+" Name")
	assert.Contains(t, out, "Email is required")
}

func TestMaintenanceFallsBackToSiteName(t *testing.T) {
	out := Maintenance(testStyles(), domain.Maintenance{MaintenanceMode: true}, "Jane Doe", 80, 24)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Under maintenance")
}

func TestHomeTypedLine(t *testing.T) {
	site := theme.DefaultSiteConfig()
	out := Home(testStyles(), HomeState{
		Site:     site,
		Typed:    "Build",
		Loaded:   true,
		Home:     domain.Home{Stats: domain.Stats{Projects: 12}},
		Featured: []domain.Project{{Title: "Folio"}},
	}, 80)
	assert.Contains(t, out, "Build"+typingCursor)
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "• Folio")
}
