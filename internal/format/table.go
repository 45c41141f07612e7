package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cristianoliveira/folio/internal/colors"
	"github.com/cristianoliveira/folio/internal/query"
	"github.com/mattn/go-runewidth"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool
	// HeaderColor is the color to use for headers. Empty disables color.
	HeaderColor string
	// ShowFacets prints the facet counts under the table.
	ShowFacets bool
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ShowFacets:  true,
	}
}

// TableFormatter prints a listing as aligned columns.
type TableFormatter struct {
	config *TableConfig
}

// NewTableFormatter creates a TableFormatter with the default config.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{config: DefaultTableConfig()}
}

// WithConfig replaces the formatter's config.
func (f *TableFormatter) WithConfig(cfg *TableConfig) *TableFormatter {
	f.config = cfg
	return f
}

// FormatListing writes the header, rows, a count line and the facets.
func (f *TableFormatter) FormatListing(l Listing, w io.Writer) error {
	widths := columnWidths(l)
	if f.config.ShowHeaders {
		cells := make([]string, len(l.Columns))
		seps := make([]string, len(l.Columns))
		for i, col := range l.Columns {
			cells[i] = pad(col.Name, widths[i], col.Alignment)
			seps[i] = strings.Repeat("-", widths[i])
		}
		header := strings.Join(cells, "  ")
		if f.config.HeaderColor != "" {
			header = f.config.HeaderColor + header + colors.Reset
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(header, " ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, strings.Join(seps, "  ")); err != nil {
			return err
		}
	}
	for _, row := range l.Rows {
		cells := make([]string, len(l.Columns))
		for i, col := range l.Columns {
			var v string
			if i < len(row) {
				v = row[i]
			}
			cells[i] = pad(truncate(v, widths[i]), widths[i], col.Alignment)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\n%d of %d %s\n", len(l.Rows), l.Total, l.Page); err != nil {
		return err
	}
	if f.config.ShowFacets {
		return writeFacets(w, l.Facets)
	}
	return nil
}

func columnWidths(l Listing) []int {
	widths := make([]int, len(l.Columns))
	for i, col := range l.Columns {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		widths[i] = runewidth.StringWidth(col.Name)
		for _, row := range l.Rows {
			if i < len(row) {
				if n := runewidth.StringWidth(row[i]); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}
	return widths
}

// writeFacets prints one line per facet key, "all" first and the rest by name.
func writeFacets(w io.Writer, facets query.Facets) error {
	keys := make([]string, 0, len(facets))
	for k := range facets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "%s: %s\n", key, FacetLine(facets[key])); err != nil {
			return err
		}
	}
	return nil
}

// FacetLine renders counts as "all (5)  full_time (3)".
func FacetLine(counts map[string]int) string {
	values := make([]string, 0, len(counts))
	for v := range counts {
		if v != query.All {
			values = append(values, v)
		}
	}
	sort.Strings(values)
	parts := make([]string, 0, len(counts))
	if n, ok := counts[query.All]; ok {
		parts = append(parts, fmt.Sprintf("%s (%d)", query.All, n))
	}
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%s (%d)", v, counts[v]))
	}
	return strings.Join(parts, "  ")
}

// pad fits s into width cells with the given alignment.
func pad(s string, width int, alignment string) string {
	n := runewidth.StringWidth(s)
	if n >= width {
		return s
	}
	switch alignment {
	case "right":
		return strings.Repeat(" ", width-n) + s
	case "center":
		left := (width - n) / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
	default:
		return s + strings.Repeat(" ", width-n)
	}
}

// truncate shortens s to width cells, ending in "..." when cut.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width < 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
