package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/folio/internal/query"
)

// SimpleFormatter prints one line per record: the first column, then the
// remaining non-empty cells.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

func (f *SimpleFormatter) FormatListing(l Listing, w io.Writer) error {
	for _, row := range l.Rows {
		if len(row) == 0 {
			continue
		}
		var rest []string
		for _, cell := range row[1:] {
			if cell != "" {
				rest = append(rest, cell)
			}
		}
		line := row[0]
		if len(rest) > 0 {
			line += "  (" + strings.Join(rest, " | ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// CompactFormatter prints only the first column of each record.
type CompactFormatter struct{}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

func (f *CompactFormatter) FormatListing(l Listing, w io.Writer) error {
	for _, row := range l.Rows {
		if len(row) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(w, row[0]); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter prints the listing's records with facets and total.
type JSONFormatter struct {
	Indent string
}

// NewJSONFormatter creates a JSONFormatter with two-space indentation.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: "  "}
}

type jsonListing struct {
	Page   string       `json:"page"`
	Items  any          `json:"items"`
	Facets query.Facets `json:"facets"`
	Total  int          `json:"total"`
}

func (f *JSONFormatter) FormatListing(l Listing, w io.Writer) error {
	facets := l.Facets
	if facets == nil {
		facets = query.Facets{}
	}
	items := l.Items
	if items == nil {
		items = []any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(jsonListing{Page: string(l.Page), Items: items, Facets: facets, Total: l.Total})
}
