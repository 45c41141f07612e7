// Package format renders list pages and records for the CLI.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/query"
)

// Column describes one table column.
type Column struct {
	Name string
	// Width is the column width in terminal cells. Zero means "fit content".
	Width int
	// Alignment is left (default), right or center.
	Alignment string
}

// Listing is a filtered list page flattened to text rows. Items keeps the
// original records for the JSON formatter.
type Listing struct {
	Page    domain.Page
	Columns []Column
	Rows    [][]string
	Items   any
	Facets  query.Facets
	Total   int
}

// Formatter writes a Listing.
type Formatter interface {
	FormatListing(listing Listing, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeTable aligns columns under a header and prints facet counts.
	FormatterTypeTable FormatterType = "table"
	// FormatterTypeSimple prints one line per record.
	FormatterTypeSimple FormatterType = "simple"
	// FormatterTypeCompact prints only the first column.
	FormatterTypeCompact FormatterType = "compact"
	// FormatterTypeJSON prints items, facets and total as JSON.
	FormatterTypeJSON FormatterType = "json"
)

// FormatterTypes lists the accepted --format values.
var FormatterTypes = []FormatterType{FormatterTypeTable, FormatterTypeSimple, FormatterTypeCompact, FormatterTypeJSON}

// ParseFormatterType validates a --format value.
func ParseFormatterType(s string) (FormatterType, error) {
	t := FormatterType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FormatterTypes {
		if t == known {
			return t, nil
		}
	}
	names := make([]string, len(FormatterTypes))
	for i, known := range FormatterTypes {
		names[i] = string(known)
	}
	return "", fmt.Errorf("invalid format: %s (expected %s)", s, strings.Join(names, ", "))
}

// NewFormatter creates a new formatter of the specified type. Unknown types
// fall back to the table formatter.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeSimple:
		return NewSimpleFormatter()
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewTableFormatter()
	}
}
