// Package query applies declarative filter, search and sort specifications to
// in-memory record collections and derives facet counts for categorical filters.
//
// The engine is schema-agnostic: callers describe their record type with a
// Schema of named field accessors and then express filters against those names.
// Apply is a pure function of (collection, spec); it never mutates its inputs
// and is cheap enough to call on every keystroke.
package query

import (
	"fmt"
	"strings"
)

// Kind identifies how a predicate is evaluated.
type Kind string

const (
	// KindEquals keeps records whose field equals Value. The All sentinel disables it.
	KindEquals Kind = "equals"
	// KindBooleanFlag keeps records whose field is truthy while Active is set.
	KindBooleanFlag Kind = "booleanFlag"
	// KindSubstringSearch keeps records where Value is found in any of Fields.
	KindSubstringSearch Kind = "substringSearch"
)

// All is the sentinel value meaning "no filter" for equals predicates.
const All = "all"

// Predicate is one entry of a filter specification.
type Predicate struct {
	Kind Kind

	// Field is the categorical or boolean field for equals and booleanFlag predicates.
	Field string
	// Fields are the text fields consulted by substringSearch predicates.
	Fields []string

	// Value is the selected category for equals, or the query for substringSearch.
	Value string
	// Active enables a booleanFlag predicate.
	Active bool
	// FoldCase compares equals values case-insensitively.
	FoldCase bool
	// Options lists the categorical values whose facet counts must always be reported,
	// even when no record carries them.
	Options []string
}

// Equals returns an equals predicate over field.
func Equals(field, value string, options ...string) Predicate {
	return Predicate{Kind: KindEquals, Field: field, Value: value, Options: options}
}

// EqualsFold returns a case-insensitive equals predicate over field.
func EqualsFold(field, value string, options ...string) Predicate {
	p := Equals(field, value, options...)
	p.FoldCase = true
	return p
}

// Flag returns a booleanFlag predicate over field.
func Flag(field string, active bool) Predicate {
	return Predicate{Kind: KindBooleanFlag, Field: field, Active: active}
}

// Search returns a substringSearch predicate over fields.
func Search(query string, fields ...string) Predicate {
	return Predicate{Kind: KindSubstringSearch, Value: query, Fields: fields}
}

// IsNeutral reports whether the predicate lets every record through.
// Unknown kinds are neutral so a misconfigured filter never hides data.
func (p Predicate) IsNeutral() bool {
	switch p.Kind {
	case KindEquals:
		return p.Value == "" || strings.EqualFold(p.Value, All)
	case KindBooleanFlag:
		return !p.Active
	case KindSubstringSearch:
		return p.Value == "" || len(p.Fields) == 0
	default:
		return true
	}
}

// Order specifies the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// IsValid checks if the sort order is valid.
func (o Order) IsValid() bool {
	return o == OrderAsc || o == OrderDesc
}

// ParseOrder parses a string into an Order.
func ParseOrder(order string) (Order, error) {
	o := Order(strings.ToLower(strings.TrimSpace(order)))
	if !o.IsValid() {
		return "", fmt.Errorf("invalid sort order: %s", order)
	}
	return o, nil
}

// Sort is an explicit ordering request. Without one the view keeps the
// collection order.
type Sort struct {
	Field string
	Order Order
}

// Spec is the active set of filter, search and sort selections.
type Spec struct {
	// Filters maps a filter key (the name the UI knows the control by) to its predicate.
	Filters map[string]Predicate
	// Sort is optional.
	Sort *Sort
}

// NewSpec returns an empty spec ready for Set calls.
func NewSpec() Spec {
	return Spec{Filters: make(map[string]Predicate)}
}

// Set returns a copy of the spec with key bound to p. The receiver is not modified.
func (s Spec) Set(key string, p Predicate) Spec {
	filters := make(map[string]Predicate, len(s.Filters)+1)
	for k, v := range s.Filters {
		filters[k] = v
	}
	filters[key] = p
	s.Filters = filters
	return s
}

// Without returns a copy of the spec with key removed.
func (s Spec) Without(key string) Spec {
	filters := make(map[string]Predicate, len(s.Filters))
	for k, v := range s.Filters {
		if k != key {
			filters[k] = v
		}
	}
	s.Filters = filters
	return s
}

// SortBy returns a copy of the spec sorted by field in the given order.
func (s Spec) SortBy(field string, order Order) Spec {
	if !order.IsValid() {
		order = OrderAsc
	}
	s.Sort = &Sort{Field: field, Order: order}
	return s
}

// IsNeutral reports whether applying the spec returns the base collection unchanged.
func (s Spec) IsNeutral() bool {
	if s.Sort != nil && s.Sort.Field != "" {
		return false
	}
	for _, p := range s.Filters {
		if !p.IsNeutral() {
			return false
		}
	}
	return true
}
