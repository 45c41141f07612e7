package query

import (
	"sort"
	"strings"

	"github.com/cristianoliveira/folio/internal/search"
)

// Facets maps a filter key to the per-value record counts of its field.
type Facets map[string]map[string]int

// Result is the outcome of applying a spec to a collection.
type Result[T any] struct {
	// View holds the surviving records in collection order, or in sort order
	// when the spec asked for one.
	View []T
	// Facets are computed from the base collection only, so selecting one
	// filter never changes the counts shown next to another.
	Facets Facets
	// Total is the size of the base collection.
	Total int
}

// Count returns the facet count for value under key. A value without an
// exact bucket is looked up case-insensitively.
func (r Result[T]) Count(key, value string) int {
	counts := r.Facets[key]
	if n, ok := counts[value]; ok {
		return n
	}
	for k, n := range counts {
		if strings.EqualFold(k, value) {
			return n
		}
	}
	return 0
}

// Engine evaluates specs against collections of T.
type Engine[T any] struct {
	schema   *Schema[T]
	provider search.Provider
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	provider search.Provider
}

// WithProvider replaces the substring matcher used by substringSearch predicates.
func WithProvider(p search.Provider) EngineOption {
	return func(o *engineOptions) {
		if p != nil {
			o.provider = p
		}
	}
}

// New creates an engine over schema.
func New[T any](schema *Schema[T], opts ...EngineOption) *Engine[T] {
	o := engineOptions{provider: search.NewSubstringProvider(search.WithCaseInsensitive(true))}
	for _, opt := range opts {
		opt(&o)
	}
	if schema == nil {
		schema = NewSchema[T]()
	}
	return &Engine[T]{schema: schema, provider: o.provider}
}

// Apply is a shorthand for New(schema).Apply(base, spec).
func Apply[T any](schema *Schema[T], base []T, spec Spec) Result[T] {
	return New(schema).Apply(base, spec)
}

// Apply filters base through every active predicate of spec (logical AND),
// optionally sorts the survivors, and derives facet counts from base.
func (e *Engine[T]) Apply(base []T, spec Spec) Result[T] {
	active := e.activePredicates(spec)

	view := make([]T, 0, len(base))
	for _, rec := range base {
		if e.matchesAll(rec, active) {
			view = append(view, rec)
		}
	}

	if spec.Sort != nil {
		e.sortView(view, *spec.Sort)
	}

	return Result[T]{
		View:   view,
		Facets: e.facets(base, spec),
		Total:  len(base),
	}
}

// Filter returns only the view of applying spec to base.
func (e *Engine[T]) Filter(base []T, spec Spec) []T {
	return e.Apply(base, spec).View
}

// activePredicates drops neutral predicates and predicates over unknown fields.
func (e *Engine[T]) activePredicates(spec Spec) []Predicate {
	active := make([]Predicate, 0, len(spec.Filters))
	for _, p := range spec.Filters {
		if p.IsNeutral() {
			continue
		}
		switch p.Kind {
		case KindEquals, KindBooleanFlag:
			if !e.schema.Has(p.Field) {
				continue
			}
		case KindSubstringSearch:
			known := make([]string, 0, len(p.Fields))
			for _, f := range p.Fields {
				if e.schema.Has(f) {
					known = append(known, f)
				}
			}
			if len(known) == 0 {
				continue
			}
			p.Fields = known
		}
		active = append(active, p)
	}
	return active
}

func (e *Engine[T]) matchesAll(rec T, preds []Predicate) bool {
	for _, p := range preds {
		if !e.matches(rec, p) {
			return false
		}
	}
	return true
}

func (e *Engine[T]) matches(rec T, p Predicate) bool {
	switch p.Kind {
	case KindEquals:
		get, _ := e.schema.Lookup(p.Field)
		for _, v := range textValues(get(rec)) {
			if equalValue(v, p.Value, p.FoldCase) {
				return true
			}
		}
		return false
	case KindBooleanFlag:
		get, _ := e.schema.Lookup(p.Field)
		return truthy(get(rec))
	case KindSubstringSearch:
		values := make([]string, 0, len(p.Fields))
		for _, f := range p.Fields {
			get, _ := e.schema.Lookup(f)
			values = append(values, textValues(get(rec))...)
		}
		return e.provider.Match(values, p.Value)
	default:
		return true
	}
}

func equalValue(a, b string, fold bool) bool {
	if fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// sortView orders view in place. Records without a value for the field go last
// in both directions.
func (e *Engine[T]) sortView(view []T, s Sort) {
	get, ok := e.schema.Lookup(s.Field)
	if !ok {
		return
	}
	desc := s.Order == OrderDesc
	sort.SliceStable(view, func(i, j int) bool {
		a, b := get(view[i]), get(view[j])
		aMissing, bMissing := isMissing(a), isMissing(b)
		if aMissing || bMissing {
			return !aMissing && bMissing
		}
		c := compareValues(a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// facets counts, for every equals predicate, how many base records carry each
// value of its field. The All sentinel counts the whole collection.
func (e *Engine[T]) facets(base []T, spec Spec) Facets {
	out := make(Facets)
	for key, p := range spec.Filters {
		if p.Kind != KindEquals {
			continue
		}
		counts := make(map[string]int, len(p.Options)+1)
		counts[All] = len(base)
		for _, opt := range p.Options {
			counts[opt] = 0
		}
		out[key] = counts

		get, ok := e.schema.Lookup(p.Field)
		if !ok {
			continue
		}
		spellings := make(map[string]string)
		for _, rec := range base {
			seen := make(map[string]bool)
			for _, v := range textValues(get(rec)) {
				if v == "" {
					continue
				}
				k := facetKey(v, p, spellings)
				if k == All || seen[k] {
					continue
				}
				seen[k] = true
				counts[k]++
			}
		}
	}
	return out
}

// facetKey maps a record value onto the declared option it belongs to. With
// FoldCase, values outside the options share the bucket of the first
// spelling seen, recorded in spellings.
func facetKey(v string, p Predicate, spellings map[string]string) string {
	if !p.FoldCase {
		return v
	}
	for _, opt := range p.Options {
		if strings.EqualFold(opt, v) {
			return opt
		}
	}
	folded := strings.ToLower(v)
	if k, ok := spellings[folded]; ok {
		return k
	}
	spellings[folded] = v
	return v
}
