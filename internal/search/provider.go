// Package search provides the text matching strategies behind free-text search
// predicates. Strategies (substring, token, regex) share the Provider interface
// so every page search behaves the same way regardless of which one is configured.
package search

import (
	"fmt"
	"strings"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if the query matches any of the given field values.
	// An empty query always matches.
	Match(values []string, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Provider names accepted by NewProvider.
const (
	ModeSubstring = "substring"
	ModeToken     = "token"
	ModeRegex     = "regex"
)

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool // If true, searches ignore case sensitivity
}

// DefaultOptions returns the default search options.
// Page searches are case-insensitive unless told otherwise.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewProvider returns the provider registered under mode.
func NewProvider(mode string, opts ...Option) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeSubstring:
		return NewSubstringProvider(opts...), nil
	case ModeToken:
		return NewTokenProvider(opts...), nil
	case ModeRegex:
		return NewRegexProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search mode: %s", mode)
	}
}

// normalize applies case folding to s when the options require it.
func (o Options) normalize(s string) string {
	if o.CaseInsensitive {
		return strings.ToLower(s)
	}
	return s
}
