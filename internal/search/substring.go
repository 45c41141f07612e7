package search

import (
	"strings"
)

// SubstringProvider provides substring-based search.
// Matches if any field value contains the query as a substring.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if any field value contains the query substring.
func (p *SubstringProvider) Match(values []string, query string) bool {
	if query == "" {
		return true
	}

	searchQuery := p.opts.normalize(query)
	for _, value := range values {
		if value == "" {
			continue
		}
		if strings.Contains(p.opts.normalize(value), searchQuery) {
			return true
		}
	}

	return false
}

// Name returns the provider name.
func (p *SubstringProvider) Name() string {
	return ModeSubstring
}
