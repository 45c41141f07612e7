package search

import (
	"strings"
)

// TokenProvider provides token-based search.
// The query is split into whitespace-separated tokens.
// Each token must match at least one field value (AND logic).
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if every query token is found in at least one value.
func (p *TokenProvider) Match(values []string, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}

	normalized := make([]string, 0, len(values))
	for _, value := range values {
		if value != "" {
			normalized = append(normalized, p.opts.normalize(value))
		}
	}

	for _, token := range tokens {
		token = p.opts.normalize(token)
		matched := false
		for _, value := range normalized {
			if strings.Contains(value, token) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return ModeToken
}
