package search

import (
	"regexp"
	"sync"
)

// RegexProvider provides regex-based search.
// Matches if any field value matches the regex pattern.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match returns true if any field value matches the regex pattern.
// A query that is not a valid regex falls back to a literal substring match,
// so a half-typed pattern never empties the list.
func (p *RegexProvider) Match(values []string, query string) bool {
	if query == "" {
		return true
	}

	re, err := p.getRegex(query)
	if err != nil {
		return NewSubstringProvider(WithCaseInsensitive(p.opts.CaseInsensitive)).Match(values, query)
	}

	for _, value := range values {
		if value != "" && re.MatchString(value) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return ModeRegex
}

// getRegex returns a compiled regex from cache or compiles a new one.
func (p *RegexProvider) getRegex(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()
	return re, nil
}
