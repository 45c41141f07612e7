package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	keySegments = regexp.MustCompile(`[^a-z0-9]+`)
	// bearer tokens and emails can show up inside error strings and URLs
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-z0-9._~+/=-]+`)
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// redactor hides credentials and contact details in log key-value pairs.
type redactor struct {
	sensitive map[string]bool
}

func newRedactor() *redactor {
	words := []string{"secret", "password", "token", "key", "auth", "authorization", "credential", "email"}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &redactor{sensitive: m}
}

// redact returns a copy of the flattened pairs with sensitive values replaced.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		if r.isSensitive(key) {
			result[i+1] = redacted
			continue
		}
		switch v := result[i+1].(type) {
		case string:
			result[i+1] = scrub(v)
		case error:
			result[i+1] = scrub(v.Error())
		}
	}
	return result
}

// isSensitive reports whether any segment of key is a sensitive word.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range keySegments.Split(strings.ToLower(key), -1) {
		if r.sensitive[part] {
			return true
		}
	}
	return false
}

func scrub(value string) string {
	value = bearerPattern.ReplaceAllString(value, "Bearer "+redacted)
	return emailPattern.ReplaceAllString(value, redacted)
}
