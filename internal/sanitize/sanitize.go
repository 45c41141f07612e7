// Package sanitize is the boundary between backend-supplied markup and
// anything that renders it.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy

	blockTags = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/li|/h[1-6])\s*/?>`)
	listItem  = regexp.MustCompile(`(?i)<\s*li[^>]*>`)
	spaceRun  = regexp.MustCompile(`[ \t\f\v\r]+`)
)

func policies() {
	once.Do(func() {
		ugc = bluemonday.UGCPolicy()
		ugc.RequireNoFollowOnLinks(true)
		ugc.AddTargetBlankToFullyQualifiedLinks(true)
		strict = bluemonday.StrictPolicy()
	})
}

// HTML returns untrusted markup with everything outside a user-content
// allowlist removed. Safe to embed in an HTML page.
func HTML(untrusted string) string {
	policies()
	return ugc.Sanitize(untrusted)
}

// Text strips all markup and returns plain text for terminal output. Block
// level tags become line breaks and list items become bullets.
func Text(untrusted string) string {
	if untrusted == "" {
		return ""
	}
	policies()
	s := listItem.ReplaceAllString(untrusted, "\n• ")
	s = blockTags.ReplaceAllString(s, "\n")
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
