// forum/filter.go
package forum

import (
	"fmt"
	"regexp"
)

// Default screening patterns: an email shape and North-American phone
// numbers. Heuristic on purpose — international formats slip through.
// Override the list via config rather than editing these.
var defaultPIIPatterns = []string{
	`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`,
	`\d{3}[-.]?\d{3}[-.]?\d{4}`,
}

// ContentFilter screens user text for personal contact details before it
// reaches the store.
type ContentFilter struct {
	patterns []*regexp.Regexp
}

// NewContentFilter compiles the given patterns; with none given, the
// default email and phone patterns apply.
func NewContentFilter(patterns ...string) (*ContentFilter, error) {
	if len(patterns) == 0 {
		patterns = defaultPIIPatterns
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("content filter pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &ContentFilter{patterns: compiled}, nil
}

// Flags reports whether the text matches any screening pattern. The match
// itself is never surfaced; error messages must not echo PII back.
func (f *ContentFilter) Flags(text string) bool {
	for _, re := range f.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
