package domain

import (
	"strings"
)

// EntryKey derives the cache key for a normalized headword. Page titles are
// case-sensitive, so case is kept; only surrounding whitespace is trimmed and
// inner runs of spaces or underscores collapse to a single space, matching how
// titles resolve to pages.
func EntryKey(headword string) string {
	headword = strings.TrimSpace(headword)
	if headword == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(headword))
	prevSpace := false
	for _, r := range headword {
		if r == ' ' || r == '_' || r == '\t' {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
