package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// GenerateSlug turns an event title into its URL slug: diacritics stripped, lowercased,
// anything outside [a-z0-9] removed, and each run of whitespace or dashes between words
// replaced by a single "-". Slugs map to themselves. The result may be empty for
// degenerate titles.
func GenerateSlug(title string) string {
	// Decompose (é -> e + U+0301) and drop the combining marks.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	s, _, err := transform.String(stripMarks, title)
	if err != nil {
		s = title
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}
