package search

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// strip matches every rune that is not a letter, a combining mark, a digit
// or whitespace.
var strip = runes.Predicate(func(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
})

// SanitizeString strips punctuation, symbols and emoji from s, collapses
// whitespace runs into single spaces and trims the result. Combining marks
// are kept while they belong to a letter (vowel signs, accents) and dropped
// otherwise (emoji variation selectors, keycaps).
func SanitizeString(s string) string {
	s = dropDetachedMarks(norm.NFC.String(s))
	// NFC again after removal: stripping can leave composable runes adjacent.
	t := transform.Chain(runes.Remove(strip), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(out), " ")
}

// dropDetachedMarks removes combining marks that do not follow a letter or
// another kept mark.
func dropDetachedMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	attached := false
	for _, r := range s {
		switch {
		case unicode.IsMark(r):
			if !attached {
				continue
			}
		case unicode.IsLetter(r):
			attached = true
		default:
			attached = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Compile turns a free-text query into a case-insensitive pattern. The query
// is sanitized and quoted, so multi-word input matches as a single phrase.
// It reports false when nothing searchable is left.
func Compile(query string) (*regexp.Regexp, bool) {
	q := SanitizeString(query)
	if q == "" {
		return nil, false
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(q))
	if err != nil {
		return nil, false
	}
	return re, true
}
