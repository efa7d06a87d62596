package utils

import (
	"strings"
	"unicode"
)

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, e.g. "baner road" -> "Baner Road", "o'neil" -> "O'Neil".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}

	return b.String()
}

// NormalizeKey lower-cases a column header and collapses inner whitespace
// so "Flat - Weighted  Average Rate " and "flat - weighted average rate"
// resolve to the same column.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// SameArea reports whether a dataset location matches a requested area name.
// Matching is exact after trimming and case folding.
func SameArea(location, area string) bool {
	return strings.EqualFold(strings.TrimSpace(location), strings.TrimSpace(area))
}
