package search

import (
	"strings"
	"unicode/utf8"
)

var unsafeChars = strings.NewReplacer("<", "", ">", "", "'", "", `"`, "")

// Sanitize prepares a raw user query for the index layer: it trims
// whitespace, strips angle brackets and quote characters, collapses runs of
// whitespace to a single space, and truncates to MaxQueryLength bytes.
//
// Sanitize never fails; empty input yields empty output, which callers must
// treat as "no query". The function is idempotent.
func Sanitize(raw string) string {
	s := unsafeChars.Replace(strings.TrimSpace(raw))
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > MaxQueryLength {
		s = s[:runeBound(s, MaxQueryLength)]
	}
	return strings.TrimSpace(s)
}

// runeBound backs i off to the nearest rune start so slicing s at the
// returned index never splits a multi-byte character.
func runeBound(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
