package strings

import (
	"strings"
)

// MinTruncateLen is the smallest useful maxLen: one character plus "...".
const MinTruncateLen = 4

// SingleLine collapses every run of whitespace, newlines included, into a
// single space.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate flattens s to a single line and shortens it to at most maxLen
// runes, ending with "..." when anything was cut. maxLen below
// MinTruncateLen is clamped.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = SingleLine(s)

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// LastSegment splits a dotted identifier such as an application package
// into its prefix and final segment. Identifiers without a dot return an
// empty prefix.
func LastSegment(id string) (prefix, last string) {
	i := strings.LastIndex(id, ".")
	if i < 0 {
		return "", id
	}
	return id[:i], id[i+1:]
}
