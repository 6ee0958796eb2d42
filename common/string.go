package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Truncate returns at most max runes of s, appending "..." when s was cut
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	return string(runes[:max]) + "..."
}

// IsBlank reports whether s is empty or contains only whitespace.
// A byte order mark counts as whitespace.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, isBlankRune) == ""
}

func isBlankRune(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// FoundOrNotFound renders the presence of a secret without exposing it
func FoundOrNotFound(secret string) string {
	if secret == "" {
		return "Not Found"
	}
	return "Found"
}
