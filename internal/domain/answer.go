package domain

import "strings"

// Normalize returns the canonical comparable form of a raw answer string.
// Surrounding whitespace is dropped; case is preserved for display.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// Equals reports whether two answers denote the same option. Comparison is
// case-insensitive over the normalized forms, so two blank answers are equal.
func Equals(a, b string) bool {
	return strings.ToLower(Normalize(a)) == strings.ToLower(Normalize(b))
}
