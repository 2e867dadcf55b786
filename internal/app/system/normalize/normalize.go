// Package normalize provides helper functions for consistent string normalization
// across the application. Use these helpers instead of scattered strings.ToLower
// and strings.TrimSpace calls to ensure consistent behavior.
package normalize

import "strings"

// Email normalizes an email address by trimming whitespace and converting to lowercase.
// This is the canonical way to normalize emails before storage or comparison.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name normalizes a name by trimming whitespace.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role normalizes a role value by trimming whitespace and converting to lowercase.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Query normalizes a search query or query parameter by trimming whitespace.
func Query(s string) string {
	return strings.TrimSpace(s)
}

// Blank reports whether a string is empty or whitespace-only. Repositories
// treat blank required inputs as "no result" without touching storage.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
