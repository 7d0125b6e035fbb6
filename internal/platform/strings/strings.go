// Package strings provides small string helpers shared by the feed pipeline
package strings

import std "strings"

// IfBlank returns def when s is empty or whitespace, otherwise s
func IfBlank(s, def string) string {
	if std.TrimSpace(s) == "" {
		return def
	}
	return s
}

// IsBlank reports whether s has no non-whitespace content
func IsBlank(s string) bool { return std.TrimSpace(s) == "" }

// SplitPad splits s on sep, trims each part and pads the result with
// empty strings so it has at least n entries
func SplitPad(s, sep string, n int) []string {
	parts := std.Split(s, sep)
	for i := range parts {
		parts[i] = std.TrimSpace(parts[i])
	}
	for len(parts) < n {
		parts = append(parts, "")
	}
	return parts
}

// Squash trims s and collapses every whitespace run to one space
func Squash(s string) string { return std.Join(std.Fields(s), " ") }
