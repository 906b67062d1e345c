// Package strings provides small string and slice helpers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// ContainsAnyFold reports whether s contains any of needles, ignoring case.
// Blank needles never match
func ContainsAnyFold(s string, needles []string) bool {
	if s == "" {
		return false
	}
	ls := std.ToLower(s)
	for _, n := range needles {
		n = std.ToLower(std.TrimSpace(n))
		if n != "" && std.Contains(ls, n) {
			return true
		}
	}
	return false
}

// Lower trims and lowercases every value, dropping blanks
func Lower(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = std.ToLower(std.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SQLNull returns nil if s is blank/whitespace, else the original string.
// Useful for query args where NULL is desired for blanks
func SQLNull(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}
