// Package rnc validates Dominican Republic tax identifiers. An RNC has nine
// digits; a cédula used as tax id has eleven. Dashes and spaces are accepted
// on input and stripped.
package rnc

import "strings"

// Normalize strips separators from a tax id.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsValid reports whether the normalized value looks like an RNC or cédula.
func IsValid(raw string) bool {
	value := Normalize(raw)
	if len(value) != 9 && len(value) != 11 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
