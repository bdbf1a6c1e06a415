package ui

import (
	"strings"
	"unicode"
)

// Printable makes a device-supplied string safe to place on one terminal
// line. Control characters (C0, DEL and C1, including newline and ESC) become
// '?' and invalid UTF-8 becomes U+FFFD.
func Printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}
		return r
	}, s)
}
