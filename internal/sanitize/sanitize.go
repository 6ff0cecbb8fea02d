// Package sanitize maps arbitrary text to filesystem-safe strings.
package sanitize

import (
	"strings"
	"unicode"
)

// asciiSafe holds the ASCII characters kept verbatim beyond letters and digits.
const asciiSafe = "-_.() "

// Clean returns text with every code point that is not filesystem-safe
// replaced by '_'. Safe code points are ASCII letters and digits, the
// punctuation in asciiSafe, and letters in any script (Unicode categories
// Ll, Lu, Lt, Lo), so accented and non-Latin author names survive.
//
// Clean is total and pure: it never fails, and Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if safe(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func safe(r rune) bool {
	if r < 0x80 {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return true
		}
		return strings.ContainsRune(asciiSafe, r)
	}
	return unicode.In(r, unicode.Ll, unicode.Lu, unicode.Lt, unicode.Lo)
}
