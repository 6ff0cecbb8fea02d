// Package validate implements per-field acceptance rules for registry metadata.
//
// Validators normalize by rejection: a value either comes back unchanged (modulo
// whitespace trimming) or the validator returns an *Error naming the field, the
// offending value, and the reason. They never rewrite author-supplied casing.
package validate

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/apolinex/nameit/internal/publication"
)

// MinYear is the earliest publication year accepted. Nothing this tool names
// predates modern journal metadata.
const MinYear = 1900

// lowercasePrefixes are name particles allowed to start with a lowercase
// letter ("van der Waals", "de la Cruz").
var lowercasePrefixes = map[string]bool{
	"de": true, "den": true, "van": true, "von": true, "di": true,
	"la": true, "del": true, "der": true, "della": true, "y": true, "na": true,
}

// FamilyName validates an author family name and returns it trimmed.
//
// Accepted characters are letters in any script (including modifier letters
// and combining marks) plus hyphen, apostrophe, and space. Digits are rejected
// with the dedicated KindDigitInName so batch diagnostics can tell a
// typo-in-name from registry noise.
func FamilyName(raw string) (publication.FamilyName, error) {
	name := strings.TrimSpace(raw)

	if countNonSpace(name) < 2 {
		return "", newError(FieldAuthor, raw, KindEmptyName)
	}

	for _, r := range name {
		if r == '-' || r == '\'' || r == ' ' {
			continue
		}
		if unicode.Is(unicode.Nd, r) {
			return "", newError(FieldAuthor, raw, KindDigitInName)
		}
		if !unicode.In(r, unicode.Ll, unicode.Lu, unicode.Lt, unicode.Lo, unicode.Lm, unicode.Mn, unicode.Mc) {
			return "", newError(FieldAuthor, raw, KindInvalidCharacter)
		}
	}

	for _, doubled := range []string{"''", "--", "  "} {
		if strings.Contains(name, doubled) {
			return "", newError(FieldAuthor, raw, KindDoubledPunctuation)
		}
	}

	for _, part := range strings.Fields(name) {
		if lowercasePrefixes[strings.ToLower(part)] {
			continue
		}
		if first, ok := firstLetter(part); ok && !unicode.IsUpper(first) && !unicode.IsTitle(first) {
			err := newError(FieldAuthor, raw, KindImproperCapitalization)
			err.Part = part
			return "", err
		}
	}

	return publication.FamilyName(name), nil
}

// Year validates a publication year against the closed interval
// [MinYear, current calendar year].
func Year(raw int) (int, error) {
	if raw < MinYear || raw > time.Now().Year() {
		return 0, newError(FieldYear, strconv.Itoa(raw), KindYearOutOfRange)
	}
	return raw, nil
}

// Title validates that a title is non-empty after trimming and free of
// control characters.
func Title(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", newError(FieldTitle, raw, KindEmptyTitle)
	}
	for _, r := range raw {
		if unicode.IsControl(r) {
			return "", newError(FieldTitle, raw, KindInvalidCharacter)
		}
	}
	return raw, nil
}

// Venue validates that a container title is non-empty after trimming.
// Sentinel defaulting for an absent field happens in the resolver, before
// this is invoked; an empty string that is present is a data error.
func Venue(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", newError(FieldVenue, raw, KindEmptyField)
	}
	return raw, nil
}

// Publisher validates that a publisher name is non-empty after trimming.
func Publisher(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", newError(FieldPublisher, raw, KindEmptyField)
	}
	return raw, nil
}

// countNonSpace counts the runes in s that are not spaces.
func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' {
			n++
		}
	}
	return n
}

// firstLetter returns the first letter rune of s, if any.
func firstLetter(s string) (rune, bool) {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return r, true
		}
	}
	return 0, false
}
