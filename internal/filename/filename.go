// Package filename composes validated publication metadata into a
// filesystem-safe filename.
package filename

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/apolinex/nameit/internal/publication"
	"github.com/apolinex/nameit/internal/sanitize"
)

// MaxLength is the filename byte budget, the common filesystem limit.
const MaxLength = 255

// fixedOverhead is the literal text the synthesis format contributes beyond
// the field values: " (" + ") " + "..." + " @ " + " - " + ".pdf".
const fixedOverhead = len(" () ... @  - .pdf")

// Ellipsis marks a truncated title.
const Ellipsis = "..."

// Synthesize produces the final filename for a resolved publication:
//
//	{authors} ({year}) {title} @ {venue} - {publisher}.pdf
//
// Every free-text component is sanitized, and the 255-byte budget is spent
// on the title first: with author, year and venue fixed, the title is the
// most variable-length and least identity-critical field, so an overlong
// one is truncated with a trailing "..." rather than squeezing the fields
// that disambiguate the article. The bound itself holds unconditionally:
// a name still over budget after title truncation is clamped as a whole.
func Synthesize(pub *publication.Publication) (string, error) {
	authors, err := publication.FormatAuthors(pub.Authors)
	if err != nil {
		return "", err
	}

	cleanAuthors := sanitize.Clean(authors)
	cleanTitle := sanitize.Clean(pub.Title)
	cleanVenue := sanitize.Clean(pub.Venue)
	cleanPublisher := sanitize.Clean(pub.Publisher)
	yearStr := fmt.Sprintf("%d", pub.Year)

	maxTitle := MaxLength - len(cleanAuthors) - len(yearStr) - len(cleanVenue) - len(cleanPublisher) - fixedOverhead
	if maxTitle < 0 {
		maxTitle = 0
	}
	if len(cleanTitle) > maxTitle {
		cleanTitle = truncate(cleanTitle, maxTitle) + Ellipsis
	}

	name := fmt.Sprintf("%s (%s) %s @ %s - %s.pdf",
		cleanAuthors, yearStr, cleanTitle, cleanVenue, cleanPublisher)

	// A long venue, publisher or author list can overflow the budget on its
	// own, with no title left to shorten.
	if len(name) > MaxLength {
		name = truncate(strings.TrimSuffix(name, ".pdf"), MaxLength-len(".pdf")) + ".pdf"
	}
	return name, nil
}

// truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
