// Package publication defines the core domain types for resolved article metadata.
package publication

import (
	"errors"
	"fmt"
)

// Sentinel values substituted when a field is legitimately absent from the
// registry record. A sentinel is a valid field value, not an error.
const (
	UnknownVenue     = "Unknown publication"
	UnknownPublisher = "Unknown publisher"
)

// ErrEmptyAuthorList is returned by FormatAuthors when given no authors.
// Callers must guarantee at least one author survives validation first.
var ErrEmptyAuthorList = errors.New("empty author list")

// FamilyName is a validated author family name. It is constructed once by the
// resolver from raw registry data and never mutated afterward.
type FamilyName string

// Publication is an immutable record of the bibliographic identity of one
// journal article. It is only ever constructed from a registry record that
// passed full field validation; no partially-validated Publication exists.
type Publication struct {
	Authors   []FamilyName `json:"authors"` // raw API order, first author is distinguished
	Year      int          `json:"year"`
	Title     string       `json:"title"`
	Venue     string       `json:"venue"`     // container title, UnknownVenue if absent
	Publisher string       `json:"publisher"` // UnknownPublisher if absent
}

// FormatAuthors collapses an ordered author list into the conventional short
// form used in filenames:
//
//	1 author  → "Smith"
//	2 authors → "Smith and Jones"
//	3+        → "Smith et al."
func FormatAuthors(authors []FamilyName) (string, error) {
	switch len(authors) {
	case 0:
		return "", ErrEmptyAuthorList
	case 1:
		return string(authors[0]), nil
	case 2:
		return fmt.Sprintf("%s and %s", authors[0], authors[1]), nil
	default:
		return fmt.Sprintf("%s et al.", authors[0]), nil
	}
}
