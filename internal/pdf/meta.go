package pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apolinex/nameit/internal/crossref"
)

// DocInfo holds the fields of a PDF Info dictionary used for renaming.
// Embedded metadata is whatever the producing software wrote; every field
// may be empty or junk.
type DocInfo struct {
	Author       string
	Title        string
	Subject      string // often carries the journal name
	Creator      string // producing application, sometimes the publisher
	CreationDate string
	ModDate      string
}

// ReadInfo reads the Info dictionary of the PDF at path.
func ReadInfo(path string) (*DocInfo, error) {
	f, r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return &DocInfo{}, nil
	}

	return &DocInfo{
		Author:       info.Key("Author").Text(),
		Title:        info.Key("Title").Text(),
		Subject:      info.Key("Subject").Text(),
		Creator:      info.Key("Creator").Text(),
		CreationDate: info.Key("CreationDate").Text(),
		ModDate:      info.Key("ModDate").Text(),
	}, nil
}

// Year returns the publication year recoverable from the document dates,
// or 0 if none is found. CreationDate wins over ModDate.
func (i *DocInfo) Year() int {
	if y := firstValidYear(i.CreationDate); y != 0 {
		return y
	}
	return firstValidYear(i.ModDate)
}

// Record converts embedded document properties into the raw registry record
// shape consumed by the metadata resolver, so the embedded-metadata source
// and the DOI source share one validation path. Fields the Info dictionary
// cannot supply are left absent for the resolver's sentinel defaulting.
func (i *DocInfo) Record() (*crossref.Work, error) {
	if i.Author == "" && i.Title == "" {
		return nil, fmt.Errorf("no usable embedded metadata")
	}

	msg := &crossref.Message{
		Type:      "journal-article",
		Publisher: strings.TrimSpace(i.Creator),
	}

	if i.Title != "" {
		msg.Title = []string{strings.TrimSpace(i.Title)}
	}
	if i.Subject != "" {
		msg.ContainerTitle = []string{strings.TrimSpace(i.Subject)}
	}
	if y := i.Year(); y != 0 {
		msg.Issued = crossref.Date{DateParts: [][]int{{y}}}
	}
	for _, name := range splitAuthors(i.Author) {
		given, family := parseName(name)
		msg.Author = append(msg.Author, crossref.Author{Given: given, Family: family})
	}

	return &crossref.Work{Message: msg}, nil
}

// splitAuthors splits an Info-dict author string on the separators PDF
// producers commonly use.
func splitAuthors(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, sep := range []string{";", " and ", "&"} {
		if strings.Contains(s, sep) {
			var names []string
			for _, part := range strings.Split(s, sep) {
				if part = strings.TrimSpace(part); part != "" {
					names = append(names, part)
				}
			}
			return names
		}
	}
	return []string{s}
}

// parseName splits a display name into given and family parts.
//
// Supported formats:
//   - "Smith"            → family only
//   - "Jane Smith"       → given "Jane", family "Smith"
//   - "Smith, Jane"      → given "Jane", family "Smith"
//
// Multi-word given names keep everything before the last word.
func parseName(input string) (given, family string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ""
	}

	if idx := strings.Index(input, ","); idx > 0 {
		return strings.TrimSpace(input[idx+1:]), strings.TrimSpace(input[:idx])
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return "", parts[0]
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

// firstValidYear finds the first plausible four-digit year in a date string.
// PDF dates come in many shapes ("D:20200115...", free text); scanning for
// the first in-range yyyy substring handles all of them.
func firstValidYear(s string) int {
	current := time.Now().Year()
	for i := 0; i+4 <= len(s); i++ {
		y, err := strconv.Atoi(s[i : i+4])
		if err != nil {
			continue
		}
		if y >= 1900 && y <= current {
			return y
		}
	}
	return 0
}
