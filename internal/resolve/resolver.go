// Package resolve normalizes raw registry records into validated Publications.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/apolinex/nameit/internal/crossref"
	"github.com/apolinex/nameit/internal/publication"
	"github.com/apolinex/nameit/internal/validate"
)

// Errors returned by the resolver.
var (
	// ErrLookupFailed indicates the registry lookup returned nothing usable.
	ErrLookupFailed = errors.New("registry lookup failed")

	// ErrUnsupportedType indicates the record is not a journal article.
	// Books, preprints and datasets are out of scope by design.
	ErrUnsupportedType = errors.New("unsupported publication type")

	// ErrMalformedAuthorList indicates the author list is structurally
	// invalid (missing, or an entry lacks a given or family name).
	ErrMalformedAuthorList = errors.New("malformed author list")
)

// journalArticle is the only Crossref work type this tool names.
const journalArticle = "journal-article"

// Source looks up the raw registry record for an identifier. The Crossref
// client is the production implementation; tests inject fakes.
type Source interface {
	Works(ctx context.Context, doi string) (*crossref.Work, error)
}

// Resolver turns identifiers into validated Publications through an injected
// registry source. It performs no filesystem or console work itself.
type Resolver struct {
	source Source
}

// New creates a Resolver backed by the given registry source.
func New(source Source) *Resolver {
	return &Resolver{source: source}
}

// Resolve fetches and normalizes the registry record for one identifier.
// Any source failure surfaces as ErrLookupFailed; the source owns retry and
// timeout policy.
func (r *Resolver) Resolve(ctx context.Context, doi string) (*publication.Publication, error) {
	work, err := r.source.Works(ctx, doi)
	if err != nil {
		if crossref.IsRateLimited(err) {
			// Keep rate limiting distinguishable from permanent data errors.
			return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLookupFailed, doi, err)
	}
	return Normalize(work)
}

// Normalize validates a raw registry record and constructs a Publication.
// Construction and validation are atomic: the first failure aborts, and no
// partially-validated Publication can exist.
func Normalize(work *crossref.Work) (*publication.Publication, error) {
	if work == nil || work.Message == nil {
		return nil, fmt.Errorf("%w: response lacks message envelope", ErrLookupFailed)
	}
	msg := work.Message

	if msg.Type != journalArticle {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, msg.Type)
	}

	// Structural check first, so a broken list is reported as such rather
	// than as a name validation failure on a fragment.
	if len(msg.Author) == 0 {
		return nil, fmt.Errorf("%w: no authors in record", ErrMalformedAuthorList)
	}
	for i, a := range msg.Author {
		if a.Given == "" || a.Family == "" {
			return nil, fmt.Errorf("%w: entry %d lacks given or family name", ErrMalformedAuthorList, i)
		}
	}

	authors := make([]publication.FamilyName, 0, len(msg.Author))
	for _, a := range msg.Author {
		name, err := validate.FamilyName(a.Family)
		if err != nil {
			return nil, err
		}
		authors = append(authors, name)
	}

	year, err := validate.Year(msg.Issued.Year())
	if err != nil {
		return nil, err
	}

	title := ""
	if len(msg.Title) > 0 {
		title = msg.Title[0]
	}
	title, err = validate.Title(title)
	if err != nil {
		return nil, err
	}

	// Sentinel defaulting. A container title that is present but blank is a
	// data error; the string-typed publisher field cannot distinguish empty
	// from absent, so an empty publisher takes the sentinel.
	venue := publication.UnknownVenue
	if len(msg.ContainerTitle) > 0 {
		venue = msg.ContainerTitle[0]
	}
	venue, err = validate.Venue(venue)
	if err != nil {
		return nil, err
	}

	publisher := msg.Publisher
	if publisher == "" {
		publisher = publication.UnknownPublisher
	}
	publisher, err = validate.Publisher(publisher)
	if err != nil {
		return nil, err
	}

	return &publication.Publication{
		Authors:   authors,
		Year:      year,
		Title:     title,
		Venue:     venue,
		Publisher: publisher,
	}, nil
}
