package rename

import (
	"context"
	"fmt"

	"github.com/apolinex/nameit/internal/crossref"
	"github.com/apolinex/nameit/internal/pdf"
	"github.com/apolinex/nameit/internal/publication"
	"github.com/apolinex/nameit/internal/resolve"
)

// RegistrySource resolves metadata by scanning the first page for a DOI and
// looking it up against the bibliographic registry. This is the default
// source.
type RegistrySource struct {
	Resolver *resolve.Resolver

	// ExtractDOI is injectable for tests; nil uses pdf.ExtractDOI.
	ExtractDOI func(path string) (string, error)
}

// Resolve implements Source. A readable PDF with no DOI is ErrNoIdentifier,
// and no registry call is made for it.
func (s *RegistrySource) Resolve(ctx context.Context, path string) (*publication.Publication, error) {
	extract := s.ExtractDOI
	if extract == nil {
		extract = pdf.ExtractDOI
	}

	doi, err := extract(path)
	if err != nil {
		return nil, err
	}
	if doi == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoIdentifier, path)
	}

	return s.Resolver.Resolve(ctx, doi)
}

// DocInfoSource resolves metadata from the PDF's embedded Info dictionary.
// Embedded properties go through the same normalization and validation as
// registry records.
type DocInfoSource struct {
	// ReadInfo is injectable for tests; nil uses pdf.ReadInfo.
	ReadInfo func(path string) (*pdf.DocInfo, error)
}

// Resolve implements Source.
func (s *DocInfoSource) Resolve(ctx context.Context, path string) (*publication.Publication, error) {
	read := s.ReadInfo
	if read == nil {
		read = pdf.ReadInfo
	}

	info, err := read(path)
	if err != nil {
		return nil, err
	}

	work, err := info.Record()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoMetadata, path, err)
	}
	return resolve.Normalize(work)
}

// RecordSource adapts any raw-record producer (such as the layout-model
// extraction service) into a Source by normalizing its output through the
// standard validation path.
type RecordSource struct {
	Records interface {
		Record(ctx context.Context, path string) (*crossref.Work, error)
	}
}

// Resolve implements Source.
func (s *RecordSource) Resolve(ctx context.Context, path string) (*publication.Publication, error) {
	work, err := s.Records.Record(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoMetadata, path, err)
	}
	return resolve.Normalize(work)
}
