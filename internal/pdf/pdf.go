// Package pdf extracts first-page text and embedded document properties
// from academic-article PDF files.
package pdf

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// Errors surfaced to callers as terminal per-file failures, not retryable.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("pdf file not found")

	// ErrPermission indicates the file cannot be read due to permissions.
	ErrPermission = errors.New("pdf file not readable")

	// ErrCorrupt indicates the file could not be parsed as a PDF.
	ErrCorrupt = errors.New("corrupt or unreadable pdf")

	// ErrNoPages indicates the document has no pages to read.
	ErrNoPages = errors.New("pdf has no pages")
)

// FirstPageText extracts the plain text of the first page of the PDF at path.
// DOIs and other identifying text of a journal article live on page one.
func FirstPageText(path string) (string, error) {
	f, r, err := open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", fmt.Errorf("%w: %s", ErrNoPages, path)
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", fmt.Errorf("%w: %s", ErrNoPages, path)
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("%w: extracting text from %s: %v", ErrCorrupt, path, err)
	}
	return text, nil
}

// open opens a PDF file, mapping filesystem and parse failures to the
// package's sentinel errors.
func open(path string) (*os.File, *pdf.Reader, error) {
	if _, err := os.Stat(path); err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		case os.IsPermission(err):
			return nil, nil, fmt.Errorf("%w: %s", ErrPermission, path)
		default:
			return nil, nil, fmt.Errorf("checking %s: %w", path, err)
		}
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrPermission, path)
		}
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	return f, r, nil
}
