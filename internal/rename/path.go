package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Target-path validation errors, reported once at setup time before any
// file is processed.
var (
	// ErrWildcardPath indicates the argument contains unexpanded glob
	// characters; callers must pass a literal path.
	ErrWildcardPath = errors.New("wildcards are not allowed, provide a literal path")

	// ErrNotPDF indicates a file argument without a .pdf extension.
	ErrNotPDF = errors.New("file is not a PDF")

	// ErrEmptyDir indicates a directory argument with no entries.
	ErrEmptyDir = errors.New("directory is empty")
)

// ValidateTarget checks a path argument before processing starts: no
// wildcards, the path exists, a file has the .pdf extension, a directory is
// non-empty. Returns whether the path is a directory.
func ValidateTarget(path string) (isDir bool, err error) {
	if strings.ContainsAny(path, "*?[]") {
		return false, fmt.Errorf("%w: %q", ErrWildcardPath, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("path %q does not exist", path)
		}
		return false, fmt.Errorf("checking %q: %w", path, err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return true, fmt.Errorf("reading directory %q: %w", path, err)
		}
		if len(entries) == 0 {
			return true, fmt.Errorf("%w: %q", ErrEmptyDir, path)
		}
		return true, nil
	}

	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return false, fmt.Errorf("%w: %q", ErrNotPDF, path)
	}
	return false, nil
}
