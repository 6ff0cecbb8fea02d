package rename

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateTarget(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "paper.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	txtPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("notes"), 0644); err != nil {
		t.Fatal(err)
	}
	upperPath := filepath.Join(dir, "PAPER.PDF")
	if err := os.WriteFile(upperPath, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	emptyDir := filepath.Join(t.TempDir(), "empty")
	if err := os.MkdirAll(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		isDir   bool
		wantErr error
	}{
		{name: "pdf file", path: pdfPath, isDir: false},
		{name: "uppercase extension", path: upperPath, isDir: false},
		{name: "non-empty directory", path: dir, isDir: true},
		{name: "wildcard", path: filepath.Join(dir, "*.pdf"), wantErr: ErrWildcardPath},
		{name: "non-pdf file", path: txtPath, wantErr: ErrNotPDF},
		{name: "empty directory", path: emptyDir, wantErr: ErrEmptyDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isDir, err := ValidateTarget(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ValidateTarget(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateTarget(%q) error: %v", tt.path, err)
			}
			if isDir != tt.isDir {
				t.Errorf("ValidateTarget(%q) isDir = %v, want %v", tt.path, isDir, tt.isDir)
			}
		})
	}
}

func TestValidateTargetMissing(t *testing.T) {
	if _, err := ValidateTarget(filepath.Join(t.TempDir(), "gone.pdf")); err == nil {
		t.Error("ValidateTarget() on missing path succeeded")
	}
}
