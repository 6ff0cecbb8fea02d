// Package rename sequences metadata resolution and the filesystem rename for
// one PDF, and folds the per-file pipeline over a directory tree.
package rename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/apolinex/nameit/internal/crossref"
	"github.com/apolinex/nameit/internal/filename"
	"github.com/apolinex/nameit/internal/publication"
	"github.com/apolinex/nameit/internal/resolve"
	"github.com/apolinex/nameit/internal/validate"
)

// Errors classified by the orchestrator.
var (
	// ErrNoIdentifier indicates no DOI-shaped substring was found in the
	// document text.
	ErrNoIdentifier = errors.New("no DOI found in document text")

	// ErrNoMetadata indicates the selected source produced nothing usable.
	ErrNoMetadata = errors.New("no usable metadata")

	// ErrDestinationExists indicates a file with the synthesized name is
	// already present. The orchestrator never silently overwrites.
	ErrDestinationExists = errors.New("destination filename already exists")
)

// State is the terminal state of one file's pipeline run.
type State string

// Terminal states. A skip means the tool cannot name this file (no
// identifier, no registry record, wrong publication type); a failure means
// something about the file or its metadata is actually wrong.
const (
	StateRenamed State = "renamed"
	StateSkipped State = "skipped"
	StateFailed  State = "failed"
)

// Outcome is the structured per-file result record. Batch runs report one
// Outcome per file; no per-file condition ever aborts the batch.
type Outcome struct {
	Path      string `json:"path"`
	State     State  `json:"state"`
	NewName   string `json:"new_name,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Retryable bool   `json:"retryable,omitempty"` // rate-limit failures may succeed later
	DryRun    bool   `json:"dry_run,omitempty"`
}

// Source produces a validated Publication for one PDF file. The registry,
// embedded-metadata and layout-model paths all implement it.
type Source interface {
	Resolve(ctx context.Context, path string) (*publication.Publication, error)
}

// Orchestrator runs the rename pipeline. Processing is sequential by design:
// the bottleneck is registry latency and its rate limit, not CPU, and
// per-file runs share no mutable state.
type Orchestrator struct {
	source Source
	dryRun bool
	log    *slog.Logger
}

// New creates an Orchestrator using the given metadata source.
func New(source Source, dryRun bool, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{source: source, dryRun: dryRun, log: log}
}

// ProcessFile runs the pipeline for a single PDF and returns its outcome.
func (o *Orchestrator) ProcessFile(ctx context.Context, path string) Outcome {
	o.log.Debug("processing", "path", path)

	pub, err := o.source.Resolve(ctx, path)
	if err != nil {
		return o.classify(path, err)
	}

	name, err := filename.Synthesize(pub)
	if err != nil {
		return Outcome{Path: path, State: StateFailed, Reason: err.Error()}
	}

	if filepath.Base(path) == name {
		return Outcome{Path: path, State: StateSkipped, Reason: "already named from metadata"}
	}

	dest := filepath.Join(filepath.Dir(path), name)
	if _, err := os.Lstat(dest); err == nil {
		return Outcome{
			Path:   path,
			State:  StateFailed,
			Reason: fmt.Sprintf("%v: %s", ErrDestinationExists, name),
		}
	}

	if o.dryRun {
		return Outcome{Path: path, State: StateRenamed, NewName: name, DryRun: true}
	}

	// Same-directory move, atomic on POSIX filesystems.
	if err := os.Rename(path, dest); err != nil {
		return Outcome{Path: path, State: StateFailed, Reason: fmt.Sprintf("renaming: %v", err)}
	}

	o.log.Info("renamed", "path", path, "new_name", name)
	return Outcome{Path: path, State: StateRenamed, NewName: name}
}

// ProcessDir walks root recursively and runs the pipeline over every .pdf
// file, in lexicographic order. A failed or skipped file never aborts its
// siblings; each file's outcome is reported individually.
func (o *Orchestrator) ProcessDir(ctx context.Context, root string) ([]Outcome, error) {
	var outcomes []Outcome
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			outcomes = append(outcomes, Outcome{
				Path:   path,
				State:  StateFailed,
				Reason: fmt.Sprintf("walking: %v", err),
			})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}
		outcomes = append(outcomes, o.ProcessFile(ctx, path))
		return nil
	})
	if err != nil {
		return outcomes, fmt.Errorf("walking %s: %w", root, err)
	}
	return outcomes, nil
}

// classify converts a pipeline error into a terminal outcome. Only the
// orchestrator decides whether an error is a skip or a failure; nothing
// below it terminates the process.
func (o *Orchestrator) classify(path string, err error) Outcome {
	out := Outcome{Path: path, Reason: err.Error()}

	switch {
	case errors.Is(err, ErrNoIdentifier),
		errors.Is(err, ErrNoMetadata),
		errors.Is(err, resolve.ErrUnsupportedType),
		errors.Is(err, resolve.ErrLookupFailed):
		out.State = StateSkipped
		out.Retryable = crossref.IsRateLimited(err)
	default:
		// Validation failures, malformed author lists, unreadable PDFs,
		// filesystem errors.
		out.State = StateFailed
	}

	var ve *validate.Error
	if errors.As(err, &ve) {
		out.State = StateFailed
	}
	return out
}
