// Package main provides the nameit CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/apolinex/nameit/internal/config"
	"github.com/apolinex/nameit/internal/crossref"
	"github.com/apolinex/nameit/internal/layout"
	"github.com/apolinex/nameit/internal/rename"
	"github.com/apolinex/nameit/internal/resolve"
)

// Version is set at build time via ldflags
var Version = "dev"

// connectivityTimeout bounds the pre-flight registry reachability check.
const connectivityTimeout = 10 * time.Second

// Metadata source selection (mutually exclusive).
var (
	usePDFMeta  bool
	useCrossref bool
	useLayout   bool
)

// Verbosity selection (mutually exclusive).
var (
	verbose bool
	debug   bool
	silent  bool
)

var (
	dryRun      bool
	humanOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "nameit <path>",
	Short: "Rename academic-article PDFs from their bibliographic metadata",
	Long: `nameit renames research-article PDF files in a standardised way:

  {authors} ({year}) {title} @ {venue} - {publisher}.pdf

Metadata comes from one of three sources: a DOI found on the first page
resolved against the Crossref registry (default), the PDF's embedded
document properties, or a local layout-model inference service.

The path argument is a single PDF file or a directory tree of PDFs.
Results are reported per file as JSON by default.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVarP(&usePDFMeta, "use-pdf-metadata", "p", false, "Use embedded PDF document properties")
	rootCmd.Flags().BoolVarP(&useCrossref, "use-crossref", "c", false, "Use the Crossref registry (default)")
	rootCmd.Flags().BoolVarP(&useLayout, "use-layout", "l", false, "Use the layout-model extraction service")
	rootCmd.MarkFlagsMutuallyExclusive("use-pdf-metadata", "use-crossref", "use-layout")

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&silent, "silent", "s", false, "Disable all logging output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "debug", "silent")

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report what would be renamed without touching files")
	rootCmd.Flags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Report the error since we have SilenceErrors: true. Exiting
		// happens only here, after every deferred cleanup in run has run.
		code := ExitError
		var ec *exitCodeError
		if errors.As(err, &ec) {
			code = ec.code
		}
		exitWithError(code, "%v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	logger := newLogger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target := args[0]
	isDir, err := rename.ValidateTarget(target)
	if err != nil {
		return err
	}

	source, cleanup, err := buildSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	orch := rename.New(source, dryRun, logger)

	var outcomes []rename.Outcome
	if isDir {
		outcomes, err = orch.ProcessDir(ctx, target)
		if err != nil {
			return err
		}
	} else {
		outcomes = []rename.Outcome{orch.ProcessFile(ctx, target)}
	}

	report := newRunReport(outcomes, dryRun)
	if humanOutput {
		outputReportHuman(report)
		return nil
	}
	return outputJSON(report)
}

// buildSource constructs the selected metadata source. Setup failures
// (unreachable registry or layout service) abort the run before any file is
// touched; per-file conditions never do. On error any resource already
// opened here is closed before returning.
func buildSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (rename.Source, func(), error) {
	cleanup := func() {}

	switch {
	case usePDFMeta:
		return &rename.DocInfoSource{}, cleanup, nil

	case useLayout:
		var opts []layout.Option
		if cfg.LayoutURL != "" {
			opts = append(opts, layout.WithBaseURL(cfg.LayoutURL))
		}
		if cfg.LayoutModel != "" {
			opts = append(opts, layout.WithModel(cfg.LayoutModel))
		}
		provider := layout.NewProvider(opts...)
		if err := provider.IsAvailable(ctx); err != nil {
			return nil, nil, fmt.Errorf("layout extraction unavailable: %w", err)
		}
		return &rename.RecordSource{Records: provider}, cleanup, nil

	default: // Crossref registry
		opts := []crossref.ClientOption{crossref.WithMailto(cfg.Mailto)}

		cachePath := cfg.CachePath
		if cachePath == "" {
			if p, err := config.DefaultCachePath(); err == nil {
				cachePath = p
			}
		}
		if cachePath != "" {
			if cache, err := crossref.OpenCache(cachePath); err != nil {
				logger.Warn("registry cache unavailable, continuing without it", "path", cachePath, "error", err)
			} else {
				opts = append(opts, crossref.WithCache(cache))
				cleanup = func() { cache.Close() }
			}
		}

		client := crossref.NewClient(opts...)

		checkCtx, cancel := context.WithTimeout(ctx, connectivityTimeout)
		defer cancel()
		if err := client.CheckConnectivity(checkCtx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("Crossref is unreachable; registry mode needs network access: %w", err)
		}

		return &rename.RegistrySource{Resolver: resolve.New(client)}, cleanup, nil
	}
}

// loadConfig loads configuration. Its errors carry the config exit code.
func loadConfig() (*config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, &exitCodeError{code: ExitConfigError, err: err}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, &exitCodeError{code: ExitConfigError, err: err}
	}
	return cfg, nil
}

// newLogger builds the slog logger for the selected verbosity.
func newLogger() *slog.Logger {
	if silent {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
