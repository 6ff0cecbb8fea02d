package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/apolinex/nameit/internal/rename"
)

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RunReport is the batch result written to stdout.
type RunReport struct {
	Renamed  int              `json:"renamed"`
	Skipped  int              `json:"skipped"`
	Failed   int              `json:"failed"`
	DryRun   bool             `json:"dry_run,omitempty"`
	Outcomes []rename.Outcome `json:"outcomes"`
}

// newRunReport tallies per-file outcomes into a report.
func newRunReport(outcomes []rename.Outcome, dryRun bool) RunReport {
	report := RunReport{DryRun: dryRun, Outcomes: outcomes}
	for _, out := range outcomes {
		switch out.State {
		case rename.StateRenamed:
			report.Renamed++
		case rename.StateSkipped:
			report.Skipped++
		case rename.StateFailed:
			report.Failed++
		}
	}
	return report
}

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputReportHuman writes a human-readable run report to stdout.
func outputReportHuman(report RunReport) {
	for _, out := range report.Outcomes {
		switch out.State {
		case rename.StateRenamed:
			if out.DryRun {
				fmt.Printf("would rename: %s\n       → %s\n", out.Path, out.NewName)
			} else {
				fmt.Printf("renamed: %s\n       → %s\n", out.Path, out.NewName)
			}
		case rename.StateSkipped:
			if out.Retryable {
				fmt.Printf("skipped (may succeed on retry): %s (%s)\n", out.Path, out.Reason)
			} else {
				fmt.Printf("skipped: %s (%s)\n", out.Path, out.Reason)
			}
		case rename.StateFailed:
			fmt.Printf("failed: %s (%s)\n", out.Path, out.Reason)
		}
	}
	fmt.Printf("%d renamed, %d skipped, %d failed\n", report.Renamed, report.Skipped, report.Failed)
}

// exitWithError outputs an error in the appropriate format and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}
