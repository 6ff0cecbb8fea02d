package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRunReturnsErrorForMissingTarget(t *testing.T) {
	// Setup failures surface as returned errors, not process exits, so
	// deferred resource cleanup in run still executes.
	t.Setenv("HOME", t.TempDir())

	err := run(rootCmd, []string{filepath.Join(t.TempDir(), "missing.pdf")})
	if err == nil {
		t.Fatal("run() succeeded for a missing path")
	}

	var ec *exitCodeError
	if errors.As(err, &ec) {
		t.Errorf("path error carries exit code %d, want plain error for code %d", ec.code, ExitError)
	}
}

func TestLoadConfigErrorCarriesConfigExitCode(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgDir := filepath.Join(home, ".nameit")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("mailto: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := loadConfig()
	if err == nil {
		t.Fatal("loadConfig() succeeded on invalid YAML")
	}
	var ec *exitCodeError
	if !errors.As(err, &ec) || ec.code != ExitConfigError {
		t.Errorf("loadConfig() error = %v, want exit code %d", err, ExitConfigError)
	}
}
