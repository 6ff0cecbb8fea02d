package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file error: %v", err)
	}
	if cfg.Mailto != "" || cfg.LayoutURL != "" {
		t.Errorf("missing file should yield zero config, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "mailto: reader@example.org\nlayout_url: http://localhost:9000\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Mailto != "reader@example.org" {
		t.Errorf("Mailto = %q", cfg.Mailto)
	}
	if cfg.LayoutURL != "http://localhost:9000" {
		t.Errorf("LayoutURL = %q", cfg.LayoutURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mailto: file@example.org\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("NAMEIT_MAILTO", "env@example.org")
	t.Setenv("NAMEIT_CACHE_PATH", "/tmp/cache.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Mailto != "env@example.org" {
		t.Errorf("Mailto = %q, want env override", cfg.Mailto)
	}
	if cfg.CachePath != "/tmp/cache.db" {
		t.Errorf("CachePath = %q", cfg.CachePath)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mailto: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() on invalid YAML succeeded")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{Mailto: "reader@example.org", LayoutModel: "layoutlmv3-base"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Mailto != cfg.Mailto || got.LayoutModel != cfg.LayoutModel {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
