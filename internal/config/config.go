// Package config handles nameit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-user configuration directory under $HOME.
	Dir = ".nameit"

	// File is the configuration file name.
	File = "config.yaml"

	// CacheFile is the registry response cache database name.
	CacheFile = "crossref.db"
)

// Config is the nameit configuration, read from ~/.nameit/config.yaml with
// NAMEIT_* environment overrides applied on top.
type Config struct {
	// Mailto is the contact email sent to Crossref for polite-pool access.
	Mailto string `yaml:"mailto"`

	// CachePath overrides the registry response cache location.
	CachePath string `yaml:"cache_path,omitempty"`

	// LayoutURL is the layout inference service endpoint.
	LayoutURL string `yaml:"layout_url,omitempty"`

	// LayoutModel is the layout model name.
	LayoutModel string `yaml:"layout_model,omitempty"`
}

// DefaultPath returns the path to the user config file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, Dir, File), nil
}

// DefaultCachePath returns the default registry cache location.
func DefaultCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, Dir, CacheFile), nil
}

// Load reads configuration from path. A missing file is not an error: the
// zero config with environment overrides is a fully working setup.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return &cfg, nil
}

// Save writes configuration to path, creating the directory as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyEnv overlays NAMEIT_* environment variables on the file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("NAMEIT_MAILTO"); v != "" {
		c.Mailto = v
	}
	if v := os.Getenv("NAMEIT_CACHE_PATH"); v != "" {
		c.CachePath = v
	}
	if v := os.Getenv("NAMEIT_LAYOUT_URL"); v != "" {
		c.LayoutURL = v
	}
	if v := os.Getenv("NAMEIT_LAYOUT_MODEL"); v != "" {
		c.LayoutModel = v
	}
}
