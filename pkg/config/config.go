// Package config loads the superbeads YAML configuration. Lookup
// order: .superbeads.yaml at the project root, then
// ~/.superbeads/config.yaml, then built-in defaults. Missing files are
// not errors.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigName is the per-project config filename.
	ProjectConfigName = ".superbeads.yaml"

	// userConfigDir is the directory under the home dir holding the
	// user-level config (and log files).
	userConfigDir = ".superbeads"

	userConfigName = "config.yaml"
)

// Config is the full superbeads configuration.
type Config struct {
	Archive    ArchiveConfig    `yaml:"archive"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ArchiveConfig tunes the session-log store. The archive directory
// name itself is fixed by the on-disk contract and not configurable.
type ArchiveConfig struct {
	// ExcludePatterns are glob patterns (matched against filenames)
	// hidden from listing and search.
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

// RetrievalConfig tunes the read path.
type RetrievalConfig struct {
	// RecentCount is the default number of recent sessions to load.
	RecentCount int `yaml:"recent_count"`

	// ScanThreshold overrides the archive size at which search
	// switches to the raw line scan. Zero keeps the built-in default.
	ScanThreshold int `yaml:"scan_threshold"`
}

// SummarizerConfig configures the optional LLM drafter used by
// compress --transcript.
type SummarizerConfig struct {
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// LoggingConfig defines logging configuration.
type LoggingConfig struct {
	// Verbosity controls logging level: quiet, normal, verbose, debug
	Verbosity string `yaml:"verbosity"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Retrieval: RetrievalConfig{
			RecentCount: 3,
		},
		Summarizer: SummarizerConfig{
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Logging: LoggingConfig{
			Verbosity: "normal",
		},
	}
}

// Validate checks and normalizes the configuration. Out-of-range
// retrieval counts are clamped rather than rejected.
func (c *Config) Validate() error {
	if c.Retrieval.RecentCount < 0 {
		c.Retrieval.RecentCount = 0
	}
	if c.Retrieval.RecentCount > 50 {
		c.Retrieval.RecentCount = 50
	}
	if c.Retrieval.ScanThreshold < 0 {
		return fmt.Errorf("config: scan_threshold cannot be negative")
	}
	if c.Logging.Verbosity == "" {
		c.Logging.Verbosity = "normal"
	}
	validLevels := map[string]bool{
		"quiet":   true,
		"normal":  true,
		"verbose": true,
		"debug":   true,
	}
	if !validLevels[c.Logging.Verbosity] {
		return fmt.Errorf("config: invalid logging verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", c.Logging.Verbosity)
	}
	return nil
}

// Load reads the effective configuration for a project root. A project
// file beats the user file; neither existing yields the defaults.
func Load(root string) (*Config, error) {
	if cfg, err := loadFile(filepath.Join(root, ProjectConfigName)); err != nil {
		return nil, err
	} else if cfg != nil {
		return cfg, nil
	}
	home, err := os.UserHomeDir()
	if err == nil {
		if cfg, err := loadFile(filepath.Join(home, userConfigDir, userConfigName)); err != nil {
			return nil, err
		} else if cfg != nil {
			return cfg, nil
		}
	}
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile parses one config file. A missing file returns (nil, nil).
func loadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}
