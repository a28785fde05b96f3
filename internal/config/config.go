// Package config holds the on-disk configuration for datasmith.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the user-editable configuration file.
type Config struct {
	// ExportDir is where export artifacts are written.
	ExportDir string `yaml:"export_dir"`
	// SessionDB is the sqlite file holding session snapshots.
	SessionDB string `yaml:"session_db"`
	// LogFile receives diagnostics while the TUI owns the terminal.
	LogFile string `yaml:"log_file"`
	// Advisor configures the analysis stub.
	Advisor AdvisorConfig `yaml:"advisor"`
}

// AdvisorConfig tunes the analysis service stub.
type AdvisorConfig struct {
	// LatencyMS is the simulated backend latency per call.
	LatencyMS int `yaml:"latency_ms"`
}

// DefaultConfig returns a sensible default configuration rooted in the
// user's home directory.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".datasmith")
	return &Config{
		ExportDir: "export",
		SessionDB: filepath.Join(base, "session.db"),
		LogFile:   filepath.Join(base, "datasmith.log"),
		Advisor: AdvisorConfig{
			LatencyMS: 400,
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".datasmith", "config.yaml")
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.ExportDir == "" {
		return fmt.Errorf("export_dir must not be empty")
	}
	if c.SessionDB == "" {
		return fmt.Errorf("session_db must not be empty")
	}
	if c.Advisor.LatencyMS < 0 {
		return fmt.Errorf("advisor.latency_ms must not be negative, got %d", c.Advisor.LatencyMS)
	}
	return nil
}

// LoadConfig reads a config file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the config file, creating parent directories.
func SaveConfig(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
