// Package config provides configuration loading and management for cplxalg.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/cplxalg"
)

// Config represents the complete cplxalg configuration
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Parser  ParserConfig  `yaml:"parser"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
}

// LogConfig configures the process logger
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: info)
	Level string `yaml:"level"`
}

// ParserConfig configures how identifiers are read
type ParserConfig struct {
	// Atoms is the kind given to parsed identifiers: plain, real or unit
	Atoms string `yaml:"atoms"`
}

// OutputConfig configures result rendering
type OutputConfig struct {
	// Format is text, latex or json
	Format string `yaml:"format"`
}

// HistoryConfig configures the SQLite check history
type HistoryConfig struct {
	// Enabled turns recording of checks on
	Enabled bool `yaml:"enabled"`
	// Path is the database file (empty = ~/.config/cplxalg/history.db)
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Parser: ParserConfig{Atoms: "unit"},
		Output: OutputConfig{Format: "text"},
		History: HistoryConfig{
			Enabled: true,
			Path:    "", // Resolved by the CLI
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	if _, err := c.AtomKind(); err != nil {
		return err
	}
	switch c.Output.Format {
	case "text", "latex", "json":
	default:
		return fmt.Errorf("output.format must be one of text, latex, json; got %q", c.Output.Format)
	}
	return nil
}

// AtomKind resolves parser.atoms to a term kind accepted by the parser.
func (c *Config) AtomKind() (cplxalg.TermKind, error) {
	k, err := cplxalg.ParseTermKind(c.Parser.Atoms)
	if err != nil || k == cplxalg.QuasiKind {
		return 0, fmt.Errorf("parser.atoms must be one of plain, real, unit; got %q", c.Parser.Atoms)
	}
	return k, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Overlay reads a YAML file onto c. Keys absent from the file keep their
// current values.
func (c *Config) Overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
// History.Enabled is not merged since false is indistinguishable from unset.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Parser.Atoms != "" {
		c.Parser.Atoms = other.Parser.Atoms
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.History.Path != "" {
		c.History.Path = other.History.Path
	}
}
