// Package config handles configuration loading and validation for sheetdiff.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// View names for the diff command's default layout.
const (
	ViewUnified    = "unified"
	ViewSideBySide = "side-by-side"
)

// Config holds the application configuration.
type Config struct {
	Theme string      `yaml:"theme"`
	View  string      `yaml:"view"`
	Diff  DiffConfig  `yaml:"diff"`
	Batch BatchConfig `yaml:"batch"`
}

// DiffConfig tunes the comparison engine.
type DiffConfig struct {
	// Threshold is the minimum similarity ratio for treating a
	// removed/added line pair as a modification.
	Threshold float64 `yaml:"threshold"`
	// Inline selects the inline refinement strategy: char or word.
	Inline string `yaml:"inline"`
}

// BatchConfig tunes the batch command.
type BatchConfig struct {
	// Glob is the default doublestar pattern for pairing files across
	// the two directory trees.
	Glob string `yaml:"glob"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "tokyo-night",
		View:  ViewUnified,
		Diff: DiffConfig{
			Threshold: 0.4,
			Inline:    "char",
		},
		Batch: BatchConfig{
			Glob: "**/*.css",
		},
	}
}

// Load reads configuration from the given path. A missing file is not
// an error; defaults apply.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.View == "" {
		c.View = def.View
	}
	if c.Diff.Threshold == 0 {
		c.Diff.Threshold = def.Diff.Threshold
	}
	if c.Diff.Inline == "" {
		c.Diff.Inline = def.Diff.Inline
	}
	if c.Batch.Glob == "" {
		c.Batch.Glob = def.Batch.Glob
	}
}
