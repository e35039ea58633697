package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, ViewUnified, cfg.View)
	assert.Equal(t, 0.4, cfg.Diff.Threshold)
	assert.Equal(t, "char", cfg.Diff.Inline)
	assert.Equal(t, "**/*.css", cfg.Batch.Glob)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diff:\n  threshold: 0.7\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.7, cfg.Diff.Threshold)
	assert.Equal(t, "char", cfg.Diff.Inline, "unset fields keep their defaults")
	assert.Equal(t, "tokyo-night", cfg.Theme)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diff: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.Theme = "solarized-disco" },
			wantErr: "theme",
		},
		{
			name:    "unknown view",
			mutate:  func(c *Config) { c.View = "three-column" },
			wantErr: "view",
		},
		{
			name:    "threshold out of range",
			mutate:  func(c *Config) { c.Diff.Threshold = 1.5 },
			wantErr: "threshold",
		},
		{
			name:    "bad inline mode",
			mutate:  func(c *Config) { c.Diff.Inline = "bytes" },
			wantErr: "inline",
		},
		{
			name:    "bad glob",
			mutate:  func(c *Config) { c.Batch.Glob = "[" },
			wantErr: "glob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
