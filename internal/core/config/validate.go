package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/sheetdiff/sheetdiff/internal/core/styles"
)

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("theme", c.Theme, themeExists),
		criterio.Run("view", c.View, validView),
		criterio.Run("diff.inline", c.Diff.Inline, validInlineMode),
		criterio.Run("batch.glob", c.Batch.Glob, validGlob),
		c.validateThreshold(),
	)
}

func (c *Config) validateThreshold() error {
	if c.Diff.Threshold < 0 || c.Diff.Threshold > 1 {
		return criterio.NewFieldErrors("diff.threshold",
			fmt.Errorf("must be between 0 and 1, got %v", c.Diff.Threshold))
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func validView(view string) error {
	switch view {
	case ViewUnified, ViewSideBySide:
		return nil
	default:
		return fmt.Errorf("must be %q or %q, got %q", ViewUnified, ViewSideBySide, view)
	}
}

func validInlineMode(mode string) error {
	switch mode {
	case "char", "word":
		return nil
	default:
		return fmt.Errorf("must be \"char\" or \"word\", got %q", mode)
	}
}

func validGlob(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return nil
}
