// Package styles provides shared lipgloss styles for CLI and TUI output.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines the semantic colors used across diff output.
type Palette struct {
	Added      lipgloss.Color
	Removed    lipgloss.Color
	Modified   lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Surface    lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Added:      lipgloss.Color("#9ece6a"),
		Removed:    lipgloss.Color("#f7768e"),
		Modified:   lipgloss.Color("#e0af68"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Accent:     lipgloss.Color("#7aa2f7"),
		Surface:    lipgloss.Color("#3b4261"),
	},
	"gruvbox": {
		Added:      lipgloss.Color("#b8bb26"),
		Removed:    lipgloss.Color("#fb4934"),
		Modified:   lipgloss.Color("#fabd2f"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Accent:     lipgloss.Color("#83a598"),
		Surface:    lipgloss.Color("#3c3836"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// Shared styles, rebuilt by SetTheme.
var (
	Added         lipgloss.Style
	Removed       lipgloss.Style
	Modified      lipgloss.Style
	Muted         lipgloss.Style
	Accent        lipgloss.Style
	AddedInline   lipgloss.Style
	RemovedInline lipgloss.Style
	LineNumber    lipgloss.Style
	Header        lipgloss.Style
)

func init() {
	SetTheme(themes[DefaultTheme])
}

// SetTheme rebuilds the shared styles from a palette. Call once during
// startup after the configured theme is known.
func SetTheme(p Palette) {
	Added = lipgloss.NewStyle().Foreground(p.Added)
	Removed = lipgloss.NewStyle().Foreground(p.Removed)
	Modified = lipgloss.NewStyle().Foreground(p.Modified)
	Muted = lipgloss.NewStyle().Foreground(p.Muted)
	Accent = lipgloss.NewStyle().Foreground(p.Accent)

	// Inline change spans get a background so single-character edits
	// stay visible inside an already colored line.
	AddedInline = lipgloss.NewStyle().Foreground(p.Added).Background(p.Surface).Bold(true)
	RemovedInline = lipgloss.NewStyle().Foreground(p.Removed).Background(p.Surface).Bold(true)

	LineNumber = lipgloss.NewStyle().Foreground(p.Muted).Width(5).Align(lipgloss.Right)
	Header = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
}
