package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/sheetdiff/sheetdiff/internal/core/config"
	"github.com/sheetdiff/sheetdiff/internal/core/diff"
	"github.com/sheetdiff/sheetdiff/internal/core/logging"
	"github.com/sheetdiff/sheetdiff/internal/core/render"
	"github.com/sheetdiff/sheetdiff/pkg/iojson"
)

type DiffCmd struct {
	flags *Flags

	// flags
	view       string
	inline     string
	threshold  float64
	jsonOutput bool
	statOnly   bool
	report     bool
}

// NewDiffCmd creates a new diff command
func NewDiffCmd(flags *Flags) *DiffCmd {
	return &DiffCmd{flags: flags}
}

// Register adds the diff command to the application
func (cmd *DiffCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "diff",
		Usage:     "Compare two documents line by line",
		UsageText: "sheetdiff diff [options] <old> <new>",
		Description: `Computes a line diff between two documents and renders it to the terminal.

Similar removed/added line pairs are detected as modifications and refined with
inline highlighting. Pass "-" for either path to read that side from stdin.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "view",
				Usage:       "layout: unified or side-by-side (defaults to config)",
				Destination: &cmd.view,
			},
			&cli.StringFlag{
				Name:        "inline",
				Usage:       "inline refinement: char or word (defaults to config)",
				Destination: &cmd.inline,
			},
			&cli.FloatFlag{
				Name:        "threshold",
				Usage:       "similarity threshold for modification detection (defaults to config)",
				Destination: &cmd.threshold,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output entries and stats as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "stat",
				Usage:       "print summary statistics only",
				Destination: &cmd.statOnly,
			},
			&cli.BoolFlag{
				Name:        "report",
				Usage:       "render a markdown change report",
				Destination: &cmd.report,
			},
		},
		Action: cmd.run,
	})

	return app
}

// diffOutput is the JSON output format for sheetdiff diff --json.
type diffOutput struct {
	Entries []diffEntryInfo `json:"entries"`
	Stats   diff.Stats      `json:"stats"`
}

type diffEntryInfo struct {
	Kind       diff.Kind `json:"kind"`
	LeftLine   int       `json:"left_line,omitempty"`
	RightLine  int       `json:"right_line,omitempty"`
	Left       string    `json:"left,omitempty"`
	Right      string    `json:"right,omitempty"`
	Similarity float64   `json:"similarity,omitempty"`
}

func (cmd *DiffCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected exactly two arguments, got %d. Run 'sheetdiff diff --help' for usage", c.Args().Len())
	}

	oldPath, newPath := c.Args().Get(0), c.Args().Get(1)
	if oldPath == "-" && newPath == "-" {
		return fmt.Errorf("only one side may be read from stdin")
	}

	oldDoc, err := iojson.ReadInput(oldPath)
	if err != nil {
		return err
	}
	newDoc, err := iojson.ReadInput(newPath)
	if err != nil {
		return err
	}

	result := diff.Compute(string(oldDoc), string(newDoc), diff.Options{Threshold: cmd.thresholdOrConfig()})

	logger := logging.Component("diff")
	logger.Debug().
		Str("old", oldPath).
		Str("new", newPath).
		Int("entries", len(result.Entries)).
		Int("modified", result.Stats.Modified).
		Msg("computed diff")

	out := c.Root().Writer

	switch {
	case cmd.jsonOutput:
		payload := diffOutput{Stats: result.Stats, Entries: make([]diffEntryInfo, 0, len(result.Entries))}
		for _, e := range result.Entries {
			payload.Entries = append(payload.Entries, diffEntryInfo(e))
		}
		return iojson.Write(out, payload)

	case cmd.statOnly:
		_, _ = fmt.Fprintln(out, render.StatsLine(result.Stats))
		return nil

	case cmd.report:
		md, err := render.MarkdownReport(result, oldPath, newPath)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(terminalWidth()))
		if err != nil {
			return fmt.Errorf("create markdown renderer: %w", err)
		}
		rendered, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		_, _ = fmt.Fprint(out, rendered)
		return nil
	}

	opts := render.Options{
		Width:  terminalWidth(),
		Inline: cmd.inlineMode(),
	}

	if cmd.viewOrConfig() == config.ViewSideBySide {
		render.SideBySide(out, result, opts)
	} else {
		render.Unified(out, result, opts)
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, render.StatsLine(result.Stats))

	return nil
}

func (cmd *DiffCmd) thresholdOrConfig() float64 {
	if cmd.threshold != 0 {
		return cmd.threshold
	}
	return cmd.flags.Config.Diff.Threshold
}

func (cmd *DiffCmd) viewOrConfig() string {
	if cmd.view != "" {
		return cmd.view
	}
	return cmd.flags.Config.View
}

func (cmd *DiffCmd) inlineMode() diff.InlineMode {
	mode := cmd.inline
	if mode == "" {
		mode = cmd.flags.Config.Diff.Inline
	}
	if mode == "word" {
		return diff.InlineWord
	}
	return diff.InlineChar
}

// terminalWidth returns the width of stdout, or 80 when stdout isn't a
// terminal (pipes, CI).
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
