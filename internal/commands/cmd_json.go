package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sheetdiff/sheetdiff/internal/core/jsondiff"
	"github.com/sheetdiff/sheetdiff/internal/core/logging"
	"github.com/sheetdiff/sheetdiff/internal/core/render"
	"github.com/sheetdiff/sheetdiff/pkg/iojson"
)

type JSONCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	statOnly   bool
}

// NewJSONCmd creates a new json command
func NewJSONCmd(flags *Flags) *JSONCmd {
	return &JSONCmd{flags: flags}
}

// Register adds the json command to the application
func (cmd *JSONCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "json",
		Usage:     "Structurally compare two JSON documents",
		UsageText: "sheetdiff json [options] <old.json> <new.json>",
		Description: `Compares two JSON documents by structure rather than by line.

Objects are compared over the union of their keys, arrays index by index. Pass
"-" for either path to read that side from stdin.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the diff tree and stats as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "stat",
				Usage:       "print leaf statistics only",
				Destination: &cmd.statOnly,
			},
		},
		Action: cmd.run,
	})

	return app
}

// treeOutput is the JSON output format for sheetdiff json --json.
type treeOutput struct {
	Tree  *jsondiff.Node `json:"tree"`
	Stats jsondiff.Stats `json:"stats"`
}

func (cmd *JSONCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected exactly two arguments, got %d. Run 'sheetdiff json --help' for usage", c.Args().Len())
	}

	oldPath, newPath := c.Args().Get(0), c.Args().Get(1)
	if oldPath == "-" && newPath == "-" {
		return fmt.Errorf("only one side may be read from stdin")
	}

	oldRaw, err := iojson.ReadInput(oldPath)
	if err != nil {
		return err
	}
	newRaw, err := iojson.ReadInput(newPath)
	if err != nil {
		return err
	}

	// Parse failures belong to the caller side of the engine boundary:
	// surface them here, before Compare ever runs.
	oldVal, err := jsondiff.ParseDocument(oldRaw)
	if err != nil {
		return fmt.Errorf("%s: %w", oldPath, err)
	}
	newVal, err := jsondiff.ParseDocument(newRaw)
	if err != nil {
		return fmt.Errorf("%s: %w", newPath, err)
	}

	root := jsondiff.Compare(oldVal, newVal)
	stats := jsondiff.CollectStats(root)

	logger := logging.Component("json")
	logger.Debug().
		Str("old", oldPath).
		Str("new", newPath).
		Int("modified", stats.Modified).
		Msg("computed structural diff")

	out := c.Root().Writer

	switch {
	case cmd.jsonOutput:
		return iojson.Write(out, treeOutput{Tree: root, Stats: stats})
	case cmd.statOnly:
		_, _ = fmt.Fprintf(out, "added %d, removed %d, modified %d, unchanged %d\n",
			stats.Added, stats.Removed, stats.Modified, stats.Unchanged)
		return nil
	}

	render.Tree(out, root)
	return nil
}
