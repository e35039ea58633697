package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/sheetdiff/sheetdiff/internal/core/diff"
	"github.com/sheetdiff/sheetdiff/internal/core/logging"
	"github.com/sheetdiff/sheetdiff/internal/core/merge"
	"github.com/sheetdiff/sheetdiff/internal/tui"
	"github.com/sheetdiff/sheetdiff/pkg/iojson"
	"github.com/sheetdiff/sheetdiff/pkg/profiler"
)

type MergeCmd struct {
	flags *Flags

	// flags
	output        string
	decisionsFile string
	acceptAll     bool
	force         bool
	profilerPort  int
}

// NewMergeCmd creates a new merge command
func NewMergeCmd(flags *Flags) *MergeCmd {
	return &MergeCmd{flags: flags}
}

// Register adds the merge command to the application
func (cmd *MergeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "merge",
		Usage:     "Interactively reconcile two documents into one",
		UsageText: "sheetdiff merge [options] <old> <new>",
		Description: `Computes a diff, groups consecutive changes, and lets you decide per group
which side survives. Without --accept-all or --decisions the decisions are
collected interactively.

Defaults when no decision is made for a group: removals are accepted,
additions are kept, and modifications take the new side.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write the merged document to this file (default stdout)",
				Destination: &cmd.output,
			},
			&cli.StringFlag{
				Name:        "decisions",
				Usage:       "YAML file mapping group IDs to decisions; skips the interactive screen",
				Destination: &cmd.decisionsFile,
			},
			&cli.BoolFlag{
				Name:        "accept-all",
				Usage:       "apply the default decision to every group; skips the interactive screen",
				Destination: &cmd.acceptAll,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "overwrite the output file without confirmation",
				Destination: &cmd.force,
			},
			&cli.IntFlag{
				Name:        "profiler-port",
				Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
				Sources:     cli.EnvVars("SHEETDIFF_PROFILER_PORT"),
				Destination: &cmd.profilerPort,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *MergeCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected exactly two arguments, got %d. Run 'sheetdiff merge --help' for usage", c.Args().Len())
	}

	oldPath, newPath := c.Args().Get(0), c.Args().Get(1)

	// Start profiler server if enabled
	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	oldDoc, err := iojson.ReadInput(oldPath)
	if err != nil {
		return err
	}
	newDoc, err := iojson.ReadInput(newPath)
	if err != nil {
		return err
	}

	result := diff.Compute(string(oldDoc), string(newDoc), diff.Options{Threshold: cmd.flags.Config.Diff.Threshold})
	groups := merge.GroupEntries(result.Entries)

	logger := logging.Component("merge")
	logger.Debug().Int("groups", len(groups)).Msg("grouped diff")

	decisions, err := cmd.collectDecisions(oldPath, newPath, result, groups)
	if err != nil {
		return err
	}
	if decisions == nil {
		// Interactive session cancelled; write nothing.
		logger.Debug().Msg("merge cancelled")
		return nil
	}

	merged := merge.Output(result.Entries, groups, decisions)

	if cmd.output == "" {
		_, _ = fmt.Fprintln(c.Root().Writer, merged)
		return nil
	}

	if err := cmd.confirmOverwrite(); err != nil {
		return err
	}

	if err := os.WriteFile(cmd.output, []byte(merged+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info().Str("output", cmd.output).Int("decisions", len(decisions)).Msg("wrote merged document")
	_, _ = fmt.Fprintf(os.Stderr, "Wrote %s\n", cmd.output)

	return nil
}

// collectDecisions resolves the decision source: a decisions file,
// --accept-all defaults, or the interactive screen. A nil map with a
// nil error means the user cancelled.
func (cmd *MergeCmd) collectDecisions(oldPath, newPath string, result diff.Result, groups []merge.Group) (merge.Decisions, error) {
	switch {
	case cmd.decisionsFile != "":
		return cmd.loadDecisions(groups)

	case cmd.acceptAll:
		return merge.Decisions{}, nil
	}

	decisions, accepted, err := tui.RunMerge(tui.MergeOptions{
		OldName: oldPath,
		NewName: newPath,
		Entries: result.Entries,
		Groups:  groups,
		Inline:  diff.InlineMode(cmd.flags.Config.Diff.Inline),
	})
	if err != nil {
		return nil, err
	}
	if !accepted {
		return nil, nil
	}
	return decisions, nil
}

// loadDecisions reads a YAML decisions file and checks every entry
// against the vocabulary of its group kind, aliases included.
func (cmd *MergeCmd) loadDecisions(groups []merge.Group) (merge.Decisions, error) {
	data, err := os.ReadFile(cmd.decisionsFile)
	if err != nil {
		return nil, fmt.Errorf("read decisions file: %w", err)
	}

	var raw map[int]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse decisions file: %w", err)
	}

	byID := make(map[int]merge.Group, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}

	decisions := merge.Decisions{}
	for id, value := range raw {
		g, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("decisions file references unknown group %d", id)
		}
		d := merge.Decision(value)
		if !validDecisionFor(g.Kind, d) {
			return nil, fmt.Errorf("decision %q is not valid for group %d (%s)", value, id, g.Kind)
		}
		decisions[id] = d
	}

	return decisions, nil
}

func validDecisionFor(kind diff.Kind, d merge.Decision) bool {
	switch kind {
	case diff.KindAdded:
		// "original" and "modified" are accepted as legacy aliases for
		// discard and keep.
		return d == merge.DecisionKeep || d == merge.DecisionDiscard ||
			d == merge.DecisionOriginal || d == merge.DecisionModified || d == merge.DecisionBoth
	case diff.KindRemoved:
		return d == merge.DecisionRestore || d == merge.DecisionAccept ||
			d == merge.DecisionOriginal || d == merge.DecisionBoth
	case diff.KindModified:
		return d == merge.DecisionOriginal || d == merge.DecisionModified || d == merge.DecisionBoth
	default:
		return false
	}
}

// confirmOverwrite asks before clobbering an existing output file.
func (cmd *MergeCmd) confirmOverwrite() error {
	if cmd.force {
		return nil
	}
	if _, err := os.Stat(cmd.output); os.IsNotExist(err) {
		return nil
	}

	var overwrite bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("%s exists. Overwrite?", cmd.output)).
			Value(&overwrite),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("aborted")
		}
		return fmt.Errorf("confirm: %w", err)
	}
	if !overwrite {
		return fmt.Errorf("aborted")
	}
	return nil
}
