package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/sheetdiff/sheetdiff/internal/core/diff"
	"github.com/sheetdiff/sheetdiff/internal/core/logging"
	"github.com/sheetdiff/sheetdiff/pkg/iojson"
	"github.com/sheetdiff/sheetdiff/pkg/utils"
)

type BatchCmd struct {
	flags *Flags

	// flags
	glob       string
	jsonOutput bool
}

// NewBatchCmd creates a new batch command
func NewBatchCmd(flags *Flags) *BatchCmd {
	return &BatchCmd{flags: flags}
}

// Register adds the batch command to the application
func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "batch",
		Usage:     "Diff matching files across two directory trees",
		UsageText: "sheetdiff batch [options] <old-dir> <new-dir>",
		Description: `Pairs files by relative path across two directory trees and prints per-file
diff statistics. Files present in only one tree are reported as fully added or
fully removed.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "glob",
				Usage:       "doublestar pattern selecting files to compare (defaults to config)",
				Destination: &cmd.glob,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output one JSON object per file",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// fileReport is the per-file JSON output format for sheetdiff batch --json.
type fileReport struct {
	Path   string     `json:"path"`
	Status string     `json:"status"` // changed, unchanged, added, removed
	Stats  diff.Stats `json:"stats"`
}

func (cmd *BatchCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected exactly two arguments, got %d. Run 'sheetdiff batch --help' for usage", c.Args().Len())
	}

	oldDir, newDir := c.Args().Get(0), c.Args().Get(1)
	pattern := cmd.glob
	if pattern == "" {
		pattern = cmd.flags.Config.Batch.Glob
	}

	paths, err := collectPaths(oldDir, newDir, pattern)
	if err != nil {
		return err
	}

	logger := logging.Component("batch")
	logger.Debug().
		Str("glob", pattern).
		Int("files", len(paths)).
		Msg("paired files")

	// Reports land in their path slot so output order stays stable no
	// matter which goroutine finishes first.
	reports := make([]fileReport, len(paths))
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, rel := range paths {
		eg.Go(func() error {
			report, err := cmd.diffPair(oldDir, newDir, rel)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintf(os.Stderr, "No files matched %q\n", pattern)
		return nil
	}

	// Buffer the whole report so an encoding failure can't leave a
	// truncated table behind.
	buf := &utils.DeferredWriter{}

	if cmd.jsonOutput {
		for _, r := range reports {
			if err := iojson.WriteLine(buf, r); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
		}
		return buf.Flush(c.Root().Writer)
	}

	w := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FILE\tSTATUS\tADDED\tREMOVED\tMODIFIED")
	for _, r := range reports {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", r.Path, r.Status, r.Stats.Added, r.Stats.Removed, r.Stats.Modified)
	}
	_ = w.Flush()

	return buf.Flush(c.Root().Writer)
}

// collectPaths globs both trees and returns the sorted union of
// matching relative paths.
func collectPaths(oldDir, newDir, pattern string) ([]string, error) {
	union := map[string]struct{}{}

	for _, dir := range []string{oldDir, newDir} {
		matches, err := doublestar.Glob(os.DirFS(dir), pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", dir, err)
		}
		for _, m := range matches {
			union[m] = struct{}{}
		}
	}

	paths := make([]string, 0, len(union))
	for p := range union {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths, nil
}

func (cmd *BatchCmd) diffPair(oldDir, newDir, rel string) (fileReport, error) {
	oldDoc, oldOK, err := readIfExists(filepath.Join(oldDir, rel))
	if err != nil {
		return fileReport{}, err
	}
	newDoc, newOK, err := readIfExists(filepath.Join(newDir, rel))
	if err != nil {
		return fileReport{}, err
	}

	result := diff.Compute(oldDoc, newDoc, diff.Options{Threshold: cmd.flags.Config.Diff.Threshold})

	status := "changed"
	switch {
	case !oldOK:
		status = "added"
	case !newOK:
		status = "removed"
	case result.Stats.Added+result.Stats.Removed+result.Stats.Modified == 0:
		status = "unchanged"
	}

	return fileReport{Path: rel, Status: status, Stats: result.Stats}, nil
}

func readIfExists(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), true, nil
}
