// Command docgen generates CLI reference documentation from the sheetdiff
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/sheetdiff/sheetdiff/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "sheetdiff",
		Usage:     "Diff, inspect, and merge text documents",
		UsageText: "sheetdiff [global options] command [command options]",
		Description: `Sheetdiff compares two documents line by line, detects modified lines by
similarity, and highlights changes down to the character or word. It can also
structurally diff JSON documents and interactively merge two versions of a
file into one.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("SHEETDIFF_LOG_LEVEL"),
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (empty logs to stderr)",
				Sources: cli.EnvVars("SHEETDIFF_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("SHEETDIFF_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
		},
	}

	root = commands.NewDiffCmd(flags).Register(root)
	root = commands.NewJSONCmd(flags).Register(root)
	root = commands.NewMergeCmd(flags).Register(root)
	root = commands.NewBatchCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
