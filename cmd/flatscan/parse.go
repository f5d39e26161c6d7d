package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/flatfile/internal/core"
)

// stdinName is the file argument that reads standard input.
const stdinName = "-"

// errFilesFailed is returned when at least one file could not be parsed.
var errFilesFailed = errors.New("some files failed to parse")

func newParseCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Print the normalized rows of each file",
		Long: `Parse each file and print its rows after normalization and escape repair,
one row per line. With several files each document is preceded by a
"==> name <==" banner. Use "-" to read standard input.

Examples:
  flatscan parse orders.csv
  flatscan parse --header 1 --footer 1 -d tab export.tsv
  flatscan parse -e windows-1252 legacy.csv`,
		Args: fileArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd.Context(), args, quiet)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "parse only, print nothing but errors")
	return cmd
}

func (a *app) runParse(ctx context.Context, args []string, quiet bool) error {
	results := a.parseAll(ctx, args)

	failed := 0
	for i, res := range results {
		if !res.OK() {
			failed++
			fmt.Fprintf(a.stderr, "%s: %s\n", res.Path, core.FormatUserError(res.Err()))
			continue
		}
		if quiet {
			continue
		}
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(a.stdout)
			}
			fmt.Fprintf(a.stdout, "==> %s <==\n", res.Path)
		}
		if err := writeDocument(a.stdout, res); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFilesFailed, failed, len(results))
	}
	return nil
}

// fileArgs requires at least one file and allows standard input only once,
// since a second read would see an empty stream.
func fileArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
		return err
	}
	if n := slices.Index(args, stdinName); n >= 0 && slices.Contains(args[n+1:], stdinName) {
		return fmt.Errorf("%q (standard input) may be given only once", stdinName)
	}
	return nil
}

// parseAll parses every argument. Standard input is read first, on its own;
// files are parsed as one batch.
func (a *app) parseAll(ctx context.Context, args []string) []*core.FileResult {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]*core.FileResult, len(args))
	var paths []string
	var slots []int
	for i, arg := range args {
		if arg == stdinName {
			results[i], _ = a.svc.ParseReader(ctx, "stdin", a.stdin)
			continue
		}
		paths = append(paths, arg)
		slots = append(slots, i)
	}

	if len(paths) > 0 {
		batch := a.svc.ParseFiles(ctx, paths)
		for j, res := range batch.Files {
			results[slots[j]] = res
		}
	}
	return results
}

func writeDocument(w io.Writer, res *core.FileResult) error {
	if res.Document.LineCount() == 0 {
		return nil
	}
	if _, err := res.Document.WriteTo(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
