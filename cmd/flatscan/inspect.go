package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/flatfile/internal/core"
)

// fileReport is the printed form of one inspected file.
type fileReport struct {
	Path         string          `json:"path" yaml:"path"`
	RunID        string          `json:"run_id" yaml:"run_id"`
	Valid        bool            `json:"valid" yaml:"valid"`
	Lines        int             `json:"lines" yaml:"lines"`
	ColumnCounts map[int]int     `json:"column_counts,omitempty" yaml:"column_counts,omitempty"`
	InvalidRows  []int           `json:"invalid_rows,omitempty" yaml:"invalid_rows,omitempty"`
	IssueCount   int             `json:"issue_count" yaml:"issue_count"`
	Issues       []core.RowIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
	DurationMS   int64           `json:"duration_ms" yaml:"duration_ms"`
	Error        string          `json:"error,omitempty" yaml:"error,omitempty"`
	Code         string          `json:"code,omitempty" yaml:"code,omitempty"`
}

func newFileReport(res *core.FileResult) fileReport {
	r := fileReport{
		Path:       res.Path,
		RunID:      res.RunID,
		DurationMS: res.Duration.Milliseconds(),
		Error:      res.Error,
		Code:       res.Code,
	}
	if s := res.Summary; s != nil {
		r.Valid = s.Valid()
		r.Lines = s.Lines
		r.ColumnCounts = s.ColumnCounts
		r.InvalidRows = s.InvalidRows
		r.IssueCount = s.IssueCount
		r.Issues = s.Issues
	}
	return r
}

func newInspectCmd(a *app) *cobra.Command {
	var format string
	var strict bool

	cmd := &cobra.Command{
		Use:   "inspect [file...]",
		Short: "Report line and column-count statistics per file",
		Long: `Parse each file and report its line count, how many rows have each column
count, the rows that break the expected column count, and typed-column
failures from the profile's csv.columns list.

Examples:
  flatscan inspect -n 5 orders.csv
  flatscan inspect --format json *.csv
  flatscan inspect --profile bank.yaml --strict statement.txt`,
		Args: fileArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case "text", "json", "yaml":
				return nil
			}
			return fmt.Errorf("invalid --format %q: must be one of text, json, yaml", format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInspect(cmd.Context(), args, format, strict)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any row is invalid")
	return cmd
}

func (a *app) runInspect(ctx context.Context, args []string, format string, strict bool) error {
	results := a.parseAll(ctx, args)

	reports := make([]fileReport, len(results))
	failed, invalid := 0, 0
	for i, res := range results {
		reports[i] = newFileReport(res)
		if !res.OK() {
			failed++
		} else if !reports[i].Valid {
			invalid++
		}
	}

	var err error
	switch format {
	case "json":
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(reports)
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		err = enc.Encode(reports)
		if err == nil {
			err = enc.Close()
		}
	default:
		err = writeReportTable(a.stdout, reports)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFilesFailed, failed, len(results))
	}
	if strict && invalid > 0 {
		return fmt.Errorf("%d of %d files have invalid rows", invalid, len(results))
	}
	return nil
}

func writeReportTable(w io.Writer, reports []fileReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tLINES\tCOLUMNS\tINVALID ROWS\tISSUES\tSTATUS")

	for _, r := range reports {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\n", r.Path, r.Code)
			continue
		}
		status := "ok"
		if !r.Valid {
			status = "invalid"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%s\n",
			r.Path, r.Lines, formatCounts(r.ColumnCounts), formatRows(r.InvalidRows, 10), r.IssueCount, status)
	}
	return tw.Flush()
}

// formatCounts renders {3: 10, 2: 1} as "3x10 2x1", most common first.
func formatCounts(counts map[int]int) string {
	if len(counts) == 0 {
		return "-"
	}
	cols := make([]int, 0, len(counts))
	for c := range counts {
		cols = append(cols, c)
	}
	slices.SortFunc(cols, func(x, y int) int {
		if counts[x] != counts[y] {
			return counts[y] - counts[x]
		}
		return x - y
	})

	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%dx%d", c, counts[c])
	}
	return strings.Join(parts, " ")
}

// formatRows renders up to limit row numbers, then an ellipsis with the rest.
func formatRows(rows []int, limit int) string {
	if len(rows) == 0 {
		return "-"
	}
	n := min(len(rows), limit)
	parts := make([]string, n)
	for i := range n {
		parts[i] = fmt.Sprint(rows[i])
	}
	s := strings.Join(parts, ",")
	if len(rows) > limit {
		s += fmt.Sprintf(" (+%d)", len(rows)-limit)
	}
	return s
}
