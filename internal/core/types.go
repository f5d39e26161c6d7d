package core

import (
	"time"

	"github.com/JonMunkholm/flatfile/internal/scan"
)

// ColumnType is the expected data type of a column.
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnInteger
	ColumnDecimal
)

// ColumnSpec describes one positional column.
type ColumnSpec struct {
	Name     string     // Display name used in validation messages
	Type     ColumnType // Expected data type
	Required bool       // Value must be non-blank
}

// FileResult is the outcome of parsing one file.
type FileResult struct {
	RunID    string            `json:"run_id"`
	FileID   string            `json:"file_id"`
	Path     string            `json:"path"`
	Document *scan.CSVDocument `json:"-"`
	Summary  *Summary          `json:"summary,omitempty"`
	Duration time.Duration     `json:"duration_ns"`
	Error    string            `json:"error,omitempty"`
	Code     string            `json:"code,omitempty"`

	err error
}

// Err returns the parse error, or nil on success.
func (r *FileResult) Err() error {
	return r.err
}

// OK reports whether the file parsed.
func (r *FileResult) OK() bool {
	return r.err == nil
}

// Summary describes the rows of a parsed document.
type Summary struct {
	Lines        int         `json:"lines"`
	ColumnCounts map[int]int `json:"column_counts"` // column count -> rows with it
	InvalidRows  []int       `json:"invalid_rows"`  // 1-based rows breaking the column-count contract
	Issues       []RowIssue  `json:"issues"`        // typed-column failures, capped at MaxIssues
	IssueCount   int         `json:"issue_count"`   // all failures, including those past the cap
}

// Valid reports whether every row passed every check.
func (s *Summary) Valid() bool {
	return len(s.InvalidRows) == 0 && s.IssueCount == 0
}

// RowIssue is one failed column check.
type RowIssue struct {
	Row    int    `json:"row"` // 1-based
	Column string `json:"column"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// BatchResult is the outcome of parsing several files in one run.
type BatchResult struct {
	RunID    string        `json:"run_id"`
	Files    []*FileResult `json:"files"` // in input order
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration_ns"`
}
