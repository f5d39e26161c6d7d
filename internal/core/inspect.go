package core

import (
	"github.com/JonMunkholm/flatfile/internal/scan"
)

// MaxIssues caps the issues kept in a Summary. IssueCount still counts all.
const MaxIssues = 100

// Inspect summarises the rows of doc. Rows are numbered from 1 in document
// order, after header, footer and blank lines were dropped.
func Inspect(doc *scan.CSVDocument, v *RowValidator) *Summary {
	s := &Summary{
		ColumnCounts: make(map[int]int),
		InvalidRows:  []int{},
		Issues:       []RowIssue{},
	}
	if doc == nil {
		return s
	}
	if v == nil {
		v = NewRowValidator(nil, 0)
	}

	for i, row := range doc.All() {
		s.Lines++
		s.ColumnCounts[row.ColumnCount()]++

		if !row.ValidNumberOfColumns() || !row.HasColumnCount(v.expected) {
			s.InvalidRows = append(s.InvalidRows, i+1)
		}

		for _, err := range v.ValidateRow(row).Errors {
			if err.Column == "" {
				// Shape failures are already reported in InvalidRows.
				continue
			}
			s.IssueCount++
			if len(s.Issues) < MaxIssues {
				s.Issues = append(s.Issues, RowIssue{
					Row:    i + 1,
					Column: err.Column,
					Value:  err.Value,
					Reason: err.Message,
				})
			}
		}
	}

	return s
}

// InvalidRows returns the 1-based positions of rows whose column count
// differs from the count each row expects.
func InvalidRows(doc *scan.CSVDocument) []int {
	return Inspect(doc, nil).InvalidRows
}
