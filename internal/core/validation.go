package core

// validation.go checks parsed rows against positional column specs.
//
// Two checks run per row:
//  1. Shape: the row has the expected number of columns (if one is set)
//  2. Cells: each spec'd column is present when required and parses as its type
//
// The RowValidator can return all errors (for inspection reports) or just the
// first one (for pass/fail gating).

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/flatfile/internal/line"
)

// ValidationError represents a single failed check.
type ValidationError struct {
	Column  string // Column name, or "" for row-level failures
	Value   string // The offending value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: %s", e.Column, e.Message)
	}
	return e.Message
}

// ValidationResult contains the result of validating a row.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// RowValidator validates rows against column specs.
type RowValidator struct {
	specs    []ColumnSpec
	expected int
}

// NewRowValidator creates a validator. Column i of a row is checked against
// specs[i]; expected is the column-count contract (0 for none).
func NewRowValidator(specs []ColumnSpec, expected int) *RowValidator {
	return &RowValidator{specs: specs, expected: expected}
}

// ValidateRow returns every failed check for row.
func (v *RowValidator) ValidateRow(row *line.Delimited) ValidationResult {
	result := ValidationResult{Valid: true}

	if !row.HasColumnCount(v.expected) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Message: fmt.Sprintf("has %d columns, want %d", row.ColumnCount(), v.expected),
		})
	}

	for i, spec := range v.specs {
		if err := validateColumn(row, i, spec); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, *err)
		}
	}

	return result
}

// ValidateRowFirst returns the first failed check for row, or nil.
func (v *RowValidator) ValidateRowFirst(row *line.Delimited) error {
	if !row.HasColumnCount(v.expected) {
		return fmt.Errorf("has %d columns, want %d", row.ColumnCount(), v.expected)
	}
	for i, spec := range v.specs {
		if err := validateColumn(row, i, spec); err != nil {
			return err
		}
	}
	return nil
}

func validateColumn(row *line.Delimited, i int, spec ColumnSpec) *ValidationError {
	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("column %d", i+1)
	}

	if i >= row.ColumnCount() {
		if spec.Required {
			return &ValidationError{Column: name, Message: "missing required column"}
		}
		return nil
	}

	raw := strings.TrimSpace(row.Column(i))
	if raw == "" {
		if spec.Required {
			return &ValidationError{Column: name, Message: "required value is empty"}
		}
		// Blank optional cells are null, not invalid.
		return nil
	}

	switch spec.Type {
	case ColumnInteger:
		if !row.ColumnAsInteger(i).Valid {
			return &ValidationError{Column: name, Value: raw, Message: "invalid integer"}
		}
	case ColumnDecimal:
		if !row.ColumnAsDecimal(i).Valid {
			return &ValidationError{Column: name, Value: raw, Message: "invalid decimal"}
		}
	}
	return nil
}

// ParseColumnType converts a type name to a ColumnType. "" means text.
func ParseColumnType(name string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return ColumnText, nil
	case "integer", "int":
		return ColumnInteger, nil
	case "decimal", "numeric":
		return ColumnDecimal, nil
	default:
		return ColumnText, fmt.Errorf("unknown column type %q", name)
	}
}

func (t ColumnType) String() string {
	switch t {
	case ColumnInteger:
		return "integer"
	case ColumnDecimal:
		return "decimal"
	default:
		return "text"
	}
}
