package line

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// Comma is the CSV delimiter.
const Comma = ','

// columnState tracks how the column cache relates to the text.
type columnState int

const (
	// unparsed: text is authoritative, columns are not derived yet.
	unparsed columnState = iota
	// parsed: columns were derived from text and match it.
	parsed
	// modified: columns were edited and text is stale until the next String.
	modified
)

// Delimited is a Line split into columns on a single delimiter character.
//
// Columns are derived on first access and cached until the text is replaced.
// Column edits are reflected in String, which rejoins the columns.
type Delimited struct {
	text     string
	delim    rune
	expected int

	state   columnState
	columns []string
}

var _ Interface = (*Delimited)(nil)

// NewDelimited returns a line holding text, split on delim.
func NewDelimited(text string, delim rune) *Delimited {
	return &Delimited{text: text, delim: delim}
}

// NewCSV returns a comma-delimited line.
func NewCSV(text string) *Delimited {
	return NewDelimited(text, Comma)
}

// FromColumns returns a line built from columns joined with delim.
func FromColumns(delim rune, columns ...string) *Delimited {
	d := &Delimited{delim: delim}
	d.columns = slices.Clone(columns)
	if d.columns == nil {
		d.columns = []string{}
	}
	d.state = modified
	return d
}

// Delimiter returns the column delimiter.
func (d *Delimited) Delimiter() rune {
	return d.delim
}

// ExpectedColumnCount returns the column-count contract, 0 when unset.
func (d *Delimited) ExpectedColumnCount() int {
	return d.expected
}

// SetExpectedColumnCount sets the column-count contract checked by
// ValidNumberOfColumns. A value <= 0 removes the contract.
func (d *Delimited) SetExpectedColumnCount(n int) {
	if n < 0 {
		n = 0
	}
	d.expected = n
}

// Text returns the line as text, rejoining edited columns first.
func (d *Delimited) Text() string {
	return d.String()
}

// SetText replaces the text and discards the cached columns.
func (d *Delimited) SetText(text string) {
	d.text = text
	d.columns = nil
	d.state = unparsed
}

// SetNullableText replaces the text with t's string.
// Returns ErrNullValue and leaves the line unchanged if t is not valid.
func (d *Delimited) SetNullableText(t pgtype.Text) error {
	if !t.Valid {
		return fmt.Errorf("line text: %w", ErrNullValue)
	}
	d.SetText(t.String)
	return nil
}

// Clear empties the line. An empty line has zero columns.
func (d *Delimited) Clear() {
	d.SetText("")
}

// ReplaceAll applies a regular expression substitution to the whole text and
// discards the cached columns.
func (d *Delimited) ReplaceAll(pattern, replacement string) error {
	out, err := replaceAll(d.String(), pattern, replacement)
	if err != nil {
		return err
	}
	d.SetText(out)
	return nil
}

// Equal reports whether both lines hold the same text.
func (d *Delimited) Equal(other *Delimited) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.String() == other.String()
}

// parse derives the columns from the text if they are not cached.
func (d *Delimited) parse() {
	if d.state != unparsed {
		return
	}
	d.columns = splitColumns(d.text, d.delim)
	d.state = parsed
}

// splitColumns splits s on delim. Empty text has zero columns; a trailing
// delimiter yields a trailing empty column.
func splitColumns(s string, delim rune) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, string(delim))
}

// Columns returns a copy of the columns.
func (d *Delimited) Columns() []string {
	d.parse()
	return slices.Clone(d.columns)
}

// ColumnCount returns the number of columns.
func (d *Delimited) ColumnCount() int {
	d.parse()
	return len(d.columns)
}

// Column returns the column at i, or "" if i is out of range.
func (d *Delimited) Column(i int) string {
	d.parse()
	if i < 0 || i >= len(d.columns) {
		return ""
	}
	return d.columns[i]
}

// ColumnAsInteger returns the column at i as an integer.
// The result is not valid if the column is missing, blank or not an int32.
func (d *Delimited) ColumnAsInteger(i int) pgtype.Int4 {
	return toInt4(d.Column(i))
}

// ColumnAsDecimal returns the column at i as a decimal.
// The result is not valid if the column is missing, blank or not a decimal.
func (d *Delimited) ColumnAsDecimal(i int) pgtype.Numeric {
	return toNumeric(d.Column(i))
}

// ColumnIndex returns the index of the first column equal to name, ignoring
// case and surrounding whitespace, or -1. Useful on header rows.
func (d *Delimited) ColumnIndex(name string) int {
	d.parse()
	name = strings.TrimSpace(name)
	for i, c := range d.columns {
		if strings.EqualFold(strings.TrimSpace(c), name) {
			return i
		}
	}
	return -1
}

// SetColumn replaces the column at i.
func (d *Delimited) SetColumn(value string, i int) error {
	d.parse()
	if err := d.checkIndex(i); err != nil {
		return fmt.Errorf("set column: %w", err)
	}
	d.columns[i] = value
	d.state = modified
	return nil
}

// SetNullableColumn replaces the column at i; an invalid t is stored as "".
func (d *Delimited) SetNullableColumn(t pgtype.Text, i int) error {
	return d.SetColumn(textOrEmpty(t), i)
}

// AppendColumn adds a column at the end of the row.
func (d *Delimited) AppendColumn(value string) {
	d.parse()
	d.columns = append(d.columns, value)
	d.state = modified
}

// RemoveColumn deletes the column at i, shifting later columns left.
func (d *Delimited) RemoveColumn(i int) error {
	d.parse()
	if err := d.checkIndex(i); err != nil {
		return fmt.Errorf("remove column: %w", err)
	}
	d.columns = slices.Delete(d.columns, i, i+1)
	d.state = modified
	return nil
}

func (d *Delimited) checkIndex(i int) error {
	if i < 0 || i >= len(d.columns) {
		return fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, i, len(d.columns))
	}
	return nil
}

// ValidNumberOfColumns reports whether the column count matches the
// expected count. It is always true when no expectation is set.
func (d *Delimited) ValidNumberOfColumns() bool {
	return d.HasColumnCount(d.expected)
}

// HasColumnCount reports whether the row has exactly expected columns.
// It is always true when expected <= 0.
func (d *Delimited) HasColumnCount(expected int) bool {
	if expected <= 0 {
		return true
	}
	return d.ColumnCount() == expected
}

// String returns the columns joined with the delimiter.
func (d *Delimited) String() string {
	if d.state == modified {
		d.text = strings.Join(d.columns, string(d.delim))
		d.state = parsed
	}
	return d.text
}

// Join returns the columns joined with the delimiter, leaving out the
// columns at the skip positions. The remaining columns keep their order.
// Skip positions outside the row are ignored.
func (d *Delimited) Join(skip ...int) string {
	d.parse()
	if len(skip) == 0 {
		return d.String()
	}

	var b strings.Builder
	first := true
	for i, c := range d.columns {
		if slices.Contains(skip, i) {
			continue
		}
		if !first {
			b.WriteRune(d.delim)
		}
		b.WriteString(c)
		first = false
	}
	return b.String()
}
