package line

import (
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgtype"
)

// Interface is implemented by every line type a Document can hold.
type Interface interface {
	fmt.Stringer
	Text() string
	SetText(text string)
	Clear()
	ReplaceAll(pattern, replacement string) error
}

// Line is one owned line of text.
type Line struct {
	text string
}

var _ Interface = (*Line)(nil)

// New returns a Line holding text.
func New(text string) *Line {
	return &Line{text: text}
}

// FromText returns a Line holding t's string.
// Returns ErrNullValue if t is not valid.
func FromText(t pgtype.Text) (*Line, error) {
	if !t.Valid {
		return nil, fmt.Errorf("line text: %w", ErrNullValue)
	}
	return New(t.String), nil
}

// Text returns the current content.
func (l *Line) Text() string {
	return l.text
}

// SetText replaces the content.
func (l *Line) SetText(text string) {
	l.text = text
}

// SetNullableText replaces the content with t's string.
// Returns ErrNullValue and leaves the content unchanged if t is not valid.
func (l *Line) SetNullableText(t pgtype.Text) error {
	if !t.Valid {
		return fmt.Errorf("line text: %w", ErrNullValue)
	}
	l.text = t.String
	return nil
}

// Clear sets the content to the empty string.
func (l *Line) Clear() {
	l.text = ""
}

// ReplaceAll replaces every match of pattern with replacement, in place.
// The replacement may reference capture groups ($1, ${name}).
func (l *Line) ReplaceAll(pattern, replacement string) error {
	out, err := replaceAll(l.text, pattern, replacement)
	if err != nil {
		return err
	}
	l.text = out
	return nil
}

// Equal reports whether both lines hold the same text.
func (l *Line) Equal(other *Line) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.text == other.text
}

func (l *Line) String() string {
	return l.text
}

// replaceAll compiles pattern and applies it to s.
func replaceAll(s, pattern, replacement string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrPattern, pattern, err)
	}
	return re.ReplaceAllString(s, replacement), nil
}
