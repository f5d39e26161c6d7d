// Package document provides the ordered, index-addressable container that
// holds the lines of a parsed file.
package document

import (
	"fmt"
	"io"
	"iter"
	"reflect"
	"runtime"
	"slices"
	"strings"

	"github.com/JonMunkholm/flatfile/internal/line"
)

// LineSeparator is the platform line separator used by String and WriteTo.
var LineSeparator = platformSeparator()

func platformSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Document is an ordered sequence of lines in file order.
// Indices are stable until an insert or remove shifts them.
type Document[L fmt.Stringer] struct {
	lines []L
}

// New returns an empty document.
func New[L fmt.Stringer]() *Document[L] {
	return &Document[L]{lines: []L{}}
}

// From returns a document holding lines, skipping absent ones.
func From[L fmt.Stringer](lines ...L) *Document[L] {
	d := &Document[L]{lines: make([]L, 0, len(lines))}
	for _, l := range lines {
		d.AddLine(l)
	}
	return d
}

// AddLine appends l. It returns false and does nothing if l is absent (nil).
func (d *Document[L]) AddLine(l L) bool {
	if isAbsent(l) {
		return false
	}
	d.lines = append(d.lines, l)
	return true
}

// InsertLine inserts l at index, shifting later lines down. An index
// outside [0, LineCount()] appends instead. Returns false if l is absent.
func (d *Document[L]) InsertLine(l L, index int) bool {
	if isAbsent(l) {
		return false
	}
	if index < 0 || index > len(d.lines) {
		d.lines = append(d.lines, l)
		return true
	}
	d.lines = slices.Insert(d.lines, index, l)
	return true
}

// Line returns the line at index.
func (d *Document[L]) Line(index int) (L, error) {
	if err := d.checkIndex(index); err != nil {
		var zero L
		return zero, err
	}
	return d.lines[index], nil
}

// RemoveLine removes and returns the line at index, shifting later lines up.
func (d *Document[L]) RemoveLine(index int) (L, error) {
	if err := d.checkIndex(index); err != nil {
		var zero L
		return zero, err
	}
	l := d.lines[index]
	d.lines = slices.Delete(d.lines, index, index+1)
	return l, nil
}

func (d *Document[L]) checkIndex(index int) error {
	if index < 0 || index >= len(d.lines) {
		return fmt.Errorf("%w: line %d of %d", line.ErrIndexOutOfRange, index, len(d.lines))
	}
	return nil
}

// LineCount returns the number of lines.
func (d *Document[L]) LineCount() int {
	return len(d.lines)
}

// Clear removes every line.
func (d *Document[L]) Clear() {
	d.lines = []L{}
}

// Lines returns a copy of the line sequence. The lines themselves are shared.
func (d *Document[L]) Lines() []L {
	return slices.Clone(d.lines)
}

// All iterates over the lines with their indices.
func (d *Document[L]) All() iter.Seq2[int, L] {
	return func(yield func(int, L) bool) {
		for i, l := range d.lines {
			if !yield(i, l) {
				return
			}
		}
	}
}

// String joins every line's text with LineSeparator, without a trailing separator.
func (d *Document[L]) String() string {
	var b strings.Builder
	for i, l := range d.lines {
		if i > 0 {
			b.WriteString(LineSeparator)
		}
		b.WriteString(l.String())
	}
	return b.String()
}

// WriteTo writes the same text as String to w.
func (d *Document[L]) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, l := range d.lines {
		s := l.String()
		if i > 0 {
			s = LineSeparator + s
		}
		n, err := io.WriteString(w, s)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// isAbsent reports whether v is nil, including typed nil pointers.
func isAbsent[L any](v L) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
