package line

import (
	"fmt"
	"slices"
	"strings"
)

// escape.go repairs fields that a source wrapped in an escape marker instead
// of quoting them properly, so that a plain split on the delimiter shattered
// one field into several columns.

// IndexOfEscaped returns the index of the first column at or after from that
// starts with marker, or -1.
func (d *Delimited) IndexOfEscaped(marker string, from int) int {
	d.parse()
	if marker == "" {
		return -1
	}
	if from < 0 {
		from = 0
	}
	for i := from; i < len(d.columns); i++ {
		if strings.HasPrefix(d.columns[i], marker) {
			return i
		}
	}
	return -1
}

// MergeEscaped repairs the escaped field that starts at column start.
//
// The column at start must begin with marker. If it also ends with marker
// the field was not split: the marker is stripped from both ends. Otherwise
// the columns from start up to the first later column ending with marker are
// fused back into one, with the delimiter restored between them and the
// marker stripped from both ends. Later columns shift left accordingly.
//
// The unescaped value is returned and now occupies index start.
// ErrMalformedColumn is returned if the field is not opened at start or is
// never closed.
func (d *Delimited) MergeEscaped(start int, marker string) (string, error) {
	d.parse()
	if marker == "" {
		return "", fmt.Errorf("%w: empty escape marker", ErrMalformedColumn)
	}

	first := d.Column(start)
	if start < 0 || start >= len(d.columns) || !strings.HasPrefix(first, marker) {
		return "", fmt.Errorf("%w: column %d does not start with %q", ErrMalformedColumn, start, marker)
	}

	// A lone marker is an opener, not an opened-and-closed field.
	if len(first) >= 2*len(marker) && strings.HasSuffix(first, marker) {
		value := first[len(marker) : len(first)-len(marker)]
		d.columns[start] = value
		d.state = modified
		return value, nil
	}

	end := -1
	for j := start + 1; j < len(d.columns); j++ {
		if strings.HasSuffix(d.columns[j], marker) {
			end = j
			break
		}
	}
	if end < 0 {
		return "", fmt.Errorf("%w: escape %q opened at column %d is never closed", ErrMalformedColumn, marker, start)
	}

	parts := make([]string, 0, end-start+1)
	parts = append(parts, strings.TrimPrefix(first, marker))
	parts = append(parts, d.columns[start+1:end]...)
	last := d.columns[end]
	parts = append(parts, last[:len(last)-len(marker)])

	value := strings.Join(parts, string(d.delim))
	d.columns[start] = value
	d.columns = slices.Delete(d.columns, start+1, end+1)
	d.state = modified
	return value, nil
}

// CleanLine repairs every escaped field in the row, left to right.
// A repaired value is not scanned again, so a field whose content itself
// starts with marker is left as is.
//
// The repair is all or nothing: if any field is never closed the row is
// restored to its state before the call and ErrMalformedColumn is returned.
func (d *Delimited) CleanLine(marker string) error {
	if marker == "" {
		return nil
	}

	d.parse()
	saved, savedState := slices.Clone(d.columns), d.state

	for cursor := 0; ; {
		i := d.IndexOfEscaped(marker, cursor)
		if i < 0 {
			return nil
		}
		if _, err := d.MergeEscaped(i, marker); err != nil {
			d.columns, d.state = saved, savedState
			return err
		}
		cursor = i + 1
	}
}
