package scan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Converter builds the final result from the normalized lines of a file.
type Converter[T any] func(lines []string) (T, error)

// Parse reads the file bound to fh and converts it with convert.
//
// Each raw line is trimmed as configured; blank lines are then dropped if
// RemoveBlankLines is set. HeaderLines and FooterLines are removed from the
// filtered lines, so blank lines never count toward them. If they cover
// every line the result is built from no lines. The Unescape hook runs on
// each remaining line before conversion.
//
// On success the result is stored in fh, replacing any previous one. On
// failure fh is left unchanged. Read failures wrap ErrFileAccess.
func Parse[T any](opts Options, fh *FileHandle[T], convert Converter[T]) (T, error) {
	var zero T
	if fh == nil {
		return zero, fmt.Errorf("%w: nil file handle", ErrFileAccess)
	}
	if err := opts.Validate(); err != nil {
		return zero, err
	}

	f, err := os.Open(fh.path)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close()

	result, err := parse(opts, f, fh.path, convert)
	if err != nil {
		return zero, err
	}

	fh.setResult(result)
	return result, nil
}

// ParseReader runs the same pipeline as Parse over r. name labels diagnostics.
func ParseReader[T any](opts Options, r io.Reader, name string, convert Converter[T]) (T, error) {
	var zero T
	if err := opts.Validate(); err != nil {
		return zero, err
	}
	return parse(opts, r, name, convert)
}

func parse[T any](opts Options, r io.Reader, name string, convert Converter[T]) (T, error) {
	var zero T

	lines, stats, err := readLines(opts, r)
	if err != nil {
		return zero, fmt.Errorf("%w: reading %s: %w", ErrFileAccess, name, err)
	}

	kept := trimHeaderFooter(lines, opts.HeaderLines, opts.FooterLines)

	for i, s := range kept {
		out, err := opts.unescape(s)
		if err != nil {
			return zero, fmt.Errorf("%s: record %d: %w", name, i+1, err)
		}
		kept[i] = out
	}

	opts.logger().Debug("file scanned",
		"file", name,
		"bytes", stats.bytes,
		"lines_read", stats.read,
		"blank_dropped", stats.blank,
		"header_footer_dropped", len(lines)-len(kept),
		"lines_kept", len(kept),
	)

	result, err := convert(kept)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	return result, nil
}

type scanStats struct {
	bytes int64
	read  int
	blank int
}

// readLines scans r line by line, applying whitespace and blank-line
// normalization. LF and CRLF line endings are accepted.
func readLines(opts Options, r io.Reader) ([]string, scanStats, error) {
	var stats scanStats

	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, stats, err
	}

	counter := &countingReader{r: r}
	sc := bufio.NewScanner(decodeInput(counter, enc))

	// The scanner's limit includes the terminator, so leave room for CRLF
	// and check the line itself below.
	maxLen := opts.maxLineLength()
	sc.Buffer(make([]byte, 0, min(64*1024, maxLen+2)), maxLen+2)

	lines := []string{}
	for sc.Scan() {
		stats.read++
		if len(sc.Bytes()) > maxLen {
			stats.bytes = counter.n
			return nil, stats, fmt.Errorf("line %d exceeds %d bytes: %w", stats.read, maxLen, bufio.ErrTooLong)
		}
		s := normalize(sc.Text(), opts)
		if opts.RemoveBlankLines && isBlank(s) {
			stats.blank++
			continue
		}
		lines = append(lines, s)
	}
	stats.bytes = counter.n

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, stats, fmt.Errorf("line %d exceeds %d bytes: %w", stats.read+1, maxLen, err)
		}
		return nil, stats, err
	}
	return lines, stats, nil
}

func normalize(s string, opts Options) string {
	if opts.TrimLeading {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
	}
	if opts.TrimTrailing {
		s = strings.TrimRightFunc(s, unicode.IsSpace)
	}
	return s
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// trimHeaderFooter drops header lines from the front and footer lines from
// the back. Counts larger than what remains clamp to an empty result.
func trimHeaderFooter(lines []string, header, footer int) []string {
	if header+footer >= len(lines) {
		return []string{}
	}
	return lines[header : len(lines)-footer]
}
