package scan

import (
	"fmt"
	"log/slog"
	"strings"
)

// DefaultMaxLineLength is the longest line a scan accepts (1MB).
const DefaultMaxLineLength = 1024 * 1024

// Options configures one parse. The zero value keeps blank lines and
// whitespace; use DefaultOptions for the usual normalization.
type Options struct {
	// HeaderLines is the number of leading lines to drop, counted after
	// blank-line removal.
	HeaderLines int

	// FooterLines is the number of trailing lines to drop, counted after
	// blank-line removal.
	FooterLines int

	// RemoveBlankLines discards lines that are empty or whitespace only.
	RemoveBlankLines bool

	// TrimLeading strips leading whitespace from every line.
	TrimLeading bool

	// TrimTrailing strips trailing whitespace from every line.
	TrimTrailing bool

	// Encoding is the IANA charset name of the input ("" means UTF-8).
	Encoding string

	// MaxLineLength bounds a single line in bytes, excluding its terminator
	// (0 means DefaultMaxLineLength).
	MaxLineLength int

	// Unescape is applied to every kept line before conversion (nil means identity).
	Unescape func(string) (string, error)

	// Logger receives scan diagnostics (nil means slog.Default()).
	Logger *slog.Logger
}

// DefaultOptions returns options that skip no header or footer, remove blank
// lines and trim whitespace at both ends.
func DefaultOptions() Options {
	return Options{
		RemoveBlankLines: true,
		TrimLeading:      true,
		TrimTrailing:     true,
	}
}

// Validate checks the options and describes every failure.
func (o Options) Validate() error {
	var errs []string

	if o.HeaderLines < 0 {
		errs = append(errs, fmt.Sprintf("header lines (%d) must be non-negative", o.HeaderLines))
	}
	if o.FooterLines < 0 {
		errs = append(errs, fmt.Sprintf("footer lines (%d) must be non-negative", o.FooterLines))
	}
	if o.MaxLineLength < 0 {
		errs = append(errs, fmt.Sprintf("max line length (%d) must be non-negative", o.MaxLineLength))
	}
	if _, err := lookupEncoding(o.Encoding); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(errs, "; "))
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) maxLineLength() int {
	if o.MaxLineLength > 0 {
		return o.MaxLineLength
	}
	return DefaultMaxLineLength
}

func (o Options) unescape(s string) (string, error) {
	if o.Unescape == nil {
		return s, nil
	}
	return o.Unescape(s)
}
