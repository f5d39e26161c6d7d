package scan

// input.go prepares a raw file stream for line scanning.
//
// The chain, outermost first:
//
//   - countingReader: tracks bytes read from disk for diagnostics
//   - BOM override: strips a UTF-8/UTF-16 byte order mark and switches to the
//     encoding it announces
//   - charset decoder: converts the configured encoding to UTF-8; invalid
//     sequences become U+FFFD instead of failing the scan

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// lookupEncoding resolves an IANA charset name. "" and UTF-8 aliases
// resolve to UTF-8.
func lookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// decodeInput wraps r so that reads yield valid UTF-8 text.
func decodeInput(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
}
