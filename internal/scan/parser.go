package scan

import (
	"fmt"

	"github.com/JonMunkholm/flatfile/internal/document"
	"github.com/JonMunkholm/flatfile/internal/line"
)

// CSVDocument is a document of delimited lines.
type CSVDocument = document.Document[*line.Delimited]

// TextDocument is a document of plain lines.
type TextDocument = document.Document[*line.Line]

// Parser pairs scan options with the converter that builds its result.
type Parser[T any] struct {
	Options Options
	Convert Converter[T]
}

// Parse parses the file bound to fh.
func (p Parser[T]) Parse(fh *FileHandle[T]) (T, error) {
	return Parse(p.Options, fh, p.Convert)
}

// ParseFile binds path and parses it.
func (p Parser[T]) ParseFile(path string) (T, error) {
	fh, err := Bind[T](path)
	if err != nil {
		var zero T
		return zero, err
	}
	return p.Parse(fh)
}

// CSVParser returns a parser producing comma-delimited lines. A non-empty
// marker repairs fields escaped with it.
func CSVParser(opts Options, marker string) Parser[*CSVDocument] {
	return DelimitedParser(opts, line.Comma, marker, 0)
}

// DelimitedParser returns a parser producing lines split on delim, each
// carrying the expected column count (0 for none).
func DelimitedParser(opts Options, delim rune, marker string, expected int) Parser[*CSVDocument] {
	return Parser[*CSVDocument]{
		Options: opts,
		Convert: ToDelimited(delim, marker, expected),
	}
}

// TextParser returns a parser producing plain lines.
func TextParser(opts Options) Parser[*TextDocument] {
	return Parser[*TextDocument]{Options: opts, Convert: ToLines}
}

// StringParser returns a parser producing the normalized strings themselves.
func StringParser(opts Options) Parser[[]string] {
	return Parser[[]string]{Options: opts, Convert: ToStrings}
}

// ToDelimited returns a converter wrapping each line in a Delimited line.
// When marker is non-empty every line is repaired with CleanLine; a row with
// an unclosed escape fails the conversion.
func ToDelimited(delim rune, marker string, expected int) Converter[*CSVDocument] {
	return func(lines []string) (*CSVDocument, error) {
		doc := document.New[*line.Delimited]()
		for i, s := range lines {
			d := line.NewDelimited(s, delim)
			d.SetExpectedColumnCount(expected)
			if err := d.CleanLine(marker); err != nil {
				return nil, fmt.Errorf("record %d: %w", i+1, err)
			}
			doc.AddLine(d)
		}
		return doc, nil
	}
}

// ToLines wraps each line in a plain Line.
func ToLines(lines []string) (*TextDocument, error) {
	doc := document.New[*line.Line]()
	for _, s := range lines {
		doc.AddLine(line.New(s))
	}
	return doc, nil
}

// ToStrings returns the lines unchanged.
func ToStrings(lines []string) ([]string, error) {
	return lines, nil
}
