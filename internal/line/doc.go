// Package line provides the text line types that make up a parsed flat file.
//
// A [Line] owns one line of text. A [Delimited] line additionally splits its
// text into columns on a single delimiter character, lazily and only once
// until the text changes. CSV lines are Delimited lines with a comma.
//
// # Forgiving reads, strict writes
//
// Column reads never fail: [Delimited.Column] returns "" for an index outside
// the row, and the numeric accessors return a pgtype value with Valid=false for
// blank or unparsable input. Malformed rows are common in flat-file sources and
// must not abort a whole-file scan.
//
// Structural mutations are strict: [Delimited.SetColumn] and
// [Delimited.RemoveColumn] return [ErrIndexOutOfRange] for an index outside the
// row.
//
// # Escaped fields
//
// Some sources wrap a field that contains the delimiter in an escape marker
// instead of using CSV quoting:
//
//	a,"b,c",d
//
// A naive split produces four columns. [Delimited.MergeEscaped] fuses the
// shattered columns back into one and strips the marker, and
// [Delimited.CleanLine] repeats that for every escaped field in the row:
//
//	l := line.NewCSV(`a,"b,c",d`)
//	_ = l.CleanLine(`"`)
//	l.Columns() // [a b,c d]
package line
