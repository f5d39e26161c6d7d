// Package scan reads flat files into documents.
//
// A file is bound once with [Bind], which checks that it exists and is a
// regular file. [Parse] then runs the pipeline:
//
//  1. open the file and decode it to UTF-8 (BOM aware, see [Options.Encoding])
//  2. read it line by line, trimming whitespace and dropping blank lines as configured
//  3. drop [Options.HeaderLines] and [Options.FooterLines] from what remains
//  4. apply the [Options.Unescape] hook to every line
//  5. hand the lines to a [Converter], which builds the result
//
// The converter is the only part that differs between parsers:
//
//	p := scan.CSVParser(scan.DefaultOptions(), `"`)
//	doc, err := p.ParseFile("accounts.csv")
//	if err != nil {
//	    return err
//	}
//	for i, row := range doc.All() {
//	    fmt.Println(i, row.Column(0), row.ColumnAsDecimal(3))
//	}
//
// Parsing is synchronous. The file is open only while it is scanned and is
// closed on every exit path. Independent files can be parsed concurrently
// with independent handles; nothing is shared between parses.
package scan
