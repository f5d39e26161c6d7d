// Package core runs flat-file ingestion on top of the scan package.
//
// It holds the pieces that sit between a configuration and a parsed
// document, independent of any transport. The CLI uses it directly; an HTTP
// handler could do the same.
//
// # Runs
//
// Every call belongs to a run identified by a UUID carried in the context
// (see logging.WithRunID). [Service.ParseFiles] parses a batch in parallel
// under one run id, bounded by a [ParseLimiter]:
//
//	svc, _ := core.NewService(cfg)
//	batch := svc.ParseFiles(ctx, []string{"a.csv", "b.csv"})
//	for _, f := range batch.Files {
//	    if !f.OK() {
//	        fmt.Println(f.Path, core.FormatUserError(f.Err()))
//	    }
//	}
//
// # Inspection
//
// Each parsed file gets a [Summary]: rows per column count, rows that break
// the column-count contract, and typed-column failures from a [RowValidator].
// Column specs come from the csv.columns list of a YAML profile.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - LINE001-LINE004: Line errors (missing value, index, escape, pattern)
//   - FILE001-FILE002: File errors (access, line length)
//   - CFG001: Configuration errors
//   - RUN001-RUN002: Run errors (cancelled or timed out, busy)
package core
