package line

// convert.go turns raw column strings into typed, nullable values.
//
// Every function returns a pgtype value with Valid=false for blank or
// unparsable input instead of an error, so one bad cell never aborts a scan.

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// decimalRegex validates a plain decimal string before it reaches pgtype.
// Exponents are rejected; pgtype.Numeric does not scan them from text.
var decimalRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// toInt4 converts a column value to pgtype.Int4.
// Surrounding whitespace is ignored. Values outside the int32 range are invalid.
func toInt4(s string) pgtype.Int4 {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Int4{Valid: false}
	}

	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(i), Valid: true}
}

// toNumeric converts a column value to pgtype.Numeric.
// Surrounding whitespace is ignored. Thousands separators and currency
// symbols are not stripped: "1,000" is not a decimal.
func toNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	if !decimalRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}

	return n
}

// textOrEmpty returns t's string, or "" when t is not valid.
func textOrEmpty(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
