package line

import "errors"

// Error kinds returned by line operations. Callers match them with errors.Is;
// returned errors wrap these with the offending index or value.
var (
	// ErrNullValue is returned when an absent value is supplied where content is mandatory.
	ErrNullValue = errors.New("null value")

	// ErrIndexOutOfRange is returned by structural mutations (set, remove) and by
	// document line access when the index is outside the current bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrMalformedColumn is returned when escape-merge repair cannot find a
	// matching open or close escape marker.
	ErrMalformedColumn = errors.New("malformed column")

	// ErrPattern is returned when an invalid regular expression is supplied.
	ErrPattern = errors.New("invalid pattern")
)
