package scan

import "errors"

var (
	// ErrFileAccess is returned when the bound path does not exist, is not a
	// regular file, or cannot be read while scanning.
	ErrFileAccess = errors.New("file access")

	// ErrInvalidOptions is returned when scan options fail validation.
	ErrInvalidOptions = errors.New("invalid scan options")
)
