package scan

import (
	"fmt"
	"os"
	"strings"
)

// FileHandle binds a regular file to the result of parsing it.
// The path is validated once, at Bind. The result is replaced by every
// successful parse and left untouched by a failed one.
type FileHandle[T any] struct {
	path   string
	result T
	parsed bool
}

// Bind validates path and returns a handle for it.
// Returns ErrFileAccess if path is blank, does not exist, or is not a regular file.
func Bind[T any](path string) (*FileHandle[T], error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrFileAccess)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrFileAccess, path)
	}

	return &FileHandle[T]{path: path}, nil
}

// Path returns the bound path.
func (h *FileHandle[T]) Path() string {
	return h.path
}

// Result returns the last parse result and whether one exists.
func (h *FileHandle[T]) Result() (T, bool) {
	return h.result, h.parsed
}

func (h *FileHandle[T]) setResult(v T) {
	h.result = v
	h.parsed = true
}
