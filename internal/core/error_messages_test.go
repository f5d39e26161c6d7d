package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/flatfile/internal/line"
	"github.com/JonMunkholm/flatfile/internal/scan"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"null value", fmt.Errorf("set text: %w", line.ErrNullValue), "LINE001"},
		{"index out of range", fmt.Errorf("column 9: %w", line.ErrIndexOutOfRange), "LINE002"},
		{"malformed escape", fmt.Errorf("a.csv: record 3: %w", line.ErrMalformedColumn), "LINE003"},
		{"bad pattern", fmt.Errorf("%w: missing )", line.ErrPattern), "LINE004"},
		{"file access", fmt.Errorf("%w: empty path", scan.ErrFileAccess), "FILE001"},
		{"line too long wins over file access", fmt.Errorf("%w: reading a.csv: %w", scan.ErrFileAccess, bufio.ErrTooLong), "FILE002"},
		{"invalid options", fmt.Errorf("%w: header lines (-1) must be non-negative", scan.ErrInvalidOptions), "CFG001"},
		{"cancelled", fmt.Errorf("a.csv: %w", context.Canceled), "RUN001"},
		{"timed out", context.DeadlineExceeded, "RUN001"},
		{"busy", ErrTooManyParses, "RUN002"},
		{"message fallback", errors.New("open /x.csv: no such file or directory"), "FILE001"},
		{"case insensitive fallback", errors.New("PERMISSION DENIED"), "FILE001"},
		{"unknown error returns default", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("MapError() returned empty message")
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(fmt.Errorf("record 2: %w", line.ErrMalformedColumn))

	expected := "An escaped field was opened but never closed (Code: LINE003). Check the escape marker setting or fix the quoting in the reported record"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", scan.ErrInvalidOptions, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := fmt.Errorf("b.csv: %w", scan.ErrFileAccess)
		userErr := NewUserError(techErr)

		if userErr.Error() != "The file could not be read" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if userErr.User.Code != "FILE001" {
			t.Errorf("Code = %q, want FILE001", userErr.User.Code)
		}
		if !errors.Is(userErr, scan.ErrFileAccess) {
			t.Error("UserError should unwrap to the sentinel")
		}
	})
}
