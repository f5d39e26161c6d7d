package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference.
//
// # Line errors (LINE001-LINE099)
//
//	LINE001 - Missing value: a required text value was absent
//	LINE002 - Index out of range: a line or column position does not exist
//	LINE003 - Malformed escaped field: an escape marker was opened but never closed
//	LINE004 - Invalid pattern: a replacement regular expression did not compile
//
// # File errors (FILE001-FILE099)
//
//	FILE001 - File not readable: missing, not a regular file, or failed mid-read
//	FILE002 - Line too long: a line exceeds the configured maximum length
//
// # Configuration errors (CFG001-CFG099)
//
//	CFG001 - Invalid options: scan or CSV settings failed validation
//
// # Run errors (RUN001-RUN099)
//
//	RUN001 - Cancelled: the run was cancelled or timed out before the file was parsed
//	RUN002 - Busy: no parse slot became free in time
//
// # Default (ERR000)
//
//	ERR000 - Unknown error: check the logs for the technical error
//
// Sentinel errors are matched first with errors.Is, most specific first.
// Anything else falls back to case-insensitive message patterns.

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/flatfile/internal/line"
	"github.com/JonMunkholm/flatfile/internal/scan"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorKind maps a sentinel error to its user message.
type errorKind struct {
	target error
	msg    UserMessage
}

// errorKinds is checked in order; the first errors.Is match wins.
var errorKinds = []errorKind{
	{
		target: bufio.ErrTooLong,
		msg: UserMessage{
			Message: "A line is longer than the allowed maximum",
			Action:  "Raise FLATFILE_MAX_LINE_LENGTH or check that the file is line-delimited text",
			Code:    "FILE002",
		},
	},
	{
		target: scan.ErrFileAccess,
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Check that the path exists, is a regular file, and is readable",
			Code:    "FILE001",
		},
	},
	{
		target: line.ErrMalformedColumn,
		msg: UserMessage{
			Message: "An escaped field was opened but never closed",
			Action:  "Check the escape marker setting or fix the quoting in the reported record",
			Code:    "LINE003",
		},
	},
	{
		target: line.ErrNullValue,
		msg: UserMessage{
			Message: "A required value was missing",
			Action:  "Supply a value; use an empty string for no content",
			Code:    "LINE001",
		},
	},
	{
		target: line.ErrIndexOutOfRange,
		msg: UserMessage{
			Message: "A line or column position does not exist",
			Action:  "Check the row's column count before editing it",
			Code:    "LINE002",
		},
	},
	{
		target: line.ErrPattern,
		msg: UserMessage{
			Message: "The replacement pattern is not a valid regular expression",
			Action:  "Fix the pattern syntax",
			Code:    "LINE004",
		},
	},
	{
		target: scan.ErrInvalidOptions,
		msg: UserMessage{
			Message: "The scan settings are invalid",
			Action:  "Review header/footer counts, delimiter, escape marker and encoding",
			Code:    "CFG001",
		},
	},
	{
		target: ErrTooManyParses,
		msg: UserMessage{
			Message: "Too many files are being parsed",
			Action:  "Lower the batch size or raise FLATFILE_MAX_CONCURRENT",
			Code:    "RUN002",
		},
	},
	{
		target: context.Canceled,
		msg: UserMessage{
			Message: "The run was cancelled",
			Action:  "Start a new run when ready",
			Code:    "RUN001",
		},
	},
	{
		target: context.DeadlineExceeded,
		msg: UserMessage{
			Message: "The run timed out",
			Action:  "Raise FLATFILE_TIMEOUT or parse fewer files per run",
			Code:    "RUN001",
		},
	},
}

// errorPattern maps a message fragment (case-insensitive) to a user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is the fallback for errors that lost their sentinel, such as
// messages carried across a JSON boundary. Order matters.
var errorPatterns = []errorPattern{
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Check that the path exists, is a regular file, and is readable",
			Code:    "FILE001",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Check the file permissions",
			Code:    "FILE001",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "The run timed out",
			Action:  "Raise FLATFILE_TIMEOUT or parse fewer files per run",
			Code:    "RUN001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logs for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError formats err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
