package core

// error_messages.go maps technical errors to messages a store clerk can act
// on. Codes let staff find the original log line.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Import failed: the file could not be read or decoded
//	          Action: Verify the file format and encoding, then retry
//	          Match: errors.Is(err, ErrImportFailed)
//
//	FILE002 - File too large: request body exceeds the configured limit
//	          Patterns: "request body too large", "file too large"
//
//	FILE003 - No file: no file was attached
//	          Patterns: "no file provided", "no such file"
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - System busy: all import slots are in use
//	         Patterns: "too many concurrent imports"
//
//	IMP002 - Request cancelled
//	         Patterns: "context canceled"
//
//	IMP003 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Unknown item: stock was sent for an id not in the catalog
//	         Patterns: "unknown item"
//
//	VAL002 - Invalid stock: stock payload could not be read
//	         Patterns: "invalid stock"
//
// # Store Errors (DB001-DB099)
//
//	DB001 - Connection refused
//	DB002 - Connection reset
//	DB003 - Timeout
//	DB004 - Database locked (SQLite busy)
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error; check the application log.
//
// Matching is a case-insensitive substring test.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// Messages shared by several patterns.
var (
	importFailedMessage = UserMessage{
		Message: ErrImportFailed.Error(),
		Action:  "Check the CSV format and encoding (UTF-8 or Shift-JIS), then import again",
		Code:    "FILE001",
	}
	tooLargeMessage = UserMessage{"File exceeds the maximum upload size", "Export a shorter period or remove unused columns", "FILE002"}
	noFileMessage   = UserMessage{"No file was selected", "Please select a CSV file to import", "FILE003"}
	defaultMessage  = UserMessage{"An unexpected error occurred", "Please try again or contact support", "ERR000"}
)

// errorRules is scanned in order; the first rule with a matching substring wins.
var errorRules = []struct {
	match []string
	msg   UserMessage
}{
	{[]string{"request body too large", "file too large"}, tooLargeMessage},
	{[]string{"no file provided", "no such file"}, noFileMessage},

	{[]string{"too many concurrent imports"}, UserMessage{"System is busy processing other imports", "Please wait a moment and try again", "IMP001"}},
	{[]string{"context canceled"}, UserMessage{"Request was cancelled", "Please try again", "IMP002"}},
	{[]string{"context deadline exceeded"}, UserMessage{"Request timed out", "Try again or check your connection", "IMP003"}},

	{[]string{"unknown item"}, UserMessage{"Stock was sent for an item that is not on the sheet", "Reload the page to get the current item list", "VAL001"}},
	{[]string{"invalid stock"}, UserMessage{"Stock values could not be read", "Enter whole numbers only", "VAL002"}},

	{[]string{"connection refused"}, UserMessage{"Unable to connect to the state store", "Please try again in a few moments", "DB001"}},
	{[]string{"connection reset"}, UserMessage{"State store connection was interrupted", "Please try again", "DB002"}},
	{[]string{"timeout"}, UserMessage{"Operation timed out", "Please try again later", "DB003"}},
	{[]string{"database is locked", "sqlite_busy"}, UserMessage{"State store is busy", "Please try again", "DB004"}},

	{[]string{"rate limit"}, UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
}

// MapError converts a technical error to a user-friendly message. Anything
// wrapping ErrImportFailed maps to FILE001 regardless of its cause, so a
// failed import never points at a partial row.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	if errors.Is(err, ErrImportFailed) {
		return importFailedMessage
	}

	text := strings.ToLower(err.Error())
	for _, rule := range errorRules {
		for _, m := range rule.match {
			if strings.Contains(text, m) {
				return rule.msg
			}
		}
	}
	return defaultMessage
}

// FormatUserError returns "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError carries a user message while keeping the technical cause for
// errors.Is and logging.
type UserError struct {
	UserMessage
	Err error
}

// NewUserError wraps err with its mapped message. A nil err gives nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{UserMessage: MapError(err), Err: err}
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }
