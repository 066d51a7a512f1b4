package core

// error_messages.go maps errors to user-facing messages with support codes.
//
// # Error Codes Reference
//
// Codes are grouped by category. Domain sentinels are matched with errors.Is
// before any text pattern is tried.
//
// # Record Errors (PER001-PER099)
//
//	PER001 - Not found: The person or country no longer exists
//	PER002 - Duplicate: A record with this name already exists
//	PER003 - Null request: No data was submitted
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid field: the message of the failed rule is shown as is
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - No file: No file was selected
//	FILE002 - Unsupported file: The upload is not an xlsx workbook
//	FILE003 - Missing sheet: The workbook has no worksheet with the expected name
//	FILE004 - File too large: The upload exceeds the size limit
//	FILE005 - Busy: Too many imports are running at once
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Unique constraint: "duplicate key", "unique constraint"
//	DB002 - Foreign key: "foreign key constraint", "violates foreign key"
//	DB003 - Connection refused: "connection refused"
//	DB004 - Busy: "database is locked", "deadlock"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Cancelled: "context canceled"
//	REQ002 - Timeout: "context deadline exceeded", "timeout"
//	REQ003 - Rate limited: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the application log for the
// technical error when a user reports ERR000.

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

// sentinelMessages are checked in order with errors.Is.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrNotFound, UserMessage{
		Message: "The requested record no longer exists",
		Action:  "Return to the list and refresh",
		Code:    "PER001",
	}},
	{ErrDuplicate, UserMessage{
		Message: "A record with this name already exists",
		Action:  "Choose a different name",
		Code:    "PER002",
	}},
	{ErrNullRequest, UserMessage{
		Message: "No data was submitted",
		Action:  "Fill in the form and try again",
		Code:    "PER003",
	}},
	{ErrNoFile, UserMessage{
		Message: "No file was selected",
		Action:  "Please select an Excel file",
		Code:    "FILE001",
	}},
	{ErrUnsupportedFile, UserMessage{
		Message: "Unsupported file, it must be an xlsx file",
		Action:  "Save the workbook as .xlsx and upload it again",
		Code:    "FILE002",
	}},
	{ErrSheetNotFound, UserMessage{
		Message: "The workbook has no countries worksheet",
		Action:  "Rename the sheet holding the country names",
		Code:    "FILE003",
	}},
	{ErrTooManyImports, UserMessage{
		Message: "Another import is still running",
		Action:  "Wait a moment and upload again",
		Code:    "FILE005",
	}},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// The first matching pattern wins, so specific patterns come first.
var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the workbook into smaller files",
			Code:    "FILE004",
		},
	},

	// Database
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Choose a different value",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Choose a different value",
			Code:    "DB001",
		},
	},
	{
		pattern: "foreign key constraint",
		msg: UserMessage{
			Message: "Referenced country does not exist",
			Action:  "Select a country from the list",
			Code:    "DB002",
		},
	},
	{
		pattern: "violates foreign key",
		msg: UserMessage{
			Message: "Referenced country does not exist",
			Action:  "Select a country from the list",
			Code:    "DB002",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB003",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB004",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB004",
		},
	},

	// Request
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "REQ003",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
//
// Validation failures keep their own message under VAL001. Domain sentinels
// are matched next, then text patterns. Unmatched errors get ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return UserMessage{
			Message: ve.Message,
			Action:  "Correct the highlighted field",
			Code:    "VAL001",
		}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
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

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
