// Package core provides the business logic for importing, editing and submitting
// base figures.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Unsupported file: Please upload a valid Excel file.
//	          Action: Choose an .xlsx or .xlsm workbook
//	          Patterns: "unsupported file type"
//
//	FILE002 - Unreadable file: Failed to read file. Please check the file format and content.
//	          Action: Open the file in Excel, save it again as .xlsx and retry
//	          Patterns: "failed to read file"
//
//	FILE003 - File too large: File exceeds the maximum upload size
//	          Action: Remove unused sheets or formatting and retry
//	          Patterns: "file too large"
//
//	FILE004 - No file: No file was selected
//	          Action: Please select a spreadsheet to upload
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The uploaded file is empty
//	          Action: Please upload a spreadsheet with a header row
//	          Patterns: "empty file"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid rows: The table contains invalid values
//	         Action: Fix the listed cells and try again
//	         Patterns: "validation failed"
//
//	VAL002 - Invalid market: Market is not one of the accepted codes
//	         Action: Pick a market from the list
//	         Patterns: "invalid market"
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - Row not found: The row is no longer in the table
//	         Action: Reload the page to see the current table
//	         Patterns: "row not found"
//
//	TBL002 - Invalid column: The column cannot be edited
//	         Action: Reload the page to see the current table
//	         Patterns: "invalid column"
//
// # Submission Errors (SUB001-SUB099)
//
//	SUB001 - Unauthorized: The list store rejected the credentials
//	         Action: Refresh the request digest or access token
//	         Patterns: "unauthorized", "forbidden"
//
//	SUB002 - Store unreachable: Unable to reach the list store
//	         Action: Please try again in a few moments
//	         Patterns: "connection refused", "no such host"
//
//	SUB003 - Submission failed: Some rows could not be submitted
//	         Action: Check the server log for the failing rows and resubmit
//	         Patterns: "submission failed"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled (pattern "context canceled")
//	REQ002 - Request timeout (patterns "context deadline exceeded", "timeout")
//	REQ003 - Rate limited (pattern "rate limit")
//	REQ004 - Decoder busy (pattern "too many spreadsheets")
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are listed first.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: the first match wins. Keep the package documentation in sync.
var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE005)
	// =========================================================================
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "Please upload a valid Excel file.",
			Action:  "Choose an .xlsx or .xlsm workbook",
			Code:    "FILE001",
		},
	},
	{
		pattern: "failed to read file",
		msg: UserMessage{
			Message: "Failed to read file. Please check the file format and content.",
			Action:  "Open the file in Excel, save it again as .xlsx and retry",
			Code:    "FILE002",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Remove unused sheets or formatting and retry",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a spreadsheet to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a spreadsheet with a header row",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL002)
	// =========================================================================
	{
		pattern: "validation failed",
		msg: UserMessage{
			Message: "The table contains invalid values",
			Action:  "Fix the listed cells and try again",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid market",
		msg: UserMessage{
			Message: "Market is not one of the accepted codes",
			Action:  "Pick a market from the list",
			Code:    "VAL002",
		},
	},

	// =========================================================================
	// Table Errors (TBL001-TBL002)
	// =========================================================================
	{
		pattern: "row not found",
		msg: UserMessage{
			Message: "The row is no longer in the table",
			Action:  "Reload the page to see the current table",
			Code:    "TBL001",
		},
	},
	{
		pattern: "invalid column",
		msg: UserMessage{
			Message: "The column cannot be edited",
			Action:  "Reload the page to see the current table",
			Code:    "TBL002",
		},
	},

	// =========================================================================
	// Submission Errors (SUB001-SUB003)
	// =========================================================================
	{
		pattern: "unauthorized",
		msg: UserMessage{
			Message: "The list store rejected the credentials",
			Action:  "Refresh the request digest or access token",
			Code:    "SUB001",
		},
	},
	{
		pattern: "forbidden",
		msg: UserMessage{
			Message: "The list store rejected the credentials",
			Action:  "Refresh the request digest or access token",
			Code:    "SUB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the list store",
			Action:  "Please try again in a few moments",
			Code:    "SUB002",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "Unable to reach the list store",
			Action:  "Please try again in a few moments",
			Code:    "SUB002",
		},
	},
	{
		pattern: "submission failed",
		msg: UserMessage{
			Message: "Some rows could not be submitted",
			Action:  "Check the server log for the failing rows and resubmit",
			Code:    "SUB003",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ004)
	// =========================================================================
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
		pattern: "too many spreadsheets",
		msg: UserMessage{
			Message: "The server is busy reading other files",
			Action:  "Please wait a moment and upload again",
			Code:    "REQ004",
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

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check application logs for the original technical error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or ERR000 when nothing matches.
//
// Example:
//
//	msg := MapError(fmt.Errorf("import: %w", ErrUnsupportedFile))
//	// msg.Code == "FILE001"
//	// msg.Message == "Please upload a valid Excel file."
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
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

// IsUserFacing reports whether err matches a known pattern rather than the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
