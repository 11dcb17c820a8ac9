package core

// error_messages.go maps technical errors to user-friendly messages with
// codes for support reference.
//
// # Schema Errors (CFG001-CFG099)
//
//	CFG001 - Unknown field: A column refers to a field rows do not have
//	         Patterns: "unknown field"
//	CFG002 - Duplicate field: Two columns refer to the same field
//	         Patterns: "duplicate field"
//	CFG003 - Invalid column: A column descriptor is malformed
//	         Patterns: "invalid column"
//
// # View Errors (VIEW001-VIEW099)
//
//	VIEW001 - View expired: The view session no longer exists
//	          Patterns: "view not found"
//	VIEW002 - Unknown layout: No table layout has this name
//	          Patterns: "layout not found"
//
// # Column Errors (COL001-COL099)
//
//	COL001 - Column not found    Patterns: "column not found"
//	COL002 - Not filterable      Patterns: "column not filterable"
//	COL003 - Not sortable        Patterns: "column not sortable"
//
// # Seed Errors (SEED001-SEED099)
//
//	SEED001 - Invalid row: Seed data does not fit the row shape
//	          Patterns: "invalid row"
//
// # Request Errors (REQ001-REQ099, RATE001)
//
//	REQ001 - Request cancelled    Patterns: "context canceled"
//	REQ002 - Request timed out    Patterns: "context deadline exceeded"
//	RATE001 - Too many requests   Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the application logs for the
// original technical error.
//
// Errors wrapping a known sentinel map by errors.Is first, since wrapped
// messages can carry ids and field names taken from the request. Anything
// else is matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns come before general ones.

import (
	"context"
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

type errorPattern struct {
	sentinel error
	pattern  string
	msg      UserMessage
}

var errorPatterns = []errorPattern{
	// Schema
	{
		sentinel: ErrUnknownField,
		pattern:  "unknown field",
		msg: UserMessage{
			Message: "A column refers to a field the rows do not have",
			Action:  "Check the column configuration",
			Code:    "CFG001",
		},
	},
	{
		sentinel: ErrDuplicateField,
		pattern:  "duplicate field",
		msg: UserMessage{
			Message: "Two columns refer to the same field",
			Action:  "Remove the duplicate column",
			Code:    "CFG002",
		},
	},
	{
		sentinel: ErrInvalidColumn,
		pattern:  "invalid column",
		msg: UserMessage{
			Message: "A column is not configured correctly",
			Action:  "Check the column configuration",
			Code:    "CFG003",
		},
	},

	// Views
	{
		sentinel: ErrViewNotFound,
		pattern:  "view not found",
		msg: UserMessage{
			Message: "This view has expired",
			Action:  "Reload the page to start a new view",
			Code:    "VIEW001",
		},
	},
	{
		sentinel: ErrLayoutNotFound,
		pattern:  "layout not found",
		msg: UserMessage{
			Message: "Table not found",
			Action:  "Pick a table from the list",
			Code:    "VIEW002",
		},
	},

	// Columns
	{
		sentinel: ErrColumnNotFound,
		pattern:  "column not found",
		msg: UserMessage{
			Message: "Column not found",
			Action:  "Reload the page and try again",
			Code:    "COL001",
		},
	},
	{
		sentinel: ErrNotFilterable,
		pattern:  "column not filterable",
		msg: UserMessage{
			Message: "This column cannot be filtered",
			Action:  "Filter on another column",
			Code:    "COL002",
		},
	},
	{
		sentinel: ErrNotSortable,
		pattern:  "column not sortable",
		msg: UserMessage{
			Message: "This column cannot be sorted",
			Action:  "Sort on another column",
			Code:    "COL003",
		},
	},

	// Seed
	{
		sentinel: ErrInvalidRow,
		pattern:  "invalid row",
		msg: UserMessage{
			Message: "Seed data does not match the product shape",
			Action:  "Check the seed query returns id, name, price and date",
			Code:    "SEED001",
		},
	},

	// Requests
	{
		sentinel: context.Canceled,
		pattern:  "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		sentinel: context.DeadlineExceeded,
		pattern:  "context deadline exceeded",
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
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, ep := range errorPatterns {
		if ep.sentinel != nil && errors.Is(err, ep.sentinel) {
			return ep.msg
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

// IsUserFacing reports whether an error matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
