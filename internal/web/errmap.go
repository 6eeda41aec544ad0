package web

// errmap.go maps technical errors to user-facing messages with support codes.
//
// # Error Codes Reference
//
// # Record Errors (REC001-REC099)
//
//	REC001 - Not found: The record no longer exists
//	         Action: Refresh the table and try again
//	         Patterns: "record not found"
//
//	REC002 - Invalid status: The requested status is not allowed
//	         Action: Choose one of the listed statuses
//	         Patterns: "invalid status"
//
//	REC003 - Action unavailable: This action is not available for the row
//	         Action: Refresh the table to see the current actions
//	         Patterns: "action unavailable", "unknown action"
//
//	REC004 - Button unavailable: This button does nothing
//	         Action: Refresh the page
//	         Patterns: "button unavailable"
//
//	REC005 - Invalid ID: The record link is malformed
//	         Action: Open the record from its table
//	         Patterns: "invalid id"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid date: Invalid date format detected
//	VAL002 - Required field: Required field is empty
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key: A record with this ID already exists
//	DB003 - Foreign key: Referenced record does not exist
//	DB004 - Connection refused: Unable to connect to database
//	DB005 - Connection reset: Database connection was interrupted
//	DB006 - Timeout: Operation timed out
//	DB007 - Deadlock: Database was busy with conflicting operations
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled: "context canceled"
//	REQ002 - Request timeout: "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Rate limited: Too many requests
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the logs for the technical error,
// correlated by request_id.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"net/http"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Record errors
	{
		pattern: "record not found",
		msg: UserMessage{
			Message: "The record no longer exists",
			Action:  "Refresh the table and try again",
			Code:    "REC001",
		},
	},
	{
		pattern: "invalid status",
		msg: UserMessage{
			Message: "The requested status is not allowed",
			Action:  "Choose one of the listed statuses",
			Code:    "REC002",
		},
	},
	{
		pattern: "action unavailable",
		msg: UserMessage{
			Message: "This action is not available for the selected row",
			Action:  "Refresh the table to see the current actions",
			Code:    "REC003",
		},
	},
	{
		pattern: "unknown action",
		msg: UserMessage{
			Message: "This action is not available for the selected row",
			Action:  "Refresh the table to see the current actions",
			Code:    "REC003",
		},
	},
	{
		pattern: "button unavailable",
		msg: UserMessage{
			Message: "This button is not available",
			Action:  "Refresh the page",
			Code:    "REC004",
		},
	},
	{
		pattern: "invalid id",
		msg: UserMessage{
			Message: "The record link is malformed",
			Action:  "Open the record from its table",
			Code:    "REC005",
		},
	},

	// Validation errors
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use the YYYY-MM-DD format",
			Code:    "VAL001",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Fill in every field of the form",
			Code:    "VAL002",
		},
	},

	// Database errors
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Refresh the table before retrying",
			Code:    "DB001",
		},
	},
	{
		pattern: "violates foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Choose a service from the list",
			Code:    "DB003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},

	// Request errors
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
			Action:  "Narrow the date range or try again later",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. Unknown
// errors map to ERR000.
//
//	msg := MapError(fmt.Errorf("get patient 42: %w", store.ErrNotFound))
//	// msg.Code == "REC001"
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

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// StatusFor picks the HTTP status for a mapped error.
func StatusFor(msg UserMessage) int {
	switch {
	case msg.Code == "REC001":
		return http.StatusNotFound
	case strings.HasPrefix(msg.Code, "REC"), strings.HasPrefix(msg.Code, "VAL"):
		return http.StatusBadRequest
	case msg.Code == "DB001", msg.Code == "DB003":
		return http.StatusConflict
	case msg.Code == "RATE001":
		return http.StatusTooManyRequests
	case msg.Code == "REQ002", msg.Code == "DB006":
		return http.StatusGatewayTimeout
	case msg.Code == "DB004", msg.Code == "DB005":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
