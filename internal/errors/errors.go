// Package errors defines stable error codes for nightwatch failure modes.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// CommitListFailed indicates the commit listing call failed
	CommitListFailed ErrorCode = "COMMIT_LIST_FAILED"
	// CommitDetailFailed indicates a per-commit detail call failed
	CommitDetailFailed ErrorCode = "COMMIT_DETAIL_FAILED"
	// ConfigInvalid indicates the configuration could not be loaded or validated
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// RulesInvalid indicates the scoring rules file could not be parsed
	RulesInvalid ErrorCode = "RULES_INVALID"
	// WatchlistInvalid indicates the watchlist file could not be parsed
	WatchlistInvalid ErrorCode = "WATCHLIST_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// AppError represents a nightwatch error with a stable code and message
type AppError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new AppError without an underlying cause
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates a new AppError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// CodeOf returns the error code of err if it is an AppError, or InternalError.
func CodeOf(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return InternalError
}
