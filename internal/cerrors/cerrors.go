// Package cerrors defines stable error codes for CCS failure modes.
package cerrors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// UnsupportedLanguage indicates no parser is registered for a language or extension
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// ParseFailure indicates the grammar adapter could not produce a tree
	ParseFailure ErrorCode = "PARSE_FAILURE"
	// EngineUnavailable indicates the parsing engine could not be instantiated
	EngineUnavailable ErrorCode = "ENGINE_UNAVAILABLE"
	// InvalidArgument indicates a bad flag or parameter value
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// CacheUnavailable indicates the result cache could not be opened
	CacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	// NotARepository indicates a --git run outside a git work tree
	NotARepository ErrorCode = "NOT_A_REPOSITORY"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
}

// CcsError represents a CCS error with a stable code and message
type CcsError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new CcsError
func New(code ErrorCode, message string, cause error) *CcsError {
	return &CcsError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *CcsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CcsError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *CcsError) WithDetails(details interface{}) *CcsError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	UnsupportedLanguage: {
		{
			Command:     "ccs languages",
			Description: "List registered languages and extensions",
		},
	},
	CacheUnavailable: {
		{
			Command:     "ccs cache clear",
			Description: "Reset the result cache",
		},
	},
	NotARepository: {
		{
			Command:     "ccs analyze <dir>",
			Description: "Analyze as a plain directory instead of --git",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
