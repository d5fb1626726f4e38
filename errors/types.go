package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Module evaluation outcomes. None of these ever reach the user; they
	// collapse to "no module" inside the render pipeline.
	ErrCodeNoMatch         ErrorCode = "NO_MATCH"
	ErrCodeToolUnavailable ErrorCode = "TOOL_UNAVAILABLE"
	ErrCodeMalformedOutput ErrorCode = "MALFORMED_OUTPUT"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Command execution errors
	ErrCodeCommandTimeout  ErrorCode = "COMMAND_TIMEOUT"
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"

	// General errors
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeUnknownModule ErrorCode = "UNKNOWN_MODULE"
)

// PromptError represents a structured error with context
type PromptError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *PromptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PromptError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *PromptError) WithDetail(key string, value interface{}) *PromptError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *PromptError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new PromptError
func New(code ErrorCode, message string) *PromptError {
	return &PromptError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PromptError
func Wrap(err error, code ErrorCode, message string) *PromptError {
	return &PromptError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific PromptError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the outermost error code from an error chain
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	promptErr, ok := err.(*PromptError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return promptErr.Code
}
