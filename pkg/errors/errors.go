package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Matching errors
	ErrEmptyPattern      ErrorCode = "EMPTY_PATTERN"
	ErrNoCallback        ErrorCode = "NO_CALLBACK"
	ErrResourceExhausted ErrorCode = "RESOURCE_EXHAUSTED"
	ErrEnumeration       ErrorCode = "ENUMERATION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// PathmatchError represents a structured error with code and details
type PathmatchError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PathmatchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PathmatchError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PathmatchError) Is(target error) bool {
	var targetErr *PathmatchError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PathmatchError with the given code and message
func New(code ErrorCode, message string) *PathmatchError {
	return &PathmatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PathmatchError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PathmatchError {
	return &PathmatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PathmatchError
func Wrap(err error, code ErrorCode, message string) *PathmatchError {
	if err == nil {
		return nil
	}
	return &PathmatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PathmatchError {
	if err == nil {
		return nil
	}
	return &PathmatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PathmatchError) WithDetail(key string, value interface{}) *PathmatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pmErr *PathmatchError
	if errors.As(err, &pmErr) {
		return pmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PathmatchError
func GetErrorCode(err error) ErrorCode {
	var pmErr *PathmatchError
	if errors.As(err, &pmErr) {
		return pmErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PathmatchError
func GetErrorDetails(err error) map[string]interface{} {
	var pmErr *PathmatchError
	if errors.As(err, &pmErr) {
		return pmErr.Details
	}
	return nil
}
