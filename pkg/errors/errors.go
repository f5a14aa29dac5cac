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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Unit errors
	ErrInvalidUnit ErrorCode = "INVALID_UNIT"

	// Scope errors
	ErrInvalidScope ErrorCode = "INVALID_SCOPE"

	// Rule errors
	ErrRuleInvalid ErrorCode = "RULE_INVALID"

	// Codec errors
	ErrMalformedRuleLine ErrorCode = "MALFORMED_RULE_LINE"
	ErrEmptyResult       ErrorCode = "EMPTY_RESULT"
	ErrCodecIO           ErrorCode = "CODEC_IO"

	// Pivot errors
	ErrMatrixShape ErrorCode = "MATRIX_SHAPE"

	// Tabular errors
	ErrTabularImport ErrorCode = "TABULAR_IMPORT"
	ErrTabularExport ErrorCode = "TABULAR_EXPORT"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
	ErrConfigSave ErrorCode = "CONFIG_SAVE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
)

// RulegenError represents a structured error with code and details
type RulegenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RulegenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RulegenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RulegenError) Is(target error) bool {
	var targetErr *RulegenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RulegenError with the given code and message
func New(code ErrorCode, message string) *RulegenError {
	return &RulegenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RulegenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RulegenError {
	return &RulegenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RulegenError
func Wrap(err error, code ErrorCode, message string) *RulegenError {
	if err == nil {
		return nil
	}
	return &RulegenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RulegenError {
	if err == nil {
		return nil
	}
	return &RulegenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RulegenError) WithDetail(key string, value interface{}) *RulegenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rgErr *RulegenError
	if errors.As(err, &rgErr) {
		return rgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RulegenError
func GetErrorCode(err error) ErrorCode {
	var rgErr *RulegenError
	if errors.As(err, &rgErr) {
		return rgErr.Code
	}
	return ErrUnknown
}
