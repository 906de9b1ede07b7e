package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed wraps every ValidationError.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNoLayout is returned when no layout path is configured.
	ErrNoLayout = errors.New("no layout file configured")
)

// ValidationError describes an invalid setting or layout entry.
type ValidationError struct {
	// Path locates the value, e.g. "logging.level" or "groups[0].buttons[1].value".
	Path string
	// Message describes the problem.
	Message string
	// Value is the invalid value.
	Value any
	// Code categorizes the error.
	Code ValidationErrorCode
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is reports ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode uint8

const (
	// ErrCodeInvalidEnum indicates the value is not one of the allowed values.
	ErrCodeInvalidEnum ValidationErrorCode = iota
	// ErrCodeOutOfRange indicates a numeric value is out of range.
	ErrCodeOutOfRange
	// ErrCodeDuplicate indicates a value that must be unique is repeated.
	ErrCodeDuplicate
	// ErrCodeConflict indicates two settings that cannot be combined.
	ErrCodeConflict
	// ErrCodeRequiredMissing indicates a required value is missing.
	ErrCodeRequiredMissing
)

// String returns a human-readable name for the error code.
func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	case ErrCodeOutOfRange:
		return "out_of_range"
	case ErrCodeDuplicate:
		return "duplicate"
	case ErrCodeConflict:
		return "conflict"
	case ErrCodeRequiredMissing:
		return "required_missing"
	default:
		return "unknown"
	}
}
