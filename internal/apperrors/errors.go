package apperrors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeValidation indicates a payload or input that failed schema validation.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnavailable indicates the backend could not be reached.
	ErrCodeUnavailable ErrorCode = "unavailable"
	// ErrCodeUnauthorized indicates a missing or rejected credential (401/403-class).
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeStateMismatch indicates the OAuth state did not match the stored challenge.
	ErrCodeStateMismatch ErrorCode = "state_mismatch"
	// ErrCodeConfig indicates required configuration is missing or invalid.
	ErrCodeConfig ErrorCode = "config"
	// ErrCodeRemote indicates the backend answered with a non-auth error status.
	ErrCodeRemote ErrorCode = "remote"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Unavailable creates a new Unavailable error wrapping the transport cause.
func Unavailable(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeUnavailable, Message: message, Cause: cause}
}

// Unauthorized creates a new Unauthorized error.
func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message}
}

// StateMismatch creates a new StateMismatch error.
func StateMismatch(message string) *AppError {
	return &AppError{Code: ErrCodeStateMismatch, Message: message}
}

// Config creates a new Config error.
func Config(message string) *AppError {
	return &AppError{Code: ErrCodeConfig, Message: message}
}

// Configf creates a new Config error with formatted message.
func Configf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeConfig, Message: fmt.Sprintf(format, args...)}
}

// Remotef creates a new Remote error with formatted message.
func Remotef(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeRemote, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a new Internal error.
func Internal(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Cause: cause}
}

// Wrap attaches a cause to a copy of the given AppError.
func (e *AppError) Wrap(cause error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Cause: cause}
}

// CodeOf returns the ErrorCode of err if it is (or wraps) an AppError,
// and ErrCodeInternal otherwise.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err is (or wraps) an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
