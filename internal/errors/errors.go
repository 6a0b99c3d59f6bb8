package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeSubmission indicates a remote run could not be started.
	ErrCodeSubmission ErrorCode = "submission"
	// ErrCodePollTimeout indicates the poll attempt budget was exhausted while still running.
	ErrCodePollTimeout ErrorCode = "poll_timeout"
	// ErrCodeRemoteFailed indicates the remote run reached an explicit failure terminal state.
	ErrCodeRemoteFailed ErrorCode = "remote_failed"
	// ErrCodeExtraction indicates no parseable structured payload was found in a model response.
	ErrCodeExtraction ErrorCode = "extraction"
	// ErrCodeTransport indicates a network-level failure after exhausting the retry budget.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
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

// Submission creates a new Submission error carrying the remote status text.
func Submission(message string) *AppError {
	return &AppError{Code: ErrCodeSubmission, Message: message}
}

// Submissionf creates a new Submission error with formatted message.
func Submissionf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeSubmission, Message: fmt.Sprintf(format, args...)}
}

// PollTimeout creates a new PollTimeout error.
func PollTimeout(message string) *AppError {
	return &AppError{Code: ErrCodePollTimeout, Message: message}
}

// PollTimeoutf creates a new PollTimeout error with formatted message.
func PollTimeoutf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodePollTimeout, Message: fmt.Sprintf(format, args...)}
}

// RemoteFailed creates a new RemoteFailed error.
func RemoteFailed(message string) *AppError {
	return &AppError{Code: ErrCodeRemoteFailed, Message: message}
}

// RemoteFailedf creates a new RemoteFailed error with formatted message.
func RemoteFailedf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeRemoteFailed, Message: fmt.Sprintf(format, args...)}
}

// Extraction creates a new Extraction error.
func Extraction(message string) *AppError {
	return &AppError{Code: ErrCodeExtraction, Message: message}
}

// Transport wraps a network-level failure after the retry budget is exhausted.
func Transport(err error, message string) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: message, Cause: err}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsSubmission checks if an error is a Submission error.
func IsSubmission(err error) bool {
	return isCode(err, ErrCodeSubmission)
}

// IsPollTimeout checks if an error is a PollTimeout error.
func IsPollTimeout(err error) bool {
	return isCode(err, ErrCodePollTimeout)
}

// IsRemoteFailed checks if an error is a RemoteFailed error.
func IsRemoteFailed(err error) bool {
	return isCode(err, ErrCodeRemoteFailed)
}

// IsExtraction checks if an error is an Extraction error.
func IsExtraction(err error) bool {
	return isCode(err, ErrCodeExtraction)
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
