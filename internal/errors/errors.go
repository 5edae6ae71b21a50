// Package errors provides standardized domain errors with codes for the CareerLens API.
//
// Usage:
//
//	// In services - return typed errors
//	if width != expected {
//	    return errors.StageError(errors.StageAssign, "embedding width mismatch")
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrValidation) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound    Code = "NOT_FOUND"
	CodeValidation  Code = "VALIDATION"
	CodeEmptyInput  Code = "EMPTY_INPUT"
	CodePipeline    Code = "PIPELINE"
	CodeUnavailable Code = "UNAVAILABLE"
	CodeRateLimited Code = "RATE_LIMITED"
	CodeInternal    Code = "INTERNAL"
)

// Stage identifies the pipeline stage a hard error originated from.
type Stage string

// Pipeline stages reported in structured errors.
const (
	StageArtifact Stage = "artifact"
	StageIngest   Stage = "ingest"
	StageEmbed    Stage = "embed"
	StageAssign   Stage = "assign"
	StageAlign    Stage = "align"
	StageScore    Stage = "score"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeEmptyInput:
		return http.StatusBadRequest
	case CodePipeline:
		return http.StatusUnprocessableEntity
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, optional failing stage, and details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Stage   Stage  `json:"stage,omitempty"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Stage != "" && e.cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.cause)
	case e.Stage != "":
		return fmt.Sprintf("%s: %s", e.Stage, e.Message)
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Stage: e.Stage, Details: details, cause: e.cause}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Stage: e.Stage, Details: e.Details, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound    = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation  = &Error{Code: CodeValidation, Message: "validation error"}
	ErrEmptyInput  = &Error{Code: CodeEmptyInput, Message: "empty input"}
	ErrPipeline    = &Error{Code: CodePipeline, Message: "pipeline error"}
	ErrUnavailable = &Error{Code: CodeUnavailable, Message: "unavailable"}
	ErrRateLimited = &Error{Code: CodeRateLimited, Message: "rate limited"}
	ErrInternal    = &Error{Code: CodeInternal, Message: "internal error"}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// EmptyInput creates an empty input error.
func EmptyInput(msg string) *Error {
	return &Error{Code: CodeEmptyInput, Message: msg}
}

// StageError creates a hard pipeline error attributed to a stage.
func StageError(stage Stage, msg string) *Error {
	return &Error{Code: CodePipeline, Message: msg, Stage: stage}
}

// StageErrorf creates a hard pipeline error with formatted message.
func StageErrorf(stage Stage, format string, args ...any) *Error {
	return &Error{Code: CodePipeline, Message: fmt.Sprintf(format, args...), Stage: stage}
}

// Unavailable creates an unavailable error.
func Unavailable(msg string) *Error {
	return &Error{Code: CodeUnavailable, Message: msg}
}

// RateLimited creates a rate limited error.
func RateLimited(msg string) *Error {
	return &Error{Code: CodeRateLimited, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
