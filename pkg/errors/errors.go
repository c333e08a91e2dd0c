// Package errors defines the service's error kinds and maps them to HTTP
// statuses and the public codes of the JSON error envelope.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds. Every AppError wraps one so callers can test with
// errors.Is regardless of message.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrServiceUnavail = errors.New("service unavailable")
	ErrUpstream       = errors.New("upstream error")
)

// AppError is an error with a public code and message. Err keeps the cause
// for logs and is never shown to clients.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// kind describes how a sentinel is reported when it reaches the HTTP layer
// without an AppError around it.
type kind struct {
	sentinel error
	status   int
	code     string
	message  string
}

var kinds = []kind{
	{ErrNotFound, http.StatusNotFound, "NOT_FOUND", "resource not found"},
	{ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS", "resource already exists"},
	{ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT", ""},
	{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required"},
	{ErrUpstream, http.StatusBadGateway, "UPSTREAM_ERROR", "the content service failed to answer"},
	{ErrServiceUnavail, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "service temporarily unavailable"},
}

func newError(k kind, message string, cause error) *AppError {
	if cause == nil {
		cause = k.sentinel
	}
	return &AppError{Code: k.code, Message: message, Status: k.status, Err: cause}
}

// NotFound reports a missing entity.
func NotFound(resource, id string) *AppError {
	return newError(kinds[0], fmt.Sprintf("%s with id %s not found", resource, id), nil)
}

// AlreadyExists reports a uniqueness conflict on field.
func AlreadyExists(resource, field, value string) *AppError {
	return newError(kinds[1], fmt.Sprintf("%s with %s %q already exists", resource, field, value), nil)
}

// InvalidInput reports a request the service cannot act on.
func InvalidInput(message string) *AppError {
	return newError(kinds[2], message, nil)
}

// Unauthorized reports missing or wrong credentials.
func Unauthorized(message string) *AppError {
	return newError(kinds[3], message, nil)
}

// Upstream reports a content API failure. The cause is kept for logs.
func Upstream(message string, cause error) *AppError {
	return newError(kinds[4], message, fmt.Errorf("%w: %w", ErrUpstream, cause))
}

// Unavailable reports a dependency that is temporarily unusable, such as an
// open circuit or a missing event broker.
func Unavailable(message string, cause error) *AppError {
	if cause != nil {
		cause = fmt.Errorf("%w: %w", ErrServiceUnavail, cause)
	}
	return newError(kinds[5], message, cause)
}

// Internal hides err behind a generic 500.
func Internal(err error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: "an internal error occurred", Status: http.StatusInternalServerError, Err: err}
}

// Describe returns the status, code and public message for err. Messages of
// AppErrors are used as is; bare sentinels get a generic message, except
// invalid input which repeats the error text.
func Describe(err error) (status int, code, message string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Code, appErr.Message
	}
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			if k.message == "" {
				return k.status, k.code, err.Error()
			}
			return k.status, k.code, k.message
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
}

// HTTPStatus returns the status err should be reported with.
func HTTPStatus(err error) int {
	status, _, _ := Describe(err)
	return status
}
