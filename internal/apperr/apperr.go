// Package apperr defines the errors handlers forward to the central responder.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error carries the status and client-facing message for a failed request.
type Error struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given status.
func New(status int, message string, err error) *Error {
	return &Error{StatusCode: status, Message: message, Err: err}
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// BadRequest creates a 400 error.
func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, fmt.Sprintf(format, args...), nil)
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, message, nil)
}

// Internal wraps an unexpected failure in a 500 error with a generic message.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "internal server error", err)
}

// From converts any error into an *Error. Errors that are not already
// application errors become 500s.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Write encodes e as the {message, statusCode} body with its status. It is
// for middleware that rejects a request before a handler runs.
func Write(w http.ResponseWriter, e *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}
