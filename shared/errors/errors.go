package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	cause      error
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func (e *ErrorWithStatusCode) Unwrap() error {
	return e.cause
}

// Validation reports malformed or missing input.
func Validation(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

// NotFound reports that a referenced entity is absent.
func NotFound(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound}
}

// Forbidden reports that the caller is not a member of the workspace.
func Forbidden(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden}
}

// Conflict reports a violated uniqueness rule.
func Conflict(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict}
}

// TooLarge reports a payload above the configured limit.
func TooLarge(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusRequestEntityTooLarge}
}

// Store wraps a persistence failure. The cause is kept for logs only,
// clients see an opaque message.
func Store(cause error) error {
	return &ErrorWithStatusCode{Message: "Internal server error", StatusCode: http.StatusInternalServerError, cause: cause}
}

func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsValidation(err error) bool { return hasStatus(err, http.StatusBadRequest) }
func IsNotFound(err error) bool   { return hasStatus(err, http.StatusNotFound) }
func IsForbidden(err error) bool  { return hasStatus(err, http.StatusForbidden) }
func IsConflict(err error) bool   { return hasStatus(err, http.StatusConflict) }

func hasStatus(err error, code int) bool {
	var e *ErrorWithStatusCode
	return errors.As(err, &e) && e.StatusCode == code
}
