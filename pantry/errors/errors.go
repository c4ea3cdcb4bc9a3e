// errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an API error with a machine-readable code and an HTTP status.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// WithDetail adds one detail entry.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// HTTPStatus returns Status, or 500 when unset.
func (e *Error) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// New creates an Error.
func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// Wrap creates an Error around err.
func Wrap(err error, code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status, Err: err}
}

// From returns the *Error in err's chain, or wraps err as an internal error
// whose message hides the cause.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, CodeInternalError, "an internal error occurred", http.StatusInternalServerError)
}

const (
	CodeBadRequest       = "bad_request"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeInternalError    = "internal_error"
	CodeValidationFailed = "validation_failed"
	CodeNoData           = "no_data"
)

func BadRequest(message string) *Error {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// Validation is a 422 carrying the validation_failed code.
func Validation(message string) *Error {
	return New(CodeValidationFailed, message, http.StatusUnprocessableEntity)
}
