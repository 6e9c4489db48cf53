package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeUnauthorized       = "unauthorized"
	CodeNotFound           = "not_found"
	CodeBadRequest         = "bad_request"
	CodeServiceUnavailable = "service_unavailable"
	CodeInternal           = "internal_error"
)

// Error carries the HTTP status and machine code a handler should render.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, errors.New(msg))
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, CodeNotFound, errors.New(msg))
}

func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, errors.New(msg))
}

func ServiceUnavailable(msg string) *Error {
	return New(http.StatusServiceUnavailable, CodeServiceUnavailable, errors.New(msg))
}

// Internal wraps cause under msg. The client sees msg; cause stays reachable
// through errors.Unwrap for logging.
func Internal(msg string, cause error) *Error {
	if cause == nil {
		return New(http.StatusInternalServerError, CodeInternal, errors.New(msg))
	}
	return New(http.StatusInternalServerError, CodeInternal, &wrapped{msg: msg, cause: cause})
}

type wrapped struct {
	msg   string
	cause error
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.cause }

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae, true
	}
	return nil, false
}

// StatusOf returns the status carried by err, or 500 when err is not an *Error.
func StatusOf(err error) int {
	if ae, ok := As(err); ok && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}
