package apperror

import (
	"errors"
	"fmt"
)

// Kind groups error codes into the categories the transport layer maps to status codes.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindValidation Kind = "VALIDATION"
	KindConflict   Kind = "CONFLICT"
	KindState      Kind = "STATE"
	KindAuth       Kind = "AUTH"
	KindInternal   Kind = "INTERNAL"
)

// Error is a typed domain error carrying a stable machine-readable code.
type Error struct {
	Code    string `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on code and message so wrapped copies of a sentinel still compare equal
// while distinct sentinels sharing a code do not.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil || e == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code string, kind Kind, message string) *Error {
	return &Error{Code: code, Kind: kind, Message: message}
}

// Wrap attaches a cause to a copy of the sentinel.
func Wrap(sentinel *Error, err error) *Error {
	clone := *sentinel
	clone.Err = err
	return &clone
}

func NotFound(message string) *Error {
	return New("NOT_FOUND", KindNotFound, message)
}

func Validation(code, message string) *Error {
	return New(code, KindValidation, message)
}

func Conflict(code, message string) *Error {
	return New(code, KindConflict, message)
}

func State(code, message string) *Error {
	return New(code, KindState, message)
}

var ErrInternal = New("INTERNAL_ERROR", KindInternal, "internal server error")

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(ErrInternal, err)
}

func CodeOf(err error) string {
	if e := FromError(err); e != nil {
		return e.Code
	}
	return ""
}
