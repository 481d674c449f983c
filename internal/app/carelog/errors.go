package carelog

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnauthorized Kind = iota + 1
	KindForbidden
	KindInvalidState
	KindValidation
	KindNotFound
	KindInternal
)

// Error is the engine's typed failure. The handler layer maps Kind to an HTTP
// status; KindInternal detail is logged server-side and hidden from clients.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func InvalidState(expected, actual string) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf("invalid state: expected status %q, got %q", expected, actual)}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: err}
}

// KindOf classifies any error; unknown errors count as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
