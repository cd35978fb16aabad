package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindAccessDenied
	KindConflict
	KindInvalidInput
	KindUnauthorized
	KindUpstreamUnavailable
)

// Error carries a machine-readable key alongside the user-facing message.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Err     error
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

func NotFound(key, message string) *Error {
	return &Error{Kind: KindNotFound, Key: key, Message: message}
}

func AccessDenied(key, message string) *Error {
	return &Error{Kind: KindAccessDenied, Key: key, Message: message}
}

func Conflict(key, message string) *Error {
	return &Error{Kind: KindConflict, Key: key, Message: message}
}

func InvalidInput(key, message string) *Error {
	return &Error{Kind: KindInvalidInput, Key: key, Message: message}
}

func Unauthorized(key, message string) *Error {
	return &Error{Kind: KindUnauthorized, Key: key, Message: message}
}

func UpstreamUnavailable(key, message string, err error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Key: key, Message: message, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Key: "internal_server_error", Message: "An unexpected error occurred", Err: err}
}

// KindOf returns the Kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// AsError extracts the typed error, wrapping untyped ones as Internal.
func AsError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsExpected reports whether err is a typed outcome the caller should
// render specifically, as opposed to an internal/upstream fault.
func IsExpected(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindAccessDenied, KindConflict, KindInvalidInput, KindUnauthorized:
		return true
	}
	return false
}
