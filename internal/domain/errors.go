package domain

import "errors"

// Error kinds. Use errors.Is against these to classify a *Error.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnavailable  = errors.New("upstream unavailable")
	ErrInternal     = errors.New("internal error")
)

// Error is a client-facing failure. Message is safe to return to callers;
// the cause is kept for logging only.
type Error struct {
	kind    error
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the sentinel this error is classified as.
func (e *Error) Kind() error {
	return e.kind
}

func NotFound(msg string) error {
	return &Error{kind: ErrNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Error{kind: ErrConflict, Message: msg}
}

func InvalidInput(msg string) error {
	return &Error{kind: ErrInvalidInput, Message: msg}
}

func Unauthorized(msg string) error {
	return &Error{kind: ErrUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Error{kind: ErrForbidden, Message: msg}
}

func Unavailable(msg string, cause error) error {
	return &Error{kind: ErrUnavailable, Message: msg, cause: cause}
}

func Internal(msg string, cause error) error {
	return &Error{kind: ErrInternal, Message: msg, cause: cause}
}
