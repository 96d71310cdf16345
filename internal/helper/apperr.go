package helper

import "fmt"

type ErrKind string

const (
	KindValidation   ErrKind = "validation"
	KindConflict     ErrKind = "conflict"
	KindNotFound     ErrKind = "not_found"
	KindUnauthorized ErrKind = "unauthorized"
	KindForbidden    ErrKind = "forbidden"
	KindInternal     ErrKind = "internal"
)

// AppError is what services return. Handlers map the kind to an HTTP
// status; anything that is not an AppError is logged with its cause and
// surfaced to the caller as a generic internal error.
type AppError struct {
	Kind    ErrKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func ErrValidation(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func ErrNotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: cause}
}
