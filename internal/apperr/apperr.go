// Package apperr defines the error taxonomy the whole API speaks: every
// service returns one of these kinds and the fiber error handler maps the
// kind to a status code exactly once.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	// KindValidation covers malformed or semantically invalid input
	// (duplicate review, year in the future, missing field).
	KindValidation Kind = iota
	// KindUnauthenticated means no usable credentials were presented.
	KindUnauthenticated
	// KindForbidden means the policy engine denied an authenticated actor.
	KindForbidden
	// KindNotFound covers missing resources and, intentionally, the
	// token-exchange identity check.
	KindNotFound
	// KindInternal covers fatal collaborator failures (storage, mail).
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	// Fields carries field-level validation messages when Kind is
	// KindValidation.
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid input", Fields: fields}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Internal wraps a fatal collaborator error. The cause is logged, never
// serialized to the client.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", cause: cause}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	if e, ok := As(err); ok {
		return e.Kind == kind
	}
	return false
}
