// Package apperror is the error taxonomy shared by every storymap domain.
// Services return *Error values; the response package turns them into HTTP.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindNotFound           Kind = "NOT_FOUND"
	KindInactiveReference  Kind = "INACTIVE_REFERENCE"
	KindInvalidTransition  Kind = "INVALID_TRANSITION"
	KindSlugExhausted      Kind = "SLUG_EXHAUSTED"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindStorage            Kind = "STORAGE_ERROR"
	KindCompensationFailed Kind = "COMPENSATION_FAILED"
)

// Error carries everything a handler needs to answer a failed request.
// Message is the public "error" field, Detail the optional "message" field.
// Err is the internal cause and is never rendered.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Details []string
	Fields  map[string]any
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

// With attaches an extra public field (e.g. placeId) to the error body.
func (e *Error) With(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindInactiveReference:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition, KindSlugExhausted:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// As extracts an *Error from anywhere in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// =====================================================
// CONSTRUCTORS
// =====================================================

// Validation wraps an itemized list of validation messages.
func Validation(details []string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Validation failed",
		Details: details,
	}
}

// BadRequest is a single-message validation error (query parameters etc).
func BadRequest(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

func InactiveReference(message string, err error) *Error {
	return &Error{Kind: KindInactiveReference, Message: message, Err: err}
}

func InvalidTransition(message, detail string, err error) *Error {
	return &Error{Kind: KindInvalidTransition, Message: message, Detail: detail, Err: err}
}

func SlugExhausted(detail string, err error) *Error {
	return &Error{Kind: KindSlugExhausted, Message: "Could not assign a unique slug", Detail: detail, Err: err}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Storage hides the store-specific cause behind a generic public message.
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

func CompensationFailed(message string, err error) *Error {
	return &Error{Kind: KindCompensationFailed, Message: message, Err: err}
}
