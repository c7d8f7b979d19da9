package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an AppError so the transport layer can map it to a status code.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindForbidden     Kind = "forbidden"
	KindUnauthorized  Kind = "unauthorized"
	KindDuplicate     Kind = "duplicate"
	KindSelfReference Kind = "self_reference"
	KindInvalidState  Kind = "invalid_state"
	KindConflict      Kind = "conflict"
)

// AppError is the error type returned by domain and application code for
// failures the caller is expected to handle.
type AppError struct {
	Kind    Kind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError reports missing or malformed input.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewNotFoundError reports that the entity with the given id does not exist.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s no existe: %s", entity, id)}
}

// NewForbiddenError reports that the caller is authenticated but lacks rights.
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// NewUnauthorizedError reports missing or invalid credentials.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

// NewDuplicateError reports a unique-constraint violation.
func NewDuplicateError(message string) *AppError {
	return &AppError{Kind: KindDuplicate, Message: message}
}

// NewSelfReferenceError reports an operation a user may not perform on their own resource.
func NewSelfReferenceError(message string) *AppError {
	return &AppError{Kind: KindSelfReference, Message: message}
}

// NewInvalidStateError reports a transition the current state does not allow.
func NewInvalidStateError(from, to string) *AppError {
	return &AppError{
		Kind:    KindInvalidState,
		Message: fmt.Sprintf("transición no permitida de %q a %q", from, to),
	}
}

// NewConflictError reports a lost optimistic-locking race.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// IsKind reports whether err (or anything it wraps) is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
