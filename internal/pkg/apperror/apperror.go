package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies command failures so the presentation layer can render them
// without inspecting internals.
type Kind string

const (
	// KindValidation: caller-supplied input violates a precondition. Not
	// retriable as-is; the caller must fix the input.
	KindValidation Kind = "validation_failure"
	// KindInvalidTransition: the target row's current state does not permit
	// the requested change. Surfaced as an actionable conflict.
	KindInvalidTransition Kind = "invalid_transition"
	// KindInvalidPlan: unknown billing plan id (caller bug).
	KindInvalidPlan Kind = "invalid_plan"
	// KindNotFound: target row absent.
	KindNotFound Kind = "not_found"
	// KindPersistence: transient infrastructure fault. Safe to retry the whole
	// command unchanged since no partial effect is ever visible.
	KindPersistence Kind = "persistence_failure"
)

type AppError struct {
	Kind    Kind
	Message string
	Field   string // optional field reference for validation failures
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func Validation(message, field string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Field: field}
}

func InvalidTransition(message string) *AppError {
	return &AppError{Kind: KindInvalidTransition, Message: message}
}

func InvalidPlan(planId string) *AppError {
	return &AppError{Kind: KindInvalidPlan, Message: fmt.Sprintf("unknown plan: %s", planId)}
}

func NotFound(what string) *AppError {
	return &AppError{Kind: KindNotFound, Message: what + " not found"}
}

func Persistence(cause error) *AppError {
	return &AppError{Kind: KindPersistence, Message: "storage operation failed", cause: cause}
}

// KindOf extracts the failure kind, defaulting to persistence for anything
// untyped that bubbled up from infrastructure.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindPersistence
}

// AsAppError returns the typed error or wraps err as a persistence failure.
func AsAppError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Persistence(err)
}

// HTTPStatus maps a failure kind to the status code the controllers use.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidPlan:
		return 400
	case KindNotFound:
		return 404
	case KindInvalidTransition:
		return 409
	default:
		return 500
	}
}
