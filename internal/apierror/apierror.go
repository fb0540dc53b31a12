// Package apierror provides the error taxonomy for the API and the
// standardized response envelopes. All errors returned to clients go through
// this package to ensure consistency and to prevent leaking internal details
// (stack traces, DB errors, etc.).
package apierror

import (
	"fmt"
	"net/http"
)

// Kind classifies a failure so handlers can map it to an HTTP status without
// string-matching error messages.
type Kind int

const (
	// Internal is the zero value: storage/transaction failures not
	// attributable to caller input. Always rolled back before surfacing.
	Internal Kind = iota
	// NotFound — referenced product/PO/exit/user does not exist.
	NotFound
	// InvalidInput — missing required field, non-positive quantity,
	// unparseable payload.
	InvalidInput
	// InsufficientStock — requested decrement exceeds available quantity.
	InsufficientStock
	// InvalidTransition — PO status precondition violated.
	InvalidTransition
	// EmptyOrder — PO has no line items at receipt time.
	EmptyOrder
	// Conflict — uniqueness violation (duplicate supplier CNPJ, product code,
	// username).
	Conflict
	// Unauthorized — bad credentials or an invalid/expired token.
	Unauthorized
)

// Error is a classified business error. Services return it; the handler layer
// translates Kind into a status code.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Status maps the kind to its HTTP status class.
func (e *Error) Status() int {
	switch e.Kind {
	case NotFound:
		return http.StatusNotFound
	case InvalidInput, InsufficientStock, InvalidTransition, EmptyOrder:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Errorf builds a classified error with a formatted message.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err, defaulting to Internal for unclassified
// errors (driver errors, context cancellation, etc.).
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return Internal
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation error", Fields: fields}
}
