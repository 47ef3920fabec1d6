package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure so transport layers can map it to a
// structured result without inspecting message text.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindConflict           ErrorKind = "conflict"
	KindState              ErrorKind = "state"
	KindNotFound           ErrorKind = "not_found"
	KindIneligibleCustomer ErrorKind = "ineligible_customer"
	KindInvalidExchange    ErrorKind = "invalid_exchange"
	KindInvalidRefund      ErrorKind = "invalid_refund"
	// KindAccounting marks ledger side-effect failures. These are never
	// fatal to the primary state transition; callers surface them as
	// warnings attached to an otherwise successful result.
	KindAccounting ErrorKind = "accounting"
)

// Error is the single error type returned across service boundaries.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a domain error with a formatted message.
func E(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a domain error.
func Wrap(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or empty string for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
