// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy shared by stores, services,
// and HTTP handlers. Every failure that crosses a package boundary is
// classified with a Kind so the handler layer can map it to a stable
// status code without inspecting storage-level errors.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the stable category of a failure.
type Kind int

const (
	// KindInternal is the fallback for unclassified failures.
	KindInternal Kind = iota
	// KindNotFound: a referenced id does not resolve.
	KindNotFound
	// KindConflict: uniqueness or state-precondition violation.
	KindConflict
	// KindInvalid: caller input fails a required-field or range check.
	KindInvalid
	// KindUnauthorized: missing or unusable credential.
	KindUnauthorized
	// KindForbidden: valid credential, wrong role.
	KindForbidden
	// KindUnsupported: operation not modeled (e.g. course rebinding).
	KindUnsupported
)

// Error carries a kind plus a human-readable reason. The reason is safe
// to return to the caller verbatim.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error with a formatted reason.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error while keeping it unwrappable.
func Wrap(kind Kind, err error, reason string) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

func Invalid(format string, args ...any) *Error {
	return New(KindInvalid, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(KindForbidden, format, args...)
}

func Unsupported(format string, args ...any) *Error {
	return New(KindUnsupported, format, args...)
}

// KindOf extracts the kind from err, or KindInternal if it carries none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err is classified with the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Reason returns the user-facing reason for err. Unclassified errors get
// a generic message so internal details never leak to the client.
func Reason(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return "internal server error"
}
