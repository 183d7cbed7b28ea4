// Package apperror carries the error vocabulary shared by every service in the
// application. Handlers map a Kind to an HTTP status; services attach a Kind to
// whatever went wrong instead of leaking storage errors past their boundary.
package apperror

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	// KindValidation: bad input shape or range (quantity below one, missing field).
	KindValidation
	// KindConflict: request clashes with existing state (cross-stall cart,
	// already-acknowledged order).
	KindConflict
	// KindNotFound: entity absent, or owned by someone else. Ownership
	// mismatches report NotFound on purpose so existence is not leaked.
	KindNotFound
	// KindAuthorization: actor lacks the role for a mutating action.
	KindAuthorization
	// KindState: operation invalid for the entity's current state.
	KindState
	// KindTransient: collaborator timeout or failure, retryable by the caller.
	KindTransient
	// KindIntegrity: the storage layer rejected a write the application had
	// already validated. Surfaced distinctly so drift between the two rule
	// sets is detectable.
	KindIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuthorization:
		return "authorization"
	case KindState:
		return "state"
	case KindTransient:
		return "transient"
	case KindIntegrity:
		return "integrity"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two apperror values by Kind, so sentinel-style
// comparisons keep working across wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, or KindUnknown when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the user-facing message from err, falling back to a
// generic one for errors that never got a Kind.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
