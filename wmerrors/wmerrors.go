// Package wmerrors implements the closed error-kind taxonomy (§7): every
// error the core returns carries one of a fixed set of kinds, wraps an
// underlying cause, and supports errors.Is/As against both the kind and
// the cause.
package wmerrors

import (
	"errors"
	"fmt"
)

// Kind is a closed set of error categories (§7). New kinds are never
// added by user code; the set is exhaustive by design.
type Kind int

const (
	// Backend is any failure of the X capability: connection lost, bad
	// request, unknown window.
	Backend Kind = iota
	// InvalidState is a pure operation that would violate an invariant,
	// e.g. viewing an unknown tag.
	InvalidState
	// ExtensionMissing is a typed state lookup for an absent extension.
	ExtensionMissing
	// ParseBinding is a key-string that could not be resolved against
	// the external keymap.
	ParseBinding
	// SpawnFailed is a subprocess launch failure.
	SpawnFailed
	// UserHook wraps an error bubbled from a user-supplied hook.
	UserHook
)

func (k Kind) String() string {
	switch k {
	case Backend:
		return "backend"
	case InvalidState:
		return "invalid_state"
	case ExtensionMissing:
		return "extension_missing"
	case ParseBinding:
		return "parse_binding"
	case SpawnFailed:
		return "spawn_failed"
	case UserHook:
		return "user_hook"
	default:
		return "unknown"
	}
}

// Error is the core's single error type: a kind, a message giving
// context, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same Kind, so that
// callers can write errors.Is(err, wmerrors.New(wmerrors.InvalidState,
// "")) or, more idiomatically, Is(err, kind) via the package-level Is
// below.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New builds an *Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an *Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Wrapf builds an *Error of kind wrapping cause, with a formatted
// message.
func Wrapf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is a *wmerrors.Error of the given kind,
// unwrapping through any wrapper chain.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
