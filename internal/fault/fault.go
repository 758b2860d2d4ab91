// Package fault defines the error kinds shared across QuickShare services.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP boundary can map it to a status
// code without inspecting message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindStoreUnavailable
	KindValidationFailed
	KindUnauthorized
	KindConflict
)

// String returns a stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindStoreUnavailable:
		return "store_unavailable"
	case KindValidationFailed:
		return "validation_failed"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Msg is safe to surface to clients;
// Err carries the underlying adapter error, if any.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a client-safe message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap classifies an underlying error, preserving it for unwrapping.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Message returns the client-safe message from a classified error,
// falling back to the raw error text.
func Message(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Msg
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// IsNotFound reports whether the error chain carries KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
