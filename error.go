// Package csm holds the shared value types of the Community Sensor Model
// support library: the typed failure facility raised by model operations and
// the plain geometric carriers exchanged with sensor model implementations.
package csm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure raised by a model operation.
type ErrorKind string

const (
	// ErrorUnknown is reported when an error does not carry a kind.
	ErrorUnknown ErrorKind = "unknown"
	// ErrorBounds marks supplied data that violates a structural or value
	// constraint.
	ErrorBounds ErrorKind = "bounds"
	// ErrorIndexOutOfRange marks an index outside its construction-fixed
	// valid range.
	ErrorIndexOutOfRange ErrorKind = "index-out-of-range"
	// ErrorUnset marks use of state that was never configured.
	ErrorUnset ErrorKind = "unset"
)

// Error is the failure value raised by model operations: a kind, a
// human-readable message, and the operation that detected the failure. It
// propagates synchronously as an ordinary error return and aborts the
// operation that raised it with no partial mutation.
type Error struct {
	Kind ErrorKind
	Msg  string
	Op   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// NewError constructs an Error.
func NewError(kind ErrorKind, msg, op string) error {
	return &Error{Kind: kind, Msg: msg, Op: op}
}

// KindOf returns the kind carried by err, or ErrorUnknown when err is not a
// csm Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrorUnknown
}
