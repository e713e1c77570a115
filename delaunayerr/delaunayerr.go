// Package delaunayerr defines the error taxonomy used throughout the
// triangulation core: OutOfRange, DegenerateInput, InvariantViolation and
// DuplicatePoint. Internal recursive algorithms (cavity walks, history
// descent, edge legalisation) signal these by panicking; the small number
// of public entry points recover and convert the panic back into a
// returned error, following the same pattern as the teacher's
// internal/throw.go: threading errors through every recursive call would
// add a lot of ceremony for conditions that are meant to abort the whole
// operation anyway.
package delaunayerr

import "github.com/pkg/errors"

// Kind classifies an Error without requiring callers to compare error
// values directly.
type Kind int

const (
	OutOfRange Kind = iota
	DegenerateInput
	InvariantViolation
	DuplicatePoint
)

func (k Kind) String() string {
	switch k {
	case OutOfRange:
		return "OutOfRange"
	case DegenerateInput:
		return "DegenerateInput"
	case InvariantViolation:
		return "InvariantViolation"
	case DuplicatePoint:
		return "DuplicatePoint"
	default:
		return "Unknown"
	}
}

// Error is a taxonomy-tagged error. It wraps an underlying error produced
// with github.com/pkg/errors so stack traces are captured at the point the
// error was raised, not where it was eventually recovered.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, err: errors.Errorf(format, args...)}
}

// OutOfRangef builds an OutOfRange error: a point index below
// FirstPointIndex that doesn't name a known sentinel, or beyond the point
// container's length.
func OutOfRangef(format string, args ...interface{}) *Error {
	return newf(OutOfRange, format, args...)
}

// DegenerateInputf builds a DegenerateInput error: location or in-circle
// evaluation reached a triangle with all-zero orientations, or a walk
// failed to converge.
func DegenerateInputf(format string, args ...interface{}) *Error {
	return newf(DegenerateInput, format, args...)
}

// InvariantViolationf builds an InvariantViolation error, raised only from
// debug/verification paths such as Triangulation.CheckInvariants, never
// from normal insertion.
func InvariantViolationf(format string, args ...interface{}) *Error {
	return newf(InvariantViolation, format, args...)
}

// DuplicatePointf builds a DuplicatePoint error, raised when a caller
// selected the DuplicateError policy and an inserted point coincides with
// an existing vertex.
func DuplicatePointf(format string, args ...interface{}) *Error {
	return newf(DuplicatePoint, format, args...)
}

// Fatalf panics with a newly built *Error. Used by internal algorithms
// that cannot recover locally; the nearest public entry point converts the
// panic back into a returned error via Recover.
func Fatalf(kind Kind, format string, args ...interface{}) {
	panic(newf(kind, format, args...))
}

// Recover converts a panic value produced by Fatalf back into an error.
// Any other panic value is re-raised, since it represents a genuine bug
// rather than a taxonomy-tagged failure.
func Recover(r interface{}) error {
	if r == nil {
		return nil
	}
	if e, ok := r.(*Error); ok {
		return e
	}
	panic(r)
}

// Is reports whether err is a taxonomy-tagged error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
