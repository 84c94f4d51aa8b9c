package aff4

import (
	"errors"
	"fmt"
)

// Kind is one of the abstract error kinds a stream operation can report.
type Kind int

const (
	// KindOK is not an error; it exists so a zero Kind never matches a
	// sentinel below.
	KindOK Kind = iota
	// KindNotFound covers a missing parent volume or a missing bevy member.
	KindNotFound
	// KindNotImplemented covers an unrecognized compression method at load.
	KindNotImplemented
	// KindIOError covers volume create/read/decode failures and corrupt indexes.
	KindIOError
	// KindMemoryError covers a compression failure.
	KindMemoryError
	// KindGenericError covers a snappy decode failure.
	KindGenericError
	// KindFatal covers an unexpected compression method reaching decode —
	// a programmer invariant violation that should have been rejected at load.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindNotImplemented:
		return "NOT_IMPLEMENTED"
	case KindIOError:
		return "IO_ERROR"
	case KindMemoryError:
		return "MEMORY_ERROR"
	case KindGenericError:
		return "GENERIC_ERROR"
	case KindFatal:
		return "FATAL"
	default:
		return "OK"
	}
}

// StreamError provides structured error information for stream operations.
type StreamError struct {
	Op    string // operation that failed (e.g. "Load", "FlushChunk", "ReadPartial")
	Kind  Kind
	URN   string // subject URN, if applicable
	Cause error
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	if e.URN != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Kind, e.URN, e.Cause)
		}
		return fmt.Sprintf("%s %s (%s)", e.Op, e.Kind, e.URN)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Op, e.Kind)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StreamError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's sentinel Kind.
func (e *StreamError) Is(target error) bool {
	var other *StreamError
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	switch e.Kind {
	case KindNotFound:
		return errors.Is(target, ErrNotFound)
	case KindNotImplemented:
		return errors.Is(target, ErrNotImplemented)
	case KindIOError:
		return errors.Is(target, ErrIOError)
	case KindMemoryError:
		return errors.Is(target, ErrMemoryError)
	case KindGenericError:
		return errors.Is(target, ErrGenericError)
	case KindFatal:
		return errors.Is(target, ErrFatal)
	}
	return false
}

// Sentinel errors, one per abstract kind, so callers can branch with
// errors.Is without inspecting Kind directly.
var (
	ErrNotFound       = errors.New("aff4: not found")
	ErrNotImplemented = errors.New("aff4: not implemented")
	ErrIOError        = errors.New("aff4: io error")
	ErrMemoryError    = errors.New("aff4: memory error")
	ErrGenericError   = errors.New("aff4: generic error")
	ErrFatal          = errors.New("aff4: fatal invariant violation")
)

// newError builds a *StreamError for the given operation, kind, and subject.
func newError(op string, kind Kind, urn string, cause error) *StreamError {
	return &StreamError{Op: op, Kind: kind, URN: urn, Cause: cause}
}
