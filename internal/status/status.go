// Package status provides the result type used across the braid conversion
// boundary: success, or a (code, message) pair describing the failure.
package status

import (
	"errors"
	"fmt"
)

// Code classifies a conversion failure.
type Code int

// Failure codes.
const (
	// OK is the zero value; it is never carried by a non-nil Status.
	OK Code = iota
	// InvalidArgument marks malformed caller input: bad shapes, corrupt
	// wire buffers, arrays that cannot be coerced to a dense layout.
	InvalidArgument
	// UnsupportedType marks a dtype with no mapping across the boundary.
	UnsupportedType
	// Internal marks a bug or data corruption: size mismatches after
	// allocation, codec inconsistencies, failed element construction.
	// Callers should treat it as fatal for the in-flight operation.
	Internal
)

// String returns a human-readable code name.
func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case InvalidArgument:
		return "invalid argument"
	case UnsupportedType:
		return "unsupported type"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Status is the error type for every operation in this module.
// A nil *Status (or nil error) means success.
type Status struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (s *Status) Error() string {
	if s.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", s.Code, s.Message, s.Cause)
	}
	return fmt.Sprintf("%s: %s", s.Code, s.Message)
}

// Unwrap returns the wrapped cause, if any.
func (s *Status) Unwrap() error {
	return s.Cause
}

// Is matches two statuses by code, so tests and callers can use
// errors.Is(err, &Status{Code: ...}).
func (s *Status) Is(target error) bool {
	if t, ok := target.(*Status); ok {
		return s.Code == t.Code
	}
	return false
}

// InvalidArgumentf builds an InvalidArgument status.
func InvalidArgumentf(format string, args ...any) *Status {
	return &Status{Code: InvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// Unsupportedf builds an UnsupportedType status.
func Unsupportedf(format string, args ...any) *Status {
	return &Status{Code: UnsupportedType, Message: fmt.Sprintf(format, args...)}
}

// Internalf builds an Internal status.
func Internalf(format string, args ...any) *Status {
	return &Status{Code: Internal, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a status built by one of the constructors.
func (s *Status) Wrap(cause error) *Status {
	s.Cause = cause
	return s
}

// CodeOf extracts the code from an error. A nil error reports OK;
// a non-status error reports Internal.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var s *Status
	if errors.As(err, &s) {
		return s.Code
	}
	return Internal
}
