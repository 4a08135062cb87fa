package codescope

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFilterKind is returned when deserializing a filter envelope
	// whose kind tag names no known filter variant.
	ErrUnknownFilterKind = errors.New("unknown filter kind")

	// ErrNilCodec is returned when a nil codec is passed to MarshalFilter
	// or UnmarshalFilter.
	ErrNilCodec = errors.New("nil codec")
)

// DecodeError indicates a malformed serialized filter.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type DecodeError struct {
	Kind  string
	cause error
}

func (e *DecodeError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("decode filter: %v", e.cause)
	}
	return fmt.Sprintf("decode filter %q: %v", e.Kind, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }
