package domain

import "fmt"

// ErrorKind is the coarse classification of every failure returned by the
// config resolution layer.
type ErrorKind int

const (
	// ErrKindInternal covers malformed input and any backend reported
	// failure that is not a raw I/O error.
	ErrKindInternal ErrorKind = iota
	// ErrKindNetwork is a low-level I/O failure while talking to a backend.
	ErrKindNetwork
)

func (k ErrorKind) String() string {
	if k == ErrKindNetwork {
		return "Network"
	}
	return "Internal"
}

// Error is the error record handed to callers: a kind plus the message of
// the underlying failure, unchanged.
type Error struct {
	Kind    ErrorKind
	Message string
}

// NewError returns a new *Error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{kind, message}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is an *Error with same kind and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	// ErrInvalidNodeAddress is returned for addresses matching neither the
	// relay nor the full node shape.
	ErrInvalidNodeAddress = NewError(ErrKindInternal, "Invalid Node Address.")
	// ErrMissingAuthSegment is returned for full node addresses without the
	// mandatory ?auth= segment.
	ErrMissingAuthSegment = NewError(
		ErrKindInternal, "Invalid Node Address: expected exactly one ?auth= segment.",
	)
	// ErrMalformedAuthSegment is returned when the auth segment is neither
	// empty nor in the user:password form with a non empty user.
	ErrMalformedAuthSegment = NewError(
		ErrKindInternal, "Invalid Node Address: auth must be in the form user:password.",
	)
	// ErrUnknownNetwork ...
	ErrUnknownNetwork = NewError(ErrKindInternal, "Unknown network, must be main or test.")
)
