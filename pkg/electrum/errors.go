package electrum

import (
	"errors"
	"fmt"
)

var (
	// ErrFeeUnavailable is returned when the server has not enough data to
	// estimate the fee for the requested target.
	ErrFeeUnavailable = errors.New("fee estimation not available")
	// ErrInvalidURL ...
	ErrInvalidURL = errors.New("invalid electrum url")
	// ErrClosed is returned when calling a method on a closed client.
	ErrClosed = errors.New("electrum client is closed")
)

// IOError wraps a failure of the underlying connection. Its message is
// that of the wrapped error.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ServerError is an error object returned by the electrum server.
type ServerError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("electrum server error %d: %s", e.Code, e.Message)
}

// ProtocolError is returned for responses that don't respect the
// protocol.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("electrum protocol error: %s", e.Reason)
}
