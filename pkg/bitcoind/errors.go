package bitcoind

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
)

var (
	// ErrFeeRateUnavailable is returned when the node has not enough data to
	// estimate the fee for the requested target.
	ErrFeeRateUnavailable = errors.New("fee rate unavailable")
	// ErrMissingWalletName ...
	ErrMissingWalletName = errors.New("missing wallet name")
	// ErrUnsupportedNetwork is returned for chain params without a matching
	// bitcoind chain name.
	ErrUnsupportedNetwork = errors.New("unsupported network")
)

// IOError wraps a transport failure while talking to the node. Its message
// is that of the wrapped error.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// InvalidNetworkError is returned when the node runs on a chain different
// from the requested one.
type InvalidNetworkError struct {
	Requested string
	Found     string
}

func (e *InvalidNetworkError) Error() string {
	return fmt.Sprintf(
		"invalid network: requested %s, node is on %s", e.Requested, e.Found,
	)
}

// wrapError marks transport failures of the http client as *IOError.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if isIOError(err) {
		return &IOError{err}
	}
	return err
}

// isIOError reports whether err comes from the connection with the node.
// Local failures, like a bare syscall error, are not.
func isIOError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
