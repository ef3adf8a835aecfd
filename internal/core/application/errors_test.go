package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/stackmate/walletcfg/pkg/bitcoind"
	"github.com/stackmate/walletcfg/pkg/electrum"
	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedKind    domain.ErrorKind
		expectedMessage string
	}{
		{
			name:            "electrum_io",
			err:             &electrum.IOError{Err: errors.New("connection refused")},
			expectedKind:    domain.ErrKindNetwork,
			expectedMessage: "connection refused",
		},
		{
			name:            "wrapped_electrum_io",
			err:             fmt.Errorf("dial: %w", &electrum.IOError{Err: errors.New("no route to host")}),
			expectedKind:    domain.ErrKindNetwork,
			expectedMessage: "no route to host",
		},
		{
			name:            "bitcoind_io",
			err:             &bitcoind.IOError{Err: errors.New("EOF")},
			expectedKind:    domain.ErrKindNetwork,
			expectedMessage: "EOF",
		},
		{
			name:            "electrum_protocol",
			err:             &electrum.ProtocolError{Reason: "response without id"},
			expectedKind:    domain.ErrKindInternal,
			expectedMessage: "electrum protocol error: response without id",
		},
		{
			name:            "bitcoind_rpc",
			err:             &btcjson.RPCError{Code: -4, Message: "Wallet file verification failed"},
			expectedKind:    domain.ErrKindInternal,
			expectedMessage: "-4: Wallet file verification failed",
		},
		{
			name:            "generic",
			err:             errors.New("status code: 401, response: \"\""),
			expectedKind:    domain.ErrKindInternal,
			expectedMessage: "status code: 401, response: \"\"",
		},
		{
			name:            "already_classified",
			err:             domain.ErrInvalidNodeAddress,
			expectedKind:    domain.ErrKindInternal,
			expectedMessage: "Invalid Node Address.",
		},
	}

	for _, tt := range tests {
		err := classifyError(tt.err)
		assert.Equal(t, tt.expectedKind, err.Kind, tt.name)
		assert.Equal(t, tt.expectedMessage, err.Message, tt.name)
	}

	assert.Nil(t, classifyError(nil))
}

func TestRelayConfig(t *testing.T) {
	direct := relayConfig(domain.DefaultTestnetNode, "")
	assert.Equal(t, relayTimeout, direct.Timeout)
	assert.Equal(t, uint8(1), direct.Retry)
	assert.Equal(t, uint64(1000), direct.StopGap)
	assert.Empty(t, direct.Socks5)

	proxied := relayConfig(domain.DefaultTestnetNode, "127.0.0.1:9050")
	assert.Zero(t, proxied.Timeout)
	assert.Equal(t, "127.0.0.1:9050", proxied.Socks5)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", outcome(nil))
	assert.Equal(t, "network_error", outcome(domain.NewError(domain.ErrKindNetwork, "EOF")))
	assert.Equal(t, "internal_error", outcome(domain.ErrInvalidNodeAddress))
}
