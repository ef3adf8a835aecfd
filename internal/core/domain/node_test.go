package domain_test

import (
	"testing"

	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestResolveNodeAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		address         string
		network         domain.Network
		expectedAddress string
	}{
		{"default_main", "default", domain.NetworkMain, domain.DefaultMainnetNode},
		{"default_test", "default", domain.NetworkTest, domain.DefaultTestnetNode},
		{"contains_default", "my-default-node", domain.NetworkTest, domain.DefaultTestnetNode},
		{"custom", "ssl://electrum.example.com:50002", domain.NetworkMain, "ssl://electrum.example.com:50002"},
		{"empty", "", domain.NetworkMain, ""},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expectedAddress, domain.ResolveNodeAddress(tt.address, tt.network))
		})
	}
}

func TestParseNodeEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		address          string
		expectedProtocol domain.Protocol
	}{
		{domain.DefaultMainnetNode, domain.ProtocolRelay},
		{"tcp://electrum.local:50001", domain.ProtocolRelay},
		{"http://electrum.local:8332?auth=", domain.ProtocolRelay},
		{"http://172.18.0.2:18332?auth=satsbank:typercuz", domain.ProtocolFullNodeRPC},
		{"https://node.example.com", domain.ProtocolFullNodeRPC},
		{"ssl://blockstream.info:700", domain.ProtocolUnknown},
		{"", domain.ProtocolUnknown},
	}

	for _, tt := range tests {
		endpoint := domain.ParseNodeEndpoint(tt.address)
		require.Equal(t, tt.address, endpoint.Address)
		require.Equal(t, tt.expectedProtocol, endpoint.Protocol, tt.address)
	}
}

func TestParseAuth(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			address       string
			expectedURL   string
			expectedCreds domain.Credentials
		}{
			{
				"http://172.18.0.2:18332?auth=alice:secret",
				"http://172.18.0.2:18332",
				domain.Credentials{Username: "alice", Password: "secret"},
			},
			{
				"http://172.18.0.2:18332?auth=",
				"http://172.18.0.2:18332",
				domain.Credentials{},
			},
			{
				"http://localhost:8332?auth=alice:se:cret",
				"http://localhost:8332",
				domain.Credentials{Username: "alice", Password: "se:cret"},
			},
			{
				"http://localhost:8332?auth=alice:",
				"http://localhost:8332",
				domain.Credentials{Username: "alice"},
			},
		}

		for _, tt := range tests {
			url, creds, err := domain.ParseAuth(tt.address)
			require.NoError(t, err)
			require.Equal(t, tt.expectedURL, url)
			require.Equal(t, tt.expectedCreds, creds)
		}
		_, creds, _ := domain.ParseAuth("http://localhost?auth=")
		require.True(t, creds.IsEmpty())
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			address       string
			expectedError error
		}{
			{"http://localhost:8332", domain.ErrMissingAuthSegment},
			{"http://localhost:8332?auth=a:b?auth=c:d", domain.ErrMissingAuthSegment},
			{"http://localhost:8332?auth=alice", domain.ErrMalformedAuthSegment},
			{"http://localhost:8332?auth=:", domain.ErrMalformedAuthSegment},
			{"http://localhost:8332?auth=:secret", domain.ErrMalformedAuthSegment},
		}

		for _, tt := range tests {
			_, _, err := domain.ParseAuth(tt.address)
			require.ErrorIs(t, err, tt.expectedError, tt.address)

			var derr *domain.Error
			require.ErrorAs(t, err, &derr)
			require.Equal(t, domain.ErrKindInternal, derr.Kind)
		}
	})
}
