package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stackmate/walletcfg/internal/core/application"
	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/stackmate/walletcfg/pkg/circuitbreaker"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDescriptor = "wpkh([db7d25b5/84'/1'/6']tpubDCCh4SuT3pSAQ1qAN86qKEzsLoBeiugoGGQeibmieRUKv8z6fCTTmEXsb9yeueBkUWjGVzJr91bCzeCNShorbBqjZV4WRGjz3CrJsCboXUe/*)"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	app := newApp()
	app.Writer = buf
	err := app.Run(append([]string{"walletcfg"}, args...))
	return buf.String(), err
}

func TestResolveOffline(t *testing.T) {
	out, err := runApp(t, "resolve", "--descriptor", testDescriptor, "--offline")
	require.NoError(t, err)

	resp := resolveResponse{}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "test", resp.Network)
	require.Contains(t, resp.DepositDescriptor, "/0/*)")
	require.Contains(t, resp.ChangeDescriptor, "/1/*)")
	require.Empty(t, resp.Backend)
	require.Zero(t, resp.Height)
}

func TestResolveOfflineFromEnv(t *testing.T) {
	t.Setenv("WALLETCFG_OFFLINE", "true")

	out, err := runApp(t, "resolve", "--descriptor", testDescriptor)
	require.NoError(t, err)

	resp := resolveResponse{}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "test", resp.Network)
	require.Empty(t, resp.Backend)
}

func TestFailingResolve(t *testing.T) {
	t.Run("missing_descriptor", func(t *testing.T) {
		_, err := runApp(t, "resolve", "--offline")
		require.Error(t, err)
		require.IsType(t, &invalidUsageError{}, err)
	})

	t.Run("invalid_node_address", func(t *testing.T) {
		_, err := runApp(
			t, "resolve", "--descriptor", testDescriptor, "--node", "localhost:50001",
		)
		require.ErrorIs(t, err, domain.ErrInvalidNodeAddress)
	})
}

func TestCheck(t *testing.T) {
	out, err := runApp(
		t, "check", "--network", "main",
		"--node", "localhost:50001", "--node", "http://localhost:8332",
	)
	require.EqualError(t, err, "2 of 2 nodes unreachable")

	results := make([]probeResult, 0)
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	require.Equal(t, "localhost:50001", results[0].Node)
	require.Equal(t, "Internal", results[0].Kind)
	require.Equal(t, "Invalid Node Address.", results[0].Error)
	require.Equal(t, domain.ErrMissingAuthSegment.Message, results[1].Error)

	_, err = runApp(t, "check", "--network", "regtest", "--node", "default")
	require.ErrorIs(t, err, domain.ErrUnknownNetwork)
}

type mockConfigService struct {
	mock.Mock
}

func (m *mockConfigService) NewWalletConfig(
	ctx context.Context, descriptor, nodeAddress, socks5 string,
) (*application.WalletConfig, error) {
	args := m.Called(ctx, descriptor, nodeAddress, socks5)

	var res *application.WalletConfig
	if a := args.Get(0); a != nil {
		res = a.(*application.WalletConfig)
	}
	return res, args.Error(1)
}

func (m *mockConfigService) NewOfflineWalletConfig(
	descriptor string,
) (*application.WalletConfig, error) {
	args := m.Called(descriptor)

	var res *application.WalletConfig
	if a := args.Get(0); a != nil {
		res = a.(*application.WalletConfig)
	}
	return res, args.Error(1)
}

func (m *mockConfigService) CheckClient(
	ctx context.Context, network domain.Network, nodeAddress string,
) error {
	args := m.Called(ctx, network, nodeAddress)
	return args.Error(0)
}

func TestNodeMonitorProbe(t *testing.T) {
	ctx := context.Background()
	node := domain.DefaultTestnetNode

	t.Run("reachable", func(t *testing.T) {
		svc := &mockConfigService{}
		svc.On("CheckClient", mock.Anything, domain.NetworkTest, node).Return(nil)

		m := newNodeMonitor(svc, domain.NetworkTest, node, time.Second)
		require.NoError(t, m.probe(ctx))
		svc.AssertNumberOfCalls(t, "CheckClient", 1)
	})

	t.Run("breaker_opens", func(t *testing.T) {
		svc := &mockConfigService{}
		svc.On("CheckClient", mock.Anything, domain.NetworkTest, node).
			Return(domain.NewError(domain.ErrKindNetwork, "connection refused"))

		m := newNodeMonitor(svc, domain.NetworkTest, node, time.Second)
		for i := 0; i < circuitbreaker.MaxNumOfFailingRequests; i++ {
			err := m.probe(ctx)
			require.EqualError(t, err, "Network: connection refused")
		}

		err := m.probe(ctx)
		require.ErrorIs(t, err, gobreaker.ErrOpenState)
		svc.AssertNumberOfCalls(t, "CheckClient", circuitbreaker.MaxNumOfFailingRequests)
	})
}
