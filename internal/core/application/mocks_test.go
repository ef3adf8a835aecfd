package application_test

import (
	"context"

	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/stackmate/walletcfg/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// **** Blockchain client factory ****

type mockClientFactory struct {
	mock.Mock
}

func (m *mockClientFactory) NewRelayClient(
	ctx context.Context, cfg ports.RelayConfig,
) (ports.BlockchainClient, error) {
	args := m.Called(ctx, cfg)

	var res ports.BlockchainClient
	if a := args.Get(0); a != nil {
		res = a.(ports.BlockchainClient)
	}
	return res, args.Error(1)
}

func (m *mockClientFactory) NewFullNodeClient(
	ctx context.Context, cfg ports.FullNodeConfig,
) (ports.BlockchainClient, error) {
	args := m.Called(ctx, cfg)

	var res ports.BlockchainClient
	if a := args.Get(0); a != nil {
		res = a.(ports.BlockchainClient)
	}
	return res, args.Error(1)
}

func (m *mockClientFactory) WalletName(
	desc, changeDesc string, network domain.Network,
) (string, error) {
	args := m.Called(desc, changeDesc, network)
	return args.String(0), args.Error(1)
}

// **** Blockchain client ****

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Backend() ports.Backend {
	args := m.Called()
	return args.Get(0).(ports.Backend)
}

func (m *mockClient) GetHeight(ctx context.Context) (uint32, error) {
	args := m.Called(ctx)

	var res uint32
	if a := args.Get(0); a != nil {
		res = a.(uint32)
	}
	return res, args.Error(1)
}

func (m *mockClient) EstimateFee(
	ctx context.Context, target int,
) (ports.FeeRate, error) {
	args := m.Called(ctx, target)

	var res ports.FeeRate
	if a := args.Get(0); a != nil {
		res = a.(ports.FeeRate)
	}
	return res, args.Error(1)
}

func (m *mockClient) Close() {
	m.Called()
}
