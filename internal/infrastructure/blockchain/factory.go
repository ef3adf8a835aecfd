package blockchain

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/stackmate/walletcfg/internal/core/ports"
	"github.com/stackmate/walletcfg/pkg/bitcoind"
	"github.com/stackmate/walletcfg/pkg/descriptor"
	"github.com/stackmate/walletcfg/pkg/electrum"
)

var vbytesPerKvB = decimal.NewFromInt(1000)

type clientFactory struct{}

// NewClientFactory returns the electrum/bitcoind implementation of the
// BlockchainClientFactory port.
func NewClientFactory() ports.BlockchainClientFactory {
	return clientFactory{}
}

func (clientFactory) NewRelayClient(
	ctx context.Context, cfg ports.RelayConfig,
) (ports.BlockchainClient, error) {
	client, err := electrum.NewClient(ctx, electrum.Config{
		URL:     cfg.URL,
		Socks5:  cfg.Socks5,
		Retry:   cfg.Retry,
		Timeout: cfg.Timeout,
		StopGap: cfg.StopGap,
	})
	if err != nil {
		return nil, err
	}
	return &electrumClient{client}, nil
}

func (clientFactory) NewFullNodeClient(
	ctx context.Context, cfg ports.FullNodeConfig,
) (ports.BlockchainClient, error) {
	client, err := bitcoind.NewClient(ctx, bitcoind.Config{
		URL:        cfg.URL,
		User:       cfg.Credentials.Username,
		Password:   cfg.Credentials.Password,
		Network:    cfg.Network.Params(),
		WalletName: cfg.WalletName,
	})
	if err != nil {
		return nil, err
	}
	return &bitcoindClient{client}, nil
}

func (clientFactory) WalletName(
	desc, changeDesc string, network domain.Network,
) (string, error) {
	return descriptor.WalletName(desc, changeDesc, network.Params())
}

// feeRateFromBTCPerKvB converts a fee rate in BTC/kvB, as returned by both
// backends, to sat/vB.
func feeRateFromBTCPerKvB(btcPerKvB float64) (ports.FeeRate, error) {
	satsPerKvB, err := btcutil.NewAmount(btcPerKvB)
	if err != nil {
		return ports.FeeRate{}, err
	}
	return ports.FeeRate{
		SatPerVByte: decimal.NewFromInt(int64(satsPerKvB)).Div(vbytesPerKvB),
	}, nil
}
