package blockchain

import (
	"context"

	"github.com/stackmate/walletcfg/internal/core/ports"
	"github.com/stackmate/walletcfg/pkg/bitcoind"
)

type bitcoindClient struct {
	client *bitcoind.Client
}

func (b *bitcoindClient) Backend() ports.Backend {
	return ports.BackendRPC
}

func (b *bitcoindClient) GetHeight(ctx context.Context) (uint32, error) {
	height, err := b.client.GetHeight(ctx)
	if err != nil {
		return 0, err
	}
	return uint32(height), nil
}

func (b *bitcoindClient) EstimateFee(
	ctx context.Context, target int,
) (ports.FeeRate, error) {
	fee, err := b.client.EstimateFee(ctx, target)
	if err != nil {
		return ports.FeeRate{}, err
	}
	return feeRateFromBTCPerKvB(fee)
}

func (b *bitcoindClient) Close() {
	b.client.Close()
}
