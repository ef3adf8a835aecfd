package blockchain

import (
	"context"

	"github.com/stackmate/walletcfg/internal/core/ports"
	"github.com/stackmate/walletcfg/pkg/electrum"
)

type electrumClient struct {
	client *electrum.Client
}

func (e *electrumClient) Backend() ports.Backend {
	return ports.BackendElectrum
}

func (e *electrumClient) GetHeight(ctx context.Context) (uint32, error) {
	height, err := e.client.GetHeight(ctx)
	if err != nil {
		return 0, err
	}
	return uint32(height), nil
}

func (e *electrumClient) EstimateFee(
	ctx context.Context, target int,
) (ports.FeeRate, error) {
	fee, err := e.client.EstimateFee(ctx, target)
	if err != nil {
		return ports.FeeRate{}, err
	}
	return feeRateFromBTCPerKvB(fee)
}

func (e *electrumClient) Close() {
	e.client.Close()
}
