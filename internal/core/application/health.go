package application

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/stackmate/walletcfg/internal/core/ports"
)

func (s *configService) CheckClient(
	ctx context.Context, network domain.Network, nodeAddress string,
) (err error) {
	address := domain.ResolveNodeAddress(nodeAddress, network)
	endpoint := domain.ParseNodeEndpoint(address)
	defer func() { countProbe(endpoint.Protocol, err) }()

	var backendCfg ports.BackendConfig
	switch endpoint.Protocol {
	case domain.ProtocolRelay:
		backendCfg = relayConfig(endpoint.Address, "")
	case domain.ProtocolFullNodeRPC:
		cfg, err := pingConfig(endpoint.Address, network)
		if err != nil {
			return err
		}
		backendCfg = cfg
	default:
		return domain.ErrInvalidNodeAddress
	}

	client, err := s.createBlockchainClient(ctx, backendCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	feeRate, err := client.EstimateFee(ctx, probeFeeTarget)
	if err != nil {
		return classifyError(err)
	}

	log.WithFields(log.Fields{
		"node":     endpoint.Address,
		"fee_rate": feeRate,
	}).Debug("node is alive")
	return nil
}
