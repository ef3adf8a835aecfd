package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/stackmate/walletcfg/internal/core/ports"
)

// relayConfig returns the electrum config for the given url. Dialing and
// requests are bounded by a timeout only for direct connections.
func relayConfig(url, socks5 string) ports.RelayConfig {
	cfg := ports.RelayConfig{
		URL:     url,
		Socks5:  socks5,
		Retry:   relayRetry,
		StopGap: relayStopGap,
	}
	if socks5 == "" {
		cfg.Timeout = relayTimeout
	}
	return cfg
}

func (s *configService) fullNodeConfig(
	address, descriptor, changeDescriptor string, network domain.Network,
) (ports.FullNodeConfig, error) {
	url, credentials, err := domain.ParseAuth(address)
	if err != nil {
		return ports.FullNodeConfig{}, err
	}

	walletName, err := s.clientFactory.WalletName(
		descriptor, changeDescriptor, network,
	)
	if err != nil {
		return ports.FullNodeConfig{}, domain.NewError(
			domain.ErrKindInternal, err.Error(),
		)
	}

	return ports.FullNodeConfig{
		URL:         url,
		Credentials: credentials,
		Network:     network,
		WalletName:  walletName,
	}, nil
}

// pingConfig is the full node config used by health probes.
func pingConfig(
	address string, network domain.Network,
) (ports.FullNodeConfig, error) {
	url, credentials, err := domain.ParseAuth(address)
	if err != nil {
		return ports.FullNodeConfig{}, err
	}
	return ports.FullNodeConfig{
		URL:         url,
		Credentials: credentials,
		Network:     network,
		WalletName:  pingWalletName,
	}, nil
}

// createBlockchainClient is the single entry point for building a client
// out of a backend config. Failures are classified.
func (s *configService) createBlockchainClient(
	ctx context.Context, cfg ports.BackendConfig,
) (ports.BlockchainClient, error) {
	var (
		client ports.BlockchainClient
		err    error
	)

	switch c := cfg.(type) {
	case ports.RelayConfig:
		client, err = s.clientFactory.NewRelayClient(ctx, c)
	case ports.FullNodeConfig:
		log.WithFields(log.Fields{
			"url":         c.URL,
			"auth":        redactedCredentials(c.Credentials),
			"network":     c.Network,
			"wallet_name": c.WalletName,
			"skip_blocks": c.SkipBlocks,
		}).Debug("creating full node client")
		client, err = s.clientFactory.NewFullNodeClient(ctx, c)
	default:
		return nil, domain.NewError(
			domain.ErrKindInternal, fmt.Sprintf("unknown backend config %T", cfg),
		)
	}
	if err != nil {
		return nil, classifyError(err)
	}
	return client, nil
}

func redactedCredentials(c domain.Credentials) string {
	if c.IsEmpty() {
		return "none"
	}
	return c.Username + ":***"
}
