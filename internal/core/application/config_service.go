package application

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/stackmate/walletcfg/internal/core/ports"
)

// WalletConfig is the result of resolving a descriptor and a node address.
// Client is nil only for configs resolved offline.
type WalletConfig struct {
	DepositDescriptor string
	ChangeDescriptor  string
	Network           domain.Network
	Client            ports.BlockchainClient
}

// IsOffline returns whether the config has no blockchain client.
func (c *WalletConfig) IsOffline() bool {
	return c.Client == nil
}

// Close releases the blockchain client, if any.
func (c *WalletConfig) Close() {
	if c.Client != nil {
		c.Client.Close()
		c.Client = nil
	}
}

// ConfigService resolves wallet configurations and checks the liveness of
// blockchain backends. Every error returned is a *domain.Error.
type ConfigService interface {
	// NewWalletConfig derives the deposit and change descriptors, infers the
	// network and connects to the backend at nodeAddress, optionally through
	// the given SOCKS5 proxy.
	NewWalletConfig(
		ctx context.Context, descriptor, nodeAddress, socks5 string,
	) (*WalletConfig, error)
	// NewOfflineWalletConfig is like NewWalletConfig without connecting to
	// any backend.
	NewOfflineWalletConfig(descriptor string) (*WalletConfig, error)
	// CheckClient connects to the backend at nodeAddress with a throwaway
	// client and estimates the fee for a 1 block target.
	CheckClient(ctx context.Context, network domain.Network, nodeAddress string) error
}

type configService struct {
	clientFactory ports.BlockchainClientFactory
}

// NewConfigService returns a ConfigService building clients with the given
// factory.
func NewConfigService(
	clientFactory ports.BlockchainClientFactory,
) ConfigService {
	return &configService{clientFactory}
}

func (s *configService) NewWalletConfig(
	ctx context.Context, descriptor, nodeAddress, socks5 string,
) (*WalletConfig, error) {
	config := newOfflineWalletConfig(descriptor)
	address := domain.ResolveNodeAddress(nodeAddress, config.Network)
	endpoint := domain.ParseNodeEndpoint(address)

	logger := log.WithFields(log.Fields{
		"resolution": uuid.NewString(),
		"network":    config.Network,
		"protocol":   endpoint.Protocol,
	})
	logger.Debug("resolving wallet config")

	var backendCfg ports.BackendConfig
	switch endpoint.Protocol {
	case domain.ProtocolRelay:
		backendCfg = relayConfig(endpoint.Address, socks5)
	case domain.ProtocolFullNodeRPC:
		cfg, err := s.fullNodeConfig(
			endpoint.Address, descriptor, config.ChangeDescriptor, config.Network,
		)
		if err != nil {
			countResolution(endpoint.Protocol, err)
			return nil, err
		}
		backendCfg = cfg
	default:
		countResolution(endpoint.Protocol, domain.ErrInvalidNodeAddress)
		return nil, domain.ErrInvalidNodeAddress
	}

	client, err := s.createBlockchainClient(ctx, backendCfg)
	countResolution(endpoint.Protocol, err)
	if err != nil {
		logger.WithError(err).Debug("failed to create blockchain client")
		return nil, err
	}

	config.Client = client
	logger.Debug("wallet config resolved")
	return config, nil
}

func (s *configService) NewOfflineWalletConfig(
	descriptor string,
) (*WalletConfig, error) {
	return newOfflineWalletConfig(descriptor), nil
}

func newOfflineWalletConfig(descriptor string) *WalletConfig {
	derived := domain.DeriveDescriptors(descriptor)
	return &WalletConfig{
		DepositDescriptor: derived.Deposit,
		ChangeDescriptor:  derived.Change,
		Network:           domain.InferNetwork(descriptor),
	}
}
