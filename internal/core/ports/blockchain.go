package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stackmate/walletcfg/internal/core/domain"
)

// Backend identifies the concrete implementation behind a BlockchainClient.
type Backend string

const (
	BackendElectrum Backend = "electrum"
	BackendRPC      Backend = "rpc"
)

// FeeRate is a fee rate expressed in satoshis per virtual byte.
type FeeRate struct {
	SatPerVByte decimal.Decimal
}

func (f FeeRate) String() string {
	return f.SatPerVByte.StringFixed(3) + " sat/vB"
}

// BlockchainClient is a live connection to a blockchain data backend.
// Implementations are not safe for concurrent use.
type BlockchainClient interface {
	// Backend returns the protocol the client speaks.
	Backend() Backend
	// GetHeight returns the height of the current chain tip.
	GetHeight(ctx context.Context) (uint32, error)
	// EstimateFee returns the fee rate needed for a tx to confirm within the
	// given number of blocks.
	EstimateFee(ctx context.Context, target int) (FeeRate, error)
	// Close releases the underlying connection.
	Close()
}

// BackendConfig is implemented by RelayConfig and FullNodeConfig.
type BackendConfig interface {
	Backend() Backend
}

// RelayConfig holds the parameters for connecting to an electrum relay.
type RelayConfig struct {
	URL string
	// Socks5 is the proxy address, empty for a direct connection.
	Socks5 string
	Retry  uint8
	// Timeout bounds dialing and every request. Zero means no timeout.
	Timeout time.Duration
	// StopGap is the address lookahead for wallet sync. It is handed to the
	// client as is, no sync happens at config resolution.
	StopGap uint64
}

func (RelayConfig) Backend() Backend { return BackendElectrum }

// FullNodeConfig holds the parameters for connecting to the JSON-RPC
// interface of a full node.
type FullNodeConfig struct {
	URL         string
	Credentials domain.Credentials
	Network     domain.Network
	WalletName  string
	// SkipBlocks is the block-skip hint for wallet sync. Resolution never
	// sets it and it is only reported in logs.
	SkipBlocks *uint32
}

func (FullNodeConfig) Backend() Backend { return BackendRPC }

// BlockchainClientFactory is the entry point of the blockchain client
// library.
type BlockchainClientFactory interface {
	NewRelayClient(ctx context.Context, cfg RelayConfig) (BlockchainClient, error)
	NewFullNodeClient(ctx context.Context, cfg FullNodeConfig) (BlockchainClient, error)
	// WalletName derives the canonical name of the full node wallet watching
	// the given pair of descriptors.
	WalletName(descriptor, changeDescriptor string, network domain.Network) (string, error)
}
