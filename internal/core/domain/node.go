package domain

import "strings"

const (
	// DefaultNodeAddress is the sentinel replaced by the network's default
	// relay endpoint.
	DefaultNodeAddress = "default"
	// DefaultMainnetNode is the public relay used for mainnet wallets.
	DefaultMainnetNode = "ssl://electrum.blockstream.info:50002"
	// DefaultTestnetNode is the public relay used for testnet wallets.
	DefaultTestnetNode = "ssl://electrum.blockstream.info:60002"

	relayMarker    = "electrum"
	fullNodeMarker = "http"
	authDelimiter  = "?auth="
)

// Protocol is the wire protocol implied by the shape of a node address.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	ProtocolRelay
	ProtocolFullNodeRPC
)

func (p Protocol) String() string {
	switch p {
	case ProtocolRelay:
		return "electrum"
	case ProtocolFullNodeRPC:
		return "rpc"
	default:
		return "unknown"
	}
}

// NodeEndpoint is a node address together with the protocol used to reach
// it.
type NodeEndpoint struct {
	Address  string
	Protocol Protocol
}

// ResolveNodeAddress substitutes the sentinel address with the default
// endpoint for the given network. Any other address is returned as is.
func ResolveNodeAddress(address string, network Network) string {
	if !strings.Contains(address, DefaultNodeAddress) {
		return address
	}
	if network == NetworkMain {
		return DefaultMainnetNode
	}
	return DefaultTestnetNode
}

// ParseNodeEndpoint tags the address with its protocol. The relay marker
// wins over the http marker when both are present.
func ParseNodeEndpoint(address string) NodeEndpoint {
	protocol := ProtocolUnknown
	switch {
	case strings.Contains(address, relayMarker):
		protocol = ProtocolRelay
	case strings.Contains(address, fullNodeMarker):
		protocol = ProtocolFullNodeRPC
	}
	return NodeEndpoint{address, protocol}
}
