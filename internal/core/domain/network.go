package domain

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

const (
	extendedPubKeyMarker  = "xpub"
	extendedPrivKeyMarker = "xprv"
)

// Network identifies the namespace a wallet descriptor belongs to.
type Network int

const (
	NetworkTest Network = iota
	NetworkMain
)

// InferNetwork classifies a descriptor as mainnet if its raw text contains
// an extended public or private key marker anywhere, testnet otherwise.
// This is a lexical check only, the key material is never decoded here.
func InferNetwork(descriptor string) Network {
	if strings.Contains(descriptor, extendedPubKeyMarker) ||
		strings.Contains(descriptor, extendedPrivKeyMarker) {
		return NetworkMain
	}
	return NetworkTest
}

// Params returns the chain parameters used to validate keys and addresses
// of the network.
func (n Network) Params() *chaincfg.Params {
	if n == NetworkMain {
		return &chaincfg.MainNetParams
	}
	return &chaincfg.TestNet3Params
}

func (n Network) String() string {
	if n == NetworkMain {
		return "main"
	}
	return "test"
}

// ParseNetwork is the inverse of Network.String.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(name) {
	case "main", "mainnet", "bitcoin":
		return NetworkMain, nil
	case "test", "testnet":
		return NetworkTest, nil
	default:
		return NetworkTest, ErrUnknownNetwork
	}
}
