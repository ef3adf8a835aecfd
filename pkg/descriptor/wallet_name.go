package descriptor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

var (
	// ErrUnbalancedDescriptor is returned for descriptors whose brackets
	// don't match.
	ErrUnbalancedDescriptor = errors.New("descriptor has unbalanced brackets")
	// ErrKeyNetworkMismatch is returned when an extended key doesn't belong
	// to the requested network.
	ErrKeyNetworkMismatch = errors.New("extended key is not valid for network")

	extendedKeyRegexp = regexp.MustCompile(`[xt]p(?:ub|rv)[1-9A-HJ-NP-Za-km-z]*`)
	hardenedRegexp    = regexp.MustCompile(`/([0-9]+)[hH]`)
)

// WalletName returns the canonical name of the wallet watching the given
// descriptors, made of the checksum of the canonical form of the
// descriptor followed by that of the change one, if any.
func WalletName(
	desc, changeDesc string, params *chaincfg.Params,
) (string, error) {
	name, err := canonicalChecksum(desc, params)
	if err != nil {
		return "", err
	}
	if changeDesc == "" {
		return name, nil
	}

	changeName, err := canonicalChecksum(changeDesc, params)
	if err != nil {
		return "", err
	}
	return name + changeName, nil
}

// Canonicalize verifies the descriptor for the given network and returns it
// with public keys only and ' as hardened marker.
func Canonicalize(desc string, params *chaincfg.Params) (string, error) {
	body, err := SplitChecksum(desc)
	if err != nil {
		return "", err
	}
	if err := checkBrackets(body); err != nil {
		return "", err
	}
	body = hardenedRegexp.ReplaceAllString(body, "/$1'")

	var keyErr error
	canonical := extendedKeyRegexp.ReplaceAllStringFunc(body, func(k string) string {
		if keyErr != nil {
			return k
		}
		pubkey, err := publicExtendedKey(k, params)
		if err != nil {
			keyErr = err
			return k
		}
		return pubkey
	})
	if keyErr != nil {
		return "", keyErr
	}
	return canonical, nil
}

func canonicalChecksum(desc string, params *chaincfg.Params) (string, error) {
	canonical, err := Canonicalize(desc, params)
	if err != nil {
		return "", err
	}
	return Checksum(canonical)
}

func publicExtendedKey(k string, params *chaincfg.Params) (string, error) {
	key, err := hdkeychain.NewKeyFromString(k)
	if err != nil {
		return "", fmt.Errorf("invalid extended key %s: %w", abbreviate(k), err)
	}
	if !key.IsForNet(params) {
		return "", fmt.Errorf("%w %s", ErrKeyNetworkMismatch, params.Name)
	}

	var pubkey *btcec.PublicKey
	if pubkey, err = key.ECPubKey(); err != nil {
		return "", fmt.Errorf("invalid extended key %s: %w", abbreviate(k), err)
	}
	if !pubkey.IsOnCurve() {
		return "", fmt.Errorf("invalid extended key %s: not on curve", abbreviate(k))
	}

	if !key.IsPrivate() {
		return k, nil
	}
	neutered, err := key.Neuter()
	if err != nil {
		return "", err
	}
	return neutered.String(), nil
}

func checkBrackets(desc string) error {
	stack := make([]byte, 0, 8)
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	for i := 0; i < len(desc); i++ {
		switch c := desc[i]; c {
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[c] {
				return ErrUnbalancedDescriptor
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return ErrUnbalancedDescriptor
	}
	return nil
}

func abbreviate(k string) string {
	if len(k) <= 12 {
		return k
	}
	return strings.Join([]string{k[:8], k[len(k)-4:]}, "...")
}
