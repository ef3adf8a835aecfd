package application

import (
	"errors"

	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/stackmate/walletcfg/pkg/bitcoind"
	"github.com/stackmate/walletcfg/pkg/electrum"
)

// classifyError reduces a blockchain client error to a *domain.Error.
// Only I/O failures of either backend are network errors, the message is
// that of the wrapped error.
func classifyError(err error) *domain.Error {
	if err == nil {
		return nil
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var (
		electrumIOErr *electrum.IOError
		bitcoindIOErr *bitcoind.IOError
	)
	switch {
	case errors.As(err, &electrumIOErr):
		return domain.NewError(domain.ErrKindNetwork, electrumIOErr.Error())
	case errors.As(err, &bitcoindIOErr):
		return domain.NewError(domain.ErrKindNetwork, bitcoindIOErr.Error())
	default:
		return domain.NewError(domain.ErrKindInternal, err.Error())
	}
}
