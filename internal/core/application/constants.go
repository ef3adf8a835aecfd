package application

import "time"

const (
	relayRetry   = 1
	relayTimeout = 5 * time.Second
	relayStopGap = 1000

	// pingWalletName is the placeholder full node wallet used by health
	// probes.
	pingWalletName = "ping"
	// probeFeeTarget is the confirmation target of the health probe fee
	// estimation.
	probeFeeTarget = 1
)
