package electrum

import "context"

// ServerVersion negotiates the protocol version and returns the server
// software and protocol version.
func (c *Client) ServerVersion(ctx context.Context) ([]string, error) {
	var version []string
	if err := c.Call(
		ctx, "server.version", []interface{}{clientName, protocolVersion}, &version,
	); err != nil {
		return nil, err
	}
	return version, nil
}

// Ping checks the server is still responsive.
func (c *Client) Ping(ctx context.Context) error {
	return c.Call(ctx, "server.ping", nil, nil)
}

// GetHeight returns the height of the server's chain tip.
func (c *Client) GetHeight(ctx context.Context) (int64, error) {
	var tip HeaderNotification
	if err := c.Call(ctx, "blockchain.headers.subscribe", nil, &tip); err != nil {
		return -1, err
	}
	return tip.Height, nil
}

// EstimateFee returns the fee rate in BTC/kvB for a transaction to be
// confirmed within target blocks.
func (c *Client) EstimateFee(ctx context.Context, target int) (float64, error) {
	var fee float64
	if err := c.Call(
		ctx, "blockchain.estimatefee", []interface{}{target}, &fee,
	); err != nil {
		return -1, err
	}
	if fee < 0 {
		return -1, ErrFeeUnavailable
	}
	return fee, nil
}
