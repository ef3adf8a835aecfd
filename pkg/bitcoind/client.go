package bitcoind

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
)

// DefaultTimeout bounds every request when Config.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// Config holds the parameters for connecting to the JSON-RPC interface of
// a bitcoind node. Empty User and Password mean no authentication.
type Config struct {
	URL        string
	User       string
	Password   string
	Network    *chaincfg.Params
	WalletName string
	Timeout    time.Duration
}

// Client is a connection to the wallet endpoint of a bitcoind node. Every
// request is a single HTTP POST, failures are not retried.
type Client struct {
	http       *http.Client
	endpoint   string
	user       string
	password   string
	walletName string
	version    int32
	nextID     uint64
}

// NewClient connects to the node, makes sure the named watch-only wallet
// is loaded and that the node runs on the requested network.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.WalletName == "" {
		return nil, ErrMissingWalletName
	}
	chain, err := chainName(cfg.Network)
	if err != nil {
		return nil, err
	}
	endpoint, err := walletEndpoint(cfg.URL, cfg.WalletName)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &Client{
		http:       &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		user:       cfg.User,
		password:   cfg.Password,
		walletName: cfg.WalletName,
	}
	if err := client.init(ctx, chain); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// WalletName returns the name of the node wallet the client is bound to.
func (c *Client) WalletName() string {
	return c.walletName
}

// Version returns the version of the node software.
func (c *Client) Version() int32 {
	return c.version
}

// GetHeight returns the number of blocks of the node's best chain.
func (c *Client) GetHeight(ctx context.Context) (int64, error) {
	var height int64
	if err := c.call(ctx, "getblockcount", &height); err != nil {
		return -1, err
	}
	return height, nil
}

// EstimateFee returns the fee rate in BTC/kvB for a transaction to be
// confirmed within target blocks.
func (c *Client) EstimateFee(ctx context.Context, target int) (float64, error) {
	var res btcjson.EstimateSmartFeeResult
	if err := c.call(ctx, "estimatesmartfee", &res, target); err != nil {
		return -1, err
	}
	if res.FeeRate == nil {
		if len(res.Errors) > 0 {
			return -1, fmt.Errorf(
				"%w: %s", ErrFeeRateUnavailable, strings.Join(res.Errors, ", "),
			)
		}
		return -1, ErrFeeRateUnavailable
	}
	return *res.FeeRate, nil
}

// Close releases idle connections to the node.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) init(ctx context.Context, chain string) error {
	var networkInfo btcjson.GetNetworkInfoResult
	if err := c.call(ctx, "getnetworkinfo", &networkInfo); err != nil {
		return err
	}
	c.version = networkInfo.Version

	if err := c.loadWallet(ctx); err != nil {
		return err
	}

	var blockchainInfo btcjson.GetBlockChainInfoResult
	if err := c.call(ctx, "getblockchaininfo", &blockchainInfo); err != nil {
		return err
	}
	if blockchainInfo.Chain != chain {
		return &InvalidNetworkError{chain, blockchainInfo.Chain}
	}
	return nil
}

func (c *Client) loadWallet(ctx context.Context) error {
	var loaded []string
	if err := c.call(ctx, "listwallets", &loaded); err != nil {
		return err
	}
	for _, name := range loaded {
		if name == c.walletName {
			log.Debugf("bitcoind: wallet %s already loaded", c.walletName)
			return nil
		}
	}

	var walletDir struct {
		Wallets []struct {
			Name string `json:"name"`
		} `json:"wallets"`
	}
	if err := c.call(ctx, "listwalletdir", &walletDir); err != nil {
		return err
	}
	for _, w := range walletDir.Wallets {
		if w.Name == c.walletName {
			log.Debugf("bitcoind: loading wallet %s", c.walletName)
			return c.call(ctx, "loadwallet", nil, c.walletName)
		}
	}

	log.Debugf("bitcoind: creating watch-only wallet %s", c.walletName)
	return c.call(ctx, "createwallet", nil, c.walletName, true)
}

// call sends a JSON-RPC 1.0 request and decodes its result into result, if
// not nil. Transport failures are returned as *IOError, errors reported by
// the node as *btcjson.RPCError.
func (c *Client) call(
	ctx context.Context, method string, result interface{}, params ...interface{},
) error {
	id := atomic.AddUint64(&c.nextID, 1)
	rpcReq, err := btcjson.NewRequest(btcjson.RpcVersion1, id, method, params)
	if err != nil {
		return err
	}
	body, err := json.Marshal(rpcReq)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.endpoint, bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.user != "" || c.password != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(err)
	}

	// bitcoind reports rpc errors with a non 2xx status and a json body,
	// anything else that is not json (ie. 401) is returned as is.
	var rpcResp btcjson.Response
	if err := json.Unmarshal(buf, &rpcResp); err != nil {
		return fmt.Errorf(
			"status code: %d, response: %q", resp.StatusCode, string(buf),
		)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("%s: unmarshal: %w", method, err)
	}
	return nil
}

// walletEndpoint returns the url of the rpc endpoint of the named wallet.
func walletEndpoint(rawURL, walletName string) (string, error) {
	endpoint, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return "", fmt.Errorf("invalid url: unsupported scheme %q", endpoint.Scheme)
	}
	if endpoint.Host == "" {
		return "", fmt.Errorf("invalid url: missing host")
	}

	endpoint.Path = fmt.Sprintf(
		"%s/wallet/%s", strings.TrimSuffix(endpoint.Path, "/"), walletName,
	)
	endpoint.RawQuery = ""
	return endpoint.String(), nil
}

func chainName(params *chaincfg.Params) (string, error) {
	if params == nil {
		return "", ErrUnsupportedNetwork
	}
	switch params.Net {
	case chaincfg.MainNetParams.Net:
		return "main", nil
	case chaincfg.TestNet3Params.Net:
		return "test", nil
	case chaincfg.RegressionNetParams.Net:
		return "regtest", nil
	case chaincfg.SigNetParams.Net:
		return "signet", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedNetwork, params.Name)
	}
}
