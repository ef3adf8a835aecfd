package electrum

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"
)

const (
	sslScheme = "ssl://"
	tcpScheme = "tcp://"

	clientName      = "walletcfg"
	protocolVersion = "1.4"
)

// Config holds the parameters for connecting to an electrum server.
type Config struct {
	// URL is the server address, prefixed by ssl:// for TLS or tcp:// (or
	// nothing) for plain TCP.
	URL string
	// Socks5 is an optional host:port of a SOCKS5 proxy.
	Socks5 string
	// Retry is the number of extra connection attempts before giving up.
	Retry uint8
	// Timeout bounds dialing and each request. Zero means none.
	Timeout time.Duration
	// StopGap is the number of unused addresses a wallet syncing through
	// this client scans ahead. The client only carries it.
	StopGap uint64
}

// Client is a connection to an electrum server speaking newline delimited
// JSON-RPC. Calls are serialized.
type Client struct {
	cfg Config

	lock   *sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	nextID uint64
	closed bool
	// failure is the error that broke the connection, if any.
	failure error

	serverSoftware string
}

// NewClient connects to the server described by cfg and negotiates the
// protocol version.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	host, useTLS, err := parseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	attempts := int(cfg.Retry) + 1
	for i := 0; i < attempts; i++ {
		var conn net.Conn
		conn, err = dial(ctx, cfg, host, useTLS)
		if err != nil {
			log.WithError(err).Debugf(
				"electrum: connection attempt %d/%d to %s failed", i+1, attempts, host,
			)
			continue
		}

		client := &Client{
			cfg:    cfg,
			lock:   &sync.Mutex{},
			conn:   conn,
			reader: bufio.NewReader(conn),
		}
		var version []string
		if version, err = client.ServerVersion(ctx); err != nil {
			client.Close()
			continue
		}
		if len(version) > 0 {
			client.serverSoftware = version[0]
		}
		return client, nil
	}
	return nil, err
}

// StopGap returns the lookahead window the client was configured with.
func (c *Client) StopGap() uint64 {
	return c.cfg.StopGap
}

// ServerSoftware returns the software version announced by the server.
func (c *Client) ServerSoftware() string {
	return c.serverSoftware
}

// Close closes the connection with the server.
func (c *Client) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

// Call sends a request and decodes its result into result, if not nil.
// Notifications received in the meantime are discarded.
// An I/O failure or an out of sync response closes the client, later calls
// fail with an *IOError wrapping ErrClosed.
func (c *Client) Call(
	ctx context.Context, method string, params []interface{}, result interface{},
) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		if c.failure != nil {
			return &IOError{fmt.Errorf("%w: %s", ErrClosed, c.failure)}
		}
		return ErrClosed
	}
	if params == nil {
		params = []interface{}{}
	}

	c.nextID++
	id := c.nextID
	buf, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	if err := c.setDeadline(ctx); err != nil {
		return c.fail(&IOError{err})
	}
	defer c.conn.SetDeadline(time.Time{})

	if _, err := c.conn.Write(append(buf, '\n')); err != nil {
		return c.fail(&IOError{err})
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return c.fail(&IOError{err})
		}

		var resp response
		if err := json.Unmarshal(line, &resp); err != nil {
			return c.fail(&ProtocolError{fmt.Sprintf("invalid response: %s", err)})
		}
		if resp.ID == nil {
			if resp.Method == "" {
				return c.fail(&ProtocolError{"response without id"})
			}
			continue
		}
		if *resp.ID != id {
			return c.fail(&ProtocolError{
				fmt.Sprintf("unexpected response id %d, want %d", *resp.ID, id),
			})
		}
		if err := resp.err(); err != nil {
			return err
		}
		if result == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return &ProtocolError{fmt.Sprintf("invalid %s result: %s", method, err)}
		}
		return nil
	}
}

// fail closes the connection, whose stream can't be trusted anymore, and
// returns err. Must be called with the lock held.
func (c *Client) fail(err error) error {
	c.closed = true
	c.failure = err
	c.conn.Close()
	return err
}

func (c *Client) setDeadline(ctx context.Context) error {
	var deadline time.Time
	if c.cfg.Timeout > 0 {
		deadline = time.Now().Add(c.cfg.Timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	return c.conn.SetDeadline(deadline)
}

func parseURL(url string) (string, bool, error) {
	host, useTLS := url, false
	switch {
	case strings.HasPrefix(url, sslScheme):
		host, useTLS = strings.TrimPrefix(url, sslScheme), true
	case strings.HasPrefix(url, tcpScheme):
		host = strings.TrimPrefix(url, tcpScheme)
	}
	if _, _, err := net.SplitHostPort(host); err != nil {
		return "", false, fmt.Errorf("%w: %s", ErrInvalidURL, err)
	}
	return host, useTLS, nil
}

func dial(
	ctx context.Context, cfg Config, host string, useTLS bool,
) (net.Conn, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	conn, err := dialTCP(ctx, cfg.Socks5, host)
	if err != nil {
		return nil, &IOError{err}
	}
	if !useTLS {
		return conn, nil
	}

	serverName, _, _ := net.SplitHostPort(host)
	tlsConn := tls.Client(conn, &tls.Config{ServerName: serverName})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, &IOError{err}
	}
	return tlsConn, nil
}

func dialTCP(ctx context.Context, socks5, host string) (net.Conn, error) {
	direct := &net.Dialer{}
	if socks5 == "" {
		return direct.DialContext(ctx, "tcp", host)
	}

	socks5 = strings.TrimPrefix(strings.TrimPrefix(socks5, "socks5://"), "socks5h://")
	dialer, err := proxy.SOCKS5("tcp", socks5, nil, direct)
	if err != nil {
		return nil, err
	}
	if d, ok := dialer.(proxy.ContextDialer); ok {
		return d.DialContext(ctx, "tcp", host)
	}
	return dialer.Dial("tcp", host)
}
