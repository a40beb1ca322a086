package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jpillora/backoff"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/russcam/elastic/api"
	"github.com/russcam/elastic/codec"
	"github.com/russcam/elastic/pool"
	"github.com/russcam/elastic/transport"
)

var Logger = logger.GetLogger("client")

// Client is the high-level document store client. It owns the pool
// handle and the fixed set of persistent connections bootstrapped from
// the configured addresses, and exposes typed operations on top of the
// submission API.
//
// A Client is safe for concurrent use by any number of goroutines.
type Client struct {
	config api.ClientConfig
	handle *pool.Handle
	conns  *xsync.MapOf[uint64, *transport.Conn]
}

// New bootstraps the pool: it connects ConnectionsPerAddress persistent
// connections to every configured address and registers each one with a
// shared handle. An address that cannot be reached is logged and
// skipped; New fails only when no connection at all could be made.
func New(config api.ClientConfig, connector transport.IEngineConnector) (*Client, error) {
	if len(config.Addresses) == 0 {
		config.Addresses = []string{api.DefaultAddress}
	}

	api.InitLoggers(config)

	c := &Client{
		config: config,
		handle: pool.NewHandle(),
		conns:  xsync.NewMapOf[uint64, *transport.Conn](),
	}

	perAddr := max(1, config.ConnectionsPerAddress)
	want := len(config.Addresses) * perAddr
	var id uint64

	for _, addr := range config.Addresses {
		for i := 0; i < perAddr; i++ {
			conn, err := transport.Connect(addr, c.handle, connector, config)
			if err != nil {
				Logger.Warningf("failed to connect to %s (connection %d/%d): %v", addr, i+1, perAddr, err)
				continue
			}
			id++
			c.conns.Store(id, conn)
		}
	}

	if c.conns.Size() == 0 {
		return nil, fmt.Errorf("failed to connect to any address")
	}

	Logger.Infof("connected %d out of %d connections to %d addresses using %s transport",
		c.conns.Size(), want, len(config.Addresses), connector.GetName())

	return c, nil
}

// NewLocalhost bootstraps a client against a single node running on the
// local machine at the default port.
func NewLocalhost(connector transport.IEngineConnector) (*Client, error) {
	return New(api.ClientConfig{Addresses: []string{api.DefaultAddress}}, connector)
}

// Handle returns the underlying submission handle for callers that want
// to push raw messages.
func (c *Client) Handle() *pool.Handle {
	return c.handle
}

// Close shuts every connection down. Operations still queued when the
// last connection exits are never claimed; pending futures for them
// resolve only if a connection claimed them before closing.
func (c *Client) Close() {
	c.conns.Range(func(id uint64, conn *transport.Conn) bool {
		conn.Close()
		c.conns.Delete(id)
		return true
	})
}

// --------------------------------------------------------------------------
// Typed Operations
// --------------------------------------------------------------------------

// Ping checks that the cluster answers on at least one connection.
func (c *Client) Ping() error {
	_, err := c.do(api.NewPingRequest())
	return err
}

// Index creates or replaces a document. The document is JSON-encoded.
func (c *Client) Index(index, id string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = c.do(api.NewIndexRequest(index, id, body))
	return err
}

// SendIndex indexes a document fire-and-forget: the operation is queued
// and the call returns immediately. The caller is never notified of
// completion or failure.
func (c *Client) SendIndex(index, id string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	c.handle.Send(api.NewIndexRequest(index, id, body))
	return nil
}

// Get fetches a document source by id. The boolean reports whether the
// document was found.
func (c *Client) Get(index, id string) ([]byte, bool, error) {
	resp, err := c.do(api.NewGetRequest(index, id))
	if err != nil {
		return nil, false, err
	}
	return resp.Body, resp.Found, nil
}

// Delete removes a document by id. The boolean reports whether the
// document existed.
func (c *Client) Delete(index, id string) (bool, error) {
	resp, err := c.do(api.NewDeleteRequest(index, id))
	if err != nil {
		return false, err
	}
	return resp.Found, nil
}

// Search executes a query against an index (or all indices when index is
// empty) and returns the raw response body.
func (c *Client) Search(index string, query []byte) ([]byte, error) {
	resp, err := c.do(api.NewSearchRequest(index, query))
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Bulk executes a batch of operations in one request and returns the raw
// response body.
func (c *Client) Bulk(index string, ops ...codec.BulkOp) ([]byte, error) {
	body, err := codec.BulkBody(ops...)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(api.NewBulkRequest(index, body))
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// do submits a message, awaits its future and retries when the claiming
// connection was lost mid-flight. Each retry is a fresh submission - the
// pool itself never re-queues a claimed operation.
func (c *Client) do(msg *api.Message) (*api.Message, error) {
	b := &backoff.Backoff{
		Factor: 2,
		Jitter: true,
		Min:    50 * time.Millisecond,
		Max:    1 * time.Second,
	}

	retries := max(1, c.config.RetryCount)
	var lastErr error

	for i := 0; i < retries; i++ {
		resp, err := c.await(c.handle.Request(msg))
		if err == nil {
			if resp.MsgType == api.MsgTError || resp.Err != "" {
				return nil, fmt.Errorf("%s failed: %s", msg.MsgType, resp.Err)
			}
			return resp, nil
		}

		if !errors.Is(err, pool.ErrConnectionLost) {
			return nil, err
		}

		lastErr = err
		d := b.Duration()
		Logger.Debugf("%s attempt %d/%d lost its connection, retrying in %s", msg.MsgType, i+1, retries, d)
		time.Sleep(d)
	}

	return nil, fmt.Errorf("%s failed after %d attempts: %v", msg.MsgType, retries, lastErr)
}

// await waits on a future with the configured request timeout.
func (c *Client) await(f *pool.Future) (*api.Message, error) {
	ctx := context.Background()
	if c.config.TimeoutSecond > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.config.TimeoutSecond)*time.Second)
		defer cancel()
	}
	return f.Wait(ctx)
}
