package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/russcam/elastic/api"
	"github.com/russcam/elastic/codec"
	"github.com/russcam/elastic/transport"
)

// engineConnector implements the IEngineConnector interface for the
// document store's HTTP API
type engineConnector struct {
	codec codec.ICodec
}

// --------------------------------------------------------------------------
// Engine Connector Factory Method
// --------------------------------------------------------------------------

// NewEngineConnector creates a connector producing HTTP wire engines
// speaking the JSON API
func NewEngineConnector() transport.IEngineConnector {
	return &engineConnector{codec: codec.NewJSONCodec()}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IEngineConnector)
// --------------------------------------------------------------------------

func (c *engineConnector) GetName() string {
	return "http"
}

func (c *engineConnector) Connect(addr string, config api.ClientConfig) (transport.IEngine, error) {
	timeout := time.Duration(config.TimeoutSecond) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// Probe the address eagerly so a bootstrap failure surfaces here
	// rather than on the first dispatched operation.
	probe, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %v", addr, err)
	}
	if err := probe.Close(); err != nil {
		return nil, err
	}

	return &engine{
		base:  "http://" + addr,
		codec: c.codec,
		client: &http.Client{
			Transport: &http.Transport{
				// one persistent connection per engine
				MaxIdleConns:        1,
				MaxIdleConnsPerHost: 1,
				MaxConnsPerHost:     1,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// --------------------------------------------------------------------------
// Engine
// --------------------------------------------------------------------------

// engine drives one persistent HTTP connection to a single node
type engine struct {
	base   string
	codec  codec.ICodec
	client *http.Client
}

// Roundtrip performs one full request cycle. Only transport failures are
// returned as errors; a message that cannot be encoded resolves to an
// error response so a bad request does not tear the connection down.
func (e *engine) Roundtrip(ctx context.Context, msg *api.Message) (*api.Message, error) {
	method, path, body, err := e.codec.EncodeRequest(msg)
	if err != nil {
		return api.NewErrorResponse(err.Error()), nil
	}

	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, e.base+path, rd)
	if err != nil {
		return api.NewErrorResponse(err.Error()), nil
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", e.codec.ContentType(msg.MsgType))
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	out, err := e.codec.DecodeResponse(msg.MsgType, resp.StatusCode, respBody)
	if err != nil {
		return api.NewErrorResponse(err.Error()), nil
	}
	return out, nil
}

func (e *engine) Close() error {
	e.client.CloseIdleConnections()
	return nil
}
