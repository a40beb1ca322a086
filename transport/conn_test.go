package transport

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/russcam/elastic/api"
	"github.com/russcam/elastic/pool"
)

// --------------------------------------------------------------------------
// Test Engine
// --------------------------------------------------------------------------

// stubEngine answers every roundtrip via a pluggable handler so tests
// can script responses and failures without a live node
type stubEngine struct {
	handler func(msg *api.Message) (*api.Message, error)
	calls   atomic.Int64
	closed  atomic.Bool
}

func (e *stubEngine) Roundtrip(_ context.Context, msg *api.Message) (*api.Message, error) {
	e.calls.Add(1)
	return e.handler(msg)
}

func (e *stubEngine) Close() error {
	e.closed.Store(true)
	return nil
}

type stubConnector struct {
	engine  *stubEngine
	connErr error
}

func (c *stubConnector) Connect(_ string, _ api.ClientConfig) (IEngine, error) {
	if c.connErr != nil {
		return nil, c.connErr
	}
	return c.engine, nil
}

func (c *stubConnector) GetName() string {
	return "stub"
}

// echoEngine answers every request with a 200 ping response
func echoEngine() *stubEngine {
	return &stubEngine{handler: func(msg *api.Message) (*api.Message, error) {
		return api.NewPingResponse(200, nil), nil
	}}
}

func testConfig(sleepMs int) api.ClientConfig {
	return api.ClientConfig{
		TimeoutSecond:   5,
		SleepIntervalMs: sleepMs,
	}
}

// --------------------------------------------------------------------------
// Tests
// --------------------------------------------------------------------------

// TestConnDispatchResolvesFuture verifies the full submit/claim/
// roundtrip/resolve cycle against a scripted engine
func TestConnDispatchResolvesFuture(t *testing.T) {
	h := pool.NewHandle()
	engine := echoEngine()

	c, err := Connect("test:1", h, &stubConnector{engine: engine}, testConfig(100))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Close()

	f := h.Request(api.NewPingRequest())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := f.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

// TestConnTimeoutLiveness verifies a queued operation is eventually
// claimed through the sleep timeout even when its wakeup signal is never
// delivered
func TestConnTimeoutLiveness(t *testing.T) {
	h := pool.NewHandle()
	engine := echoEngine()

	c, err := Connect("test:1", h, &stubConnector{engine: engine}, testConfig(50))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Close()

	// Push directly onto the shared queue, bypassing the handle's
	// wakeup fan-out - this is the lost-signal case.
	q := h.AddListener(pool.NewChanNotifier())
	op, f := pool.NewOperation(api.NewPingRequest(), true)
	q.Push(op)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := f.Wait(ctx); err != nil {
		t.Fatalf("Operation was not picked up by the sleep timeout: %v", err)
	}
}

// TestConnWakeupImmediateDispatch verifies a sleeping connection is
// driven by the wakeup signal, not the timer: with a very long sleep
// interval a request must still complete promptly
func TestConnWakeupImmediateDispatch(t *testing.T) {
	h := pool.NewHandle()
	engine := echoEngine()

	c, err := Connect("test:1", h, &stubConnector{engine: engine}, testConfig(60_000))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Close()

	// wait for the event loop to enter its sleep
	deadline := time.Now().Add(time.Second)
	for c.State() != pool.StateSleeping {
		if time.Now().After(deadline) {
			t.Fatalf("Connection never went to sleep, state %v", c.State())
		}
		time.Sleep(time.Millisecond)
	}

	// the 2s wait below is far under the 60s timer, so completion
	// proves the wakeup signal drove the dispatch
	f := h.Request(api.NewPingRequest())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := f.Wait(ctx); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
}

// TestConnEngineFailure verifies an engine error resolves the in-flight
// future with ErrConnectionLost and closes the connection
func TestConnEngineFailure(t *testing.T) {
	h := pool.NewHandle()
	engine := &stubEngine{handler: func(msg *api.Message) (*api.Message, error) {
		return nil, fmt.Errorf("broken pipe")
	}}

	c, err := Connect("test:1", h, &stubConnector{engine: engine}, testConfig(50))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	f := h.Request(api.NewPingRequest())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := f.Wait(ctx); !errors.Is(err, pool.ErrConnectionLost) {
		t.Errorf("Expected ErrConnectionLost, got %v", err)
	}

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Event loop did not exit after engine failure")
	}

	if c.State() != pool.StateClosed {
		t.Errorf("Expected closed state, got %v", c.State())
	}
	if !engine.closed.Load() {
		t.Error("Engine was not closed on teardown")
	}

	c.Close() // must be safe after the loop already exited
}

// TestConnSharedQueueFanout verifies multiple connections drain the same
// queue and any of them can serve a request
func TestConnSharedQueueFanout(t *testing.T) {
	h := pool.NewHandle()

	conns := make([]*Conn, 0, 3)
	for i := 0; i < 3; i++ {
		engine := echoEngine()
		c, err := Connect(fmt.Sprintf("test:%d", i), h, &stubConnector{engine: engine}, testConfig(50))
		if err != nil {
			t.Fatalf("Connect failed: %v", err)
		}
		conns = append(conns, c)
	}
	defer func() {
		for _, c := range conns {
			c.Close()
		}
	}()

	const requests = 50
	futures := make([]*pool.Future, 0, requests)
	for i := 0; i < requests; i++ {
		futures = append(futures, h.Request(api.NewPingRequest()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i, f := range futures {
		if _, err := f.Wait(ctx); err != nil {
			t.Fatalf("Request %d failed: %v", i, err)
		}
	}
}

// TestConnClose verifies Close stops the event loop and releases the
// engine
func TestConnClose(t *testing.T) {
	h := pool.NewHandle()
	engine := echoEngine()

	c, err := Connect("test:1", h, &stubConnector{engine: engine}, testConfig(50))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	c.Close()
	c.Close() // idempotent

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("Event loop did not exit after Close")
	}

	if !engine.closed.Load() {
		t.Error("Engine was not closed")
	}
}

// TestConnectError verifies a connector failure surfaces to the caller
// and registers nothing with the handle
func TestConnectError(t *testing.T) {
	h := pool.NewHandle()
	wantErr := fmt.Errorf("connection refused")

	if _, err := Connect("test:1", h, &stubConnector{connErr: wantErr}, testConfig(50)); !errors.Is(err, wantErr) {
		t.Fatalf("Expected the connector's error, got %v", err)
	}
}
