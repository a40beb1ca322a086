package transport

import (
	"context"
	"sync"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/russcam/elastic/api"
	"github.com/russcam/elastic/pool"
)

var Logger = logger.GetLogger("transport")

// --------------------------------------------------------------------------
// Bootstrap
// --------------------------------------------------------------------------

// Connect establishes one persistent connection to addr, binds a state
// machine for it to the handle's shared queue, registers its wakeup
// notifier with the handle and starts its event loop. No retry or
// backoff is performed at this layer - a connection failure surfaces to
// the caller.
func Connect(addr string, h *pool.Handle, connector IEngineConnector, config api.ClientConfig) (*Conn, error) {
	engine, err := connector.Connect(addr, config)
	if err != nil {
		return nil, err
	}

	notifier := pool.NewChanNotifier()
	queue := h.AddListener(notifier)

	c := &Conn{
		addr:     addr,
		engine:   engine,
		machine:  pool.NewMachine(queue, time.Duration(config.SleepIntervalOrDefault())*time.Millisecond),
		notifier: notifier,
		timeout:  time.Duration(config.TimeoutSecond) * time.Second,
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
	}

	Logger.Infof("connected to %s using %s transport", addr, connector.GetName())

	go c.run()

	return c, nil
}

// ConnectLocalhost connects a persistent connection to a node running on
// the local machine at the default port.
func ConnectLocalhost(h *pool.Handle, connector IEngineConnector, config api.ClientConfig) (*Conn, error) {
	return Connect(api.DefaultAddress, h, connector, config)
}

// --------------------------------------------------------------------------
// Conn
// --------------------------------------------------------------------------

// Conn is one running persistent connection. A single goroutine drives
// its state machine: dispatching claimed operations into the wire
// engine, sleeping with a timer when the queue is empty and waking on
// the notifier's signal. All machine transitions happen on that
// goroutine - only the shared queue crosses the concurrency boundary.
type Conn struct {
	addr     string
	engine   IEngine
	machine  *pool.Machine
	notifier *pool.ChanNotifier
	timeout  time.Duration

	closeOnce sync.Once
	closing   chan struct{}
	done      chan struct{}
}

// Addr returns the address this connection is bound to.
func (c *Conn) Addr() string {
	return c.addr
}

// State returns the connection's current dispatch state. It is intended
// for observability; the value may be stale by the time it is read.
func (c *Conn) State() pool.State {
	return c.machine.State()
}

// Done returns a channel closed when the event loop has exited.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Close shuts the connection down and waits for its event loop to exit.
// An in-flight request completes first; operations still queued remain
// available for other connections to claim.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.closing)
	})
	<-c.done
}

// run is the connection's event loop. The machine tells it what to do
// next; it performs the action and feeds the resulting event back in.
func (c *Conn) run() {
	defer close(c.done)
	defer func() {
		if err := c.engine.Close(); err != nil {
			Logger.Warningf("%s: closing engine: %v", c.addr, err)
		}
	}()

	// Connection established - enter Idle and look for work.
	act := c.machine.OnIdle()

	for {
		switch act.Kind {
		case pool.ActionDispatch:
			// Shutdown requested while holding a fresh claim: the
			// operation will never run here, resolve it as lost.
			select {
			case <-c.closing:
				act.Op.Resolve(nil, pool.ErrConnectionLost)
				return
			default:
			}
			act = c.dispatch(act.Op)

		case pool.ActionSleep:
			timer := time.NewTimer(act.Delay)
			select {
			case <-timer.C:
				act = c.machine.OnTimeout()
			case <-c.notifier.C():
				timer.Stop()
				act = c.machine.OnWakeup()
			case <-c.closing:
				timer.Stop()
				return
			}

		case pool.ActionClose:
			return

		default:
			// ActionNone cannot occur on this goroutine while the
			// machine is idle or sleeping; re-enter the idle logic.
			act = c.machine.OnIdle()
		}
	}
}

// dispatch bridges a claimed operation into the wire engine's request
// cycle and resolves its completion sink with the outcome.
func (c *Conn) dispatch(op *pool.Operation) pool.Action {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.engine.Roundtrip(ctx, op.Msg)
	if err != nil {
		// Unrecoverable: the future must not hang, resolve it before
		// the machine goes to Closed.
		Logger.Errorf("%s: connection error on %s: %v", c.addr, op.Msg.MsgType, err)
		op.Resolve(nil, pool.ErrConnectionLost)
		return c.machine.OnError()
	}

	op.Resolve(resp, nil)
	return c.machine.OnDone()
}
