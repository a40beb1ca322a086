package pool

import (
	"context"
	"errors"
	"sync"

	"github.com/russcam/elastic/api"
)

// ErrConnectionLost is delivered to a pending future when the connection
// holding its claimed operation fails before a response arrives.
var ErrConnectionLost = errors.New("elastic: connection lost before response")

// --------------------------------------------------------------------------
// Operation
// --------------------------------------------------------------------------

// Operation is one client-submitted unit of work awaiting dispatch to a
// connection. It pairs a message with an optional completion sink. An
// operation is claimed by exactly one connection, exactly once; it is
// never re-queued.
type Operation struct {
	// Msg is the request payload handed to the wire engine once the
	// operation is claimed.
	Msg *api.Message

	sink *Future
	once sync.Once
}

// NewOperation builds an operation, optionally paired with a fresh
// future. Handle.Request and Handle.Send are the normal entry points;
// NewOperation exists for callers pushing onto a queue directly.
func NewOperation(msg *api.Message, withResult bool) (*Operation, *Future) {
	op := &Operation{Msg: msg}
	if withResult {
		op.sink = &Future{ch: make(chan result, 1)}
	}
	return op, op.sink
}

// Resolve fulfills the operation's completion sink with a response or an
// error. It resolves the associated future at most once; later calls and
// calls on a fire-and-forget operation are no-ops.
func (op *Operation) Resolve(msg *api.Message, err error) {
	if op.sink == nil {
		return
	}
	op.once.Do(func() {
		op.sink.ch <- result{msg: msg, err: err}
	})
}

// --------------------------------------------------------------------------
// Future
// --------------------------------------------------------------------------

// result carries the outcome of one operation across the sink
type result struct {
	msg *api.Message
	err error
}

// Future is the read side of a one-shot result channel returned from
// Handle.Request. It resolves exactly once: either with the response
// handed back by the connection that claimed the operation, or with
// ErrConnectionLost when that connection failed mid-flight.
//
// A future has a single consumer; Wait must not be called concurrently.
type Future struct {
	ch chan result
}

// Wait blocks until the future resolves or the context is canceled.
// Canceling the context abandons the wait but does not retract the
// submitted operation, which still runs to completion on its connection.
func (f *Future) Wait(ctx context.Context) (*api.Message, error) {
	select {
	case r := <-f.ch:
		return r.msg, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
