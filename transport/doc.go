// Package transport runs the event loop for each persistent connection
// and defines the wire-engine abstraction the loop dispatches into.
//
// The package focuses on:
//   - Bootstrapping connections against the fixed set of node addresses
//   - Driving the pool's per-connection state machine from a single
//     goroutine per connection (dispatch, sleep timer, wakeup signal)
//   - Keeping the loop independent of the wire protocol through the
//     IEngine / IEngineConnector interfaces
//
// Key Components:
//
//   - Conn: one running persistent connection. Its goroutine alternates
//     between dispatching claimed operations into the engine and sleeping
//     with a timer when the queue is empty; an external wakeup or the
//     timer firing, whichever comes first, triggers a re-check.
//
//   - Connect / ConnectLocalhost: establish a connection, bind a state
//     machine to the handle's shared queue and register its notifier.
//     Connection failures surface to the caller; no retry is performed
//     at this layer.
//
//   - IEngine: the wire-protocol engine contract. The http subpackage
//     provides the implementation speaking the store's HTTP API.
//
// A connection that fails mid-request resolves the in-flight operation's
// future with pool.ErrConnectionLost before entering the Closed state,
// so callers never hang on a lost connection.
package transport
