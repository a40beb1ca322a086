package transport

import (
	"context"

	"github.com/russcam/elastic/api"
)

// --------------------------------------------------------------------------
// Wire Engine
// --------------------------------------------------------------------------

// IEngine is the wire-protocol engine for one established connection. It
// is responsible for serializing a request message, sending it, receiving
// the response and parsing it back into a message.
//
// Roundtrip errors are treated as unrecoverable connection failures: the
// connection's state machine transitions to Closed and the in-flight
// operation's future resolves with pool.ErrConnectionLost. A response the
// node answered with an error status is not a Roundtrip error - it comes
// back as a message carrying the status code.
type IEngine interface {
	// Roundtrip performs one full request cycle on the connection
	Roundtrip(ctx context.Context, msg *api.Message) (*api.Message, error)
	// Close releases the underlying connection
	Close() error
}

// IEngineConnector defines the interface for transport-specific
// connection establishment. It is injected into Connect so the event
// loop stays independent of the wire protocol.
type IEngineConnector interface {
	// Connect establishes a single connection to the given address and
	// returns the engine driving it
	Connect(addr string, config api.ClientConfig) (IEngine, error)

	// GetName returns the name of the transport type (e.g. "http")
	GetName() string
}
