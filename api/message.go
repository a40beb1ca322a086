package api

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// Request fields
	Index string `json:"index,omitempty"` // Target index, used for: Index, Get, Delete, Search, Bulk
	ID    string `json:"id,omitempty"`    // Document id, used for: Index, Get, Delete
	Body  []byte `json:"body,omitempty"`  // Document source, search query or bulk payload

	// Response only fields
	StatusCode int    `json:"status,omitempty"` // HTTP status reported by the node
	Found      bool   `json:"found,omitempty"`  // Used for: Get, Delete responses
	Err        string `json:"err,omitempty"`    // Empty if no error, otherwise contains the error message
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewPingRequest creates a new Ping request
func NewPingRequest() *Message {
	return &Message{
		MsgType: MsgTPing,
	}
}

// NewPingResponse creates a new Ping response
func NewPingResponse(status int, err error) *Message {
	msg := &Message{
		MsgType:    MsgTPing,
		StatusCode: status,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewIndexRequest creates a new Index request for a document
func NewIndexRequest(index, id string, doc []byte) *Message {
	return &Message{
		MsgType: MsgTIndex,
		Index:   index,
		ID:      id,
		Body:    doc,
	}
}

// NewIndexResponse creates a new Index response
func NewIndexResponse(status int, body []byte, err error) *Message {
	msg := &Message{
		MsgType:    MsgTIndex,
		StatusCode: status,
		Body:       body,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewGetRequest creates a new Get request for a document
func NewGetRequest(index, id string) *Message {
	return &Message{
		MsgType: MsgTGet,
		Index:   index,
		ID:      id,
	}
}

// NewGetResponse creates a new Get response
func NewGetResponse(status int, body []byte, found bool, err error) *Message {
	msg := &Message{
		MsgType:    MsgTGet,
		StatusCode: status,
		Body:       body,
		Found:      found,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewDeleteRequest creates a new Delete request for a document
func NewDeleteRequest(index, id string) *Message {
	return &Message{
		MsgType: MsgTDelete,
		Index:   index,
		ID:      id,
	}
}

// NewDeleteResponse creates a new Delete response
func NewDeleteResponse(status int, found bool, err error) *Message {
	msg := &Message{
		MsgType:    MsgTDelete,
		StatusCode: status,
		Found:      found,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewSearchRequest creates a new Search request. The query is the raw
// query body and may be empty for a match-all search.
func NewSearchRequest(index string, query []byte) *Message {
	return &Message{
		MsgType: MsgTSearch,
		Index:   index,
		Body:    query,
	}
}

// NewSearchResponse creates a new Search response
func NewSearchResponse(status int, body []byte, err error) *Message {
	msg := &Message{
		MsgType:    MsgTSearch,
		StatusCode: status,
		Body:       body,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewBulkRequest creates a new Bulk request. The body must already be in
// newline-delimited form (see codec.BulkBody).
func NewBulkRequest(index string, body []byte) *Message {
	return &Message{
		MsgType: MsgTBulk,
		Index:   index,
		Body:    body,
	}
}

// NewBulkResponse creates a new Bulk response
func NewBulkResponse(status int, body []byte, err error) *Message {
	msg := &Message{
		MsgType:    MsgTBulk,
		StatusCode: status,
		Body:       body,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message sent to the document store.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTPing:
		return "ping"
	case MsgTIndex:
		return "index"
	case MsgTGet:
		return "get"
	case MsgTDelete:
		return "delete"
	case MsgTSearch:
		return "search"
	case MsgTBulk:
		return "bulk"
	case MsgTError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "ping":
		*t = MsgTPing
	case "index":
		*t = MsgTIndex
	case "get":
		*t = MsgTGet
	case "delete":
		*t = MsgTDelete
	case "search":
		*t = MsgTSearch
	case "bulk":
		*t = MsgTBulk
	case "error":
		*t = MsgTError
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTError               // Indicates an error occurred

	// Cluster operations

	MsgTPing // Check that a node is reachable

	// Document operations

	MsgTIndex  // Index (create or replace) a document
	MsgTGet    // Get a document by id
	MsgTDelete // Delete a document by id

	// Search and batch operations

	MsgTSearch // Execute a search query
	MsgTBulk   // Execute a newline-delimited bulk payload
)
