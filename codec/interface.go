package codec

import "github.com/russcam/elastic/api"

// ICodec is the interface for all request codecs. A codec translates a
// message into the wire form the document store's HTTP API expects, and
// translates a node's response back into a message.
type ICodec interface {
	// EncodeRequest returns the HTTP method, path and body for a request message.
	// It returns an error if the message is not a well-formed request.
	EncodeRequest(msg *api.Message) (method, path string, body []byte, err error)

	// DecodeResponse builds the response message for a request of the given
	// type from the node's status code and response body.
	DecodeResponse(msgType api.MessageType, status int, body []byte) (*api.Message, error)

	// ContentType returns the content type for the encoded body of the
	// given message type.
	ContentType(msgType api.MessageType) string
}
