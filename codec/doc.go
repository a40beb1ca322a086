// Package codec translates pool messages to and from the document
// store's HTTP API. It defines a common interface so the wire engine
// stays independent of the concrete request format.
//
// The package focuses on:
//   - Mapping each message type onto its HTTP method and endpoint path
//   - Turning a node's status code and body back into a response message
//   - Assembling newline-delimited bulk payloads with pooled buffers
//
// Key Components:
//
//   - ICodec: Core interface every codec implementation must satisfy.
//
//   - jsonCodecImpl: Implementation against the JSON HTTP API. Document
//     requests address the /{index}/_doc endpoints, searches post to
//     _search and bulk payloads post to _bulk as x-ndjson.
//
//   - BulkBody: Helper for building bulk bodies from a list of actions.
//
// Thread Safety:
//
//	Codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
package codec
