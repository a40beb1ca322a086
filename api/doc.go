// Package api provides core data structures and utilities shared across
// the connection pool and client. It defines the message protocol,
// configuration structures and logging setup used by other packages.
//
// The package focuses on:
//   - Message protocol definition for operations sent to the document store
//   - Configuration structure for the fixed-membership connection pool
//   - Custom logging implementation with consistent formatting
//
// Key Components:
//
//   - Message: Core data structure for all operations submitted through the
//     pool, with a flexible structure that adapts to different operation
//     types. Includes factory methods for creating the various request and
//     response messages.
//
//   - MessageType: Enumeration defining all supported operation types,
//     categorized into cluster, document, search and batch operations.
//
//   - ClientConfig: Configuration for the pool and client, controlling
//     the node addresses, connection counts, timeouts and retry behavior.
package api
