// Package client provides the high-level document store client built on
// the connection pool. It bootstraps the fixed set of persistent
// connections, owns the submission handle and exposes typed operations
// (ping, index, get, delete, search, bulk) that build the request
// message, submit it and await the returned future.
//
// Requests whose connection is lost mid-flight are retried with jittered
// exponential backoff up to the configured retry count; every retry is a
// fresh submission through the pool.
package client
