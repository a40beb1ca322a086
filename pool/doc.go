// Package pool implements the request-dispatch core of a fixed-membership
// connection pool: a shared queue of pending operations, a producer-facing
// handle with wakeup fan-out, and the per-connection idle/dispatch state
// machine that matches each submitted operation, at most once, to
// whichever connection becomes free first.
//
// The package focuses on:
//   - A lock-free unbounded FIFO queue safe for any number of producers
//     and consumers, with atomic claim semantics
//   - One-shot completion futures pairing each tracked operation with the
//     response handed back by the connection that claimed it
//   - A reactor-independent state machine (Idle, Requesting, Sleeping,
//     Closed) driven through plain callbacks
//
// Key Components:
//
//   - Queue: the only structure crossing the concurrency boundary between
//     producer goroutines and the connection event loops. Push and TryPop
//     are total, non-blocking operations.
//
//   - Handle: submission API. Request returns a Future; Send is
//     fire-and-forget. Every push wakes all registered connections even
//     though only one wins the claim - intentional over-notification to
//     minimize dispatch latency.
//
//   - Machine: the per-connection state machine. When woken while idle it
//     claims the queue head and hands it to the wire engine; when the
//     queue is empty it sleeps for a bounded interval so that a lost
//     wakeup signal delays dispatch by at most that interval.
//
//   - Notifier: the non-blocking, idempotent wakeup signal a connection
//     registers with the Handle.
//
// Ordering: claim order is FIFO across all producers, but completion
// order across connections is not guaranteed to match submission order.
// Cancellation is not supported - once claimed, an operation runs to
// completion or fails with ErrConnectionLost.
package pool
