// Package cmd implements the command-line interface for the elastic
// client. It provides a hierarchical command structure for interacting
// with a cluster through the connection pool.
//
// The package is organized into several subpackages:
//
//   - docs: Commands for document operations (index, get, del) and the perf benchmark
//   - search: Command for executing search queries
//   - cluster: Commands for cluster-level operations (ping)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See elastic -help for a list of all commands.
package cmd
