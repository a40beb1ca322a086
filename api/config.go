package api

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// Default values used when a field is left at its zero value.
const (
	// DefaultAddress is the address of a node running on the local machine.
	DefaultAddress = "127.0.0.1:9200"

	// DefaultSleepIntervalMs bounds how long an idle connection waits
	// before re-checking the queue when no wakeup was delivered.
	DefaultSleepIntervalMs = 2000
)

// ClientConfig holds all configuration parameters for the connection pool.
// The pool membership is fixed: the configured addresses are connected once
// at startup and never change afterwards.
type ClientConfig struct {
	// Addresses of the cluster nodes to connect to
	Addresses []string

	// ConnectionsPerAddress is the number of persistent connections
	// opened to each address (minimum 1)
	ConnectionsPerAddress int

	// TimeoutSecond is the per-request timeout in seconds (0 = no timeout)
	TimeoutSecond int

	// RetryCount is how many times the client retries a request whose
	// connection was lost mid-flight
	RetryCount int

	// SleepIntervalMs is the idle re-check interval for each connection
	SleepIntervalMs int

	// Logging configuration
	LogLevel string
}

// SleepIntervalOrDefault returns the configured idle re-check interval, falling
// back to the default when unset.
func (c *ClientConfig) SleepIntervalOrDefault() int {
	if c.SleepIntervalMs <= 0 {
		return DefaultSleepIntervalMs
	}
	return c.SleepIntervalMs
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	addField("Connections Per Address", strconv.Itoa(max(1, c.ConnectionsPerAddress)))
	addField("Sleep Interval", fmt.Sprintf("%d ms", c.SleepIntervalOrDefault()))

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	// Addresses
	addSection("Addresses")
	for i, addr := range c.Addresses {
		addField(strconv.Itoa(i), addr)
	}

	return sb.String()
}
