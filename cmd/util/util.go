package util

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/russcam/elastic/api"
	"github.com/russcam/elastic/client"
	"github.com/russcam/elastic/transport/http"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds common connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "addresses"
	cmd.PersistentFlags().String(key, api.DefaultAddress, WrapString("The addresses of the cluster nodes as a comma-separated list. The pool membership is fixed: these addresses are connected once at startup"))

	key = "connections-per-address"
	cmd.PersistentFlags().Int(key, 1, WrapString("Number of persistent connections opened to each address"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The per-request timeout in seconds"))

	key = "retries"
	cmd.PersistentFlags().Int(key, 3, WrapString("How many times to retry a request whose connection was lost mid-flight"))

	key = "sleep-interval"
	cmd.PersistentFlags().Int(key, api.DefaultSleepIntervalMs, WrapString("Idle re-check interval per connection in milliseconds"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("elastic")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *api.ClientConfig {
	return &api.ClientConfig{
		Addresses:             strings.Split(viper.GetString("addresses"), ","),
		ConnectionsPerAddress: viper.GetInt("connections-per-address"),
		TimeoutSecond:         viper.GetInt("timeout"),
		RetryCount:            viper.GetInt("retries"),
		SleepIntervalMs:       viper.GetInt("sleep-interval"),
		LogLevel:              viper.GetString("log-level"),
	}
}

// NewClient bootstraps a client from the current configuration
func NewClient() (*client.Client, error) {
	return client.New(*GetClientConfig(), http.NewEngineConnector())
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
