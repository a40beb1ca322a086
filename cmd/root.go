package cmd

import (
	"fmt"
	"os"

	"github.com/russcam/elastic/cmd/cluster"
	"github.com/russcam/elastic/cmd/docs"
	"github.com/russcam/elastic/cmd/search"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "elastic",
		Short: "Elasticsearch client and connection pool",
		Long: fmt.Sprintf(`elastic (v%s)

A client for an Elasticsearch cluster built on a fixed-membership
connection pool: a fixed set of persistent connections serves
concurrently submitted operations, first idle connection wins.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of elastic",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("elastic v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(docs.DocumentCommands)
	RootCmd.AddCommand(search.SearchCmd)
	RootCmd.AddCommand(cluster.ClusterCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
