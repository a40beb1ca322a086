package docs

import (
	"github.com/russcam/elastic/client"
	"github.com/russcam/elastic/cmd/util"
	"github.com/spf13/cobra"
)

var (
	esClient *client.Client

	// DocumentCommands represents the document command group
	DocumentCommands = &cobra.Command{
		Use:               "docs",
		Short:             "Perform document operations against the cluster",
		PersistentPreRunE: setupClient,
		PersistentPostRun: teardownClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags to the document command group
	util.SetupClientFlags(DocumentCommands)

	// Add subcommands
	DocumentCommands.AddCommand(indexCmd)
	DocumentCommands.AddCommand(getCmd)
	DocumentCommands.AddCommand(delCmd)
	DocumentCommands.AddCommand(perfTestCmd)
}

// setupClient bootstraps the connection pool
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	esClient, err = util.NewClient()
	return err
}

// teardownClient closes the connection pool
func teardownClient(_ *cobra.Command, _ []string) {
	if esClient != nil {
		esClient.Close()
	}
}
