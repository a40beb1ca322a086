package cluster

import (
	"fmt"

	"github.com/russcam/elastic/cmd/util"
	"github.com/spf13/cobra"
)

// ClusterCommands represents the cluster command group
var ClusterCommands = &cobra.Command{
	Use:   "cluster",
	Short: "Perform cluster-level operations",
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Checks that the cluster answers on at least one connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := util.BindCommandFlags(cmd); err != nil {
			return err
		}

		esClient, err := util.NewClient()
		if err != nil {
			return err
		}
		defer esClient.Close()

		if err := esClient.Ping(); err != nil {
			return err
		}
		fmt.Println("cluster is up")
		return nil
	},
}

func init() {
	cobra.OnInitialize(util.InitClientConfig)
	util.SetupClientFlags(ClusterCommands)
	ClusterCommands.AddCommand(pingCmd)
}
