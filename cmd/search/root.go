package search

import (
	"fmt"

	"github.com/russcam/elastic/cmd/util"
	"github.com/spf13/cobra"
)

// SearchCmd executes a search query against the cluster
var SearchCmd = &cobra.Command{
	Use:   "search [index] [query]",
	Short: "Executes a search query against an index",
	Long:  "Executes a search query against an index. The query is the raw JSON query body; omit it for a match-all search. Use an empty index name to search across all indices.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := util.BindCommandFlags(cmd); err != nil {
			return err
		}

		esClient, err := util.NewClient()
		if err != nil {
			return err
		}
		defer esClient.Close()

		index := args[0]
		var query []byte
		if len(args) == 2 {
			query = []byte(args[1])
		}

		resp, err := esClient.Search(index, query)
		if err != nil {
			return err
		}

		fmt.Println(string(resp))
		return nil
	},
}

func init() {
	cobra.OnInitialize(util.InitClientConfig)
	util.SetupClientFlags(SearchCmd)
}
