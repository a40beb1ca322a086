package docs

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	indexCmd = &cobra.Command{
		Use:   "index [index] [id] [document]",
		Short: "Indexes (creates or replaces) a JSON document",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index := args[0]
			id := args[1]
			var doc json.RawMessage
			if err := json.Unmarshal([]byte(args[2]), &doc); err != nil {
				return fmt.Errorf("document must be valid JSON: %w", err)
			}
			if err := esClient.Index(index, id, doc); err != nil {
				return err
			}
			fmt.Println("indexed successfully")
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [index] [id]",
		Short: "Reads a document by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index := args[0]
			id := args[1]
			if resp, found, err := esClient.Get(index, id); err != nil {
				return err
			} else {
				fmt.Printf("index=%s, id=%s, found=%v, resp=%s\n", index, id, found, resp)
			}
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [index] [id]",
		Short: "Deletes a document by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index := args[0]
			id := args[1]
			if found, err := esClient.Delete(index, id); err != nil {
				return err
			} else if !found {
				fmt.Println("document not found")
			} else {
				fmt.Println("deleted successfully")
			}
			return nil
		},
	}
)
