package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Long:  `Lists every document in the collection with its stored chunk count, in the order they were first ingested.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output the document list as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if err := ensureAssistant(false); err != nil {
		return err
	}

	docs, err := assistantService.Documents(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if listJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("The collection is empty.")
		return nil
	}

	cmd.Println(headingStyle.Render("Documents"))
	for _, doc := range docs {
		cmd.Printf("  %s (%d chunks)\n", doc.ID, doc.Chunks)
	}
	return nil
}
