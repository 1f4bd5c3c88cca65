package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Long:  `Shows the number of stored records, the collection location, its vector dimensionality and the configured embedding model.`,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if err := ensureAssistant(false); err != nil {
		return err
	}

	stats, err := assistantService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading statistics: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling statistics: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(headingStyle.Render("Collection"))
	cmd.Printf("  Records:    %d\n", stats.Records)
	cmd.Printf("  Location:   %s\n", stats.Path)
	if stats.Dimensions > 0 {
		cmd.Printf("  Dimensions: %d\n", stats.Dimensions)
	} else {
		cmd.Printf("  Dimensions: (empty collection)\n")
	}
	cmd.Printf("  Model:      %s\n", stats.EmbeddingModel)
	return nil
}
