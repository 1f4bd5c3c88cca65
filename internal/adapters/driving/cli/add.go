package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/memoria-cli/internal/core/ports/driving"
)

var (
	addChunkSize    int
	addChunkOverlap int
)

var addCmd = &cobra.Command{
	Use:   "add [paths...]",
	Short: "Add documents to the collection",
	Long: `Reads the given files, splits them into overlapping chunks, embeds
each chunk and stores the result in the local collection.

Plain text (.txt, .text, .log) and Markdown (.md, .markdown) files are
supported. Unreadable or unsupported files are reported and skipped;
the command only fails when no file could be ingested.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().IntVar(&addChunkSize, "chunk-size", 0, "chunk size in characters (0 = configured default)")
	addCmd.Flags().IntVar(&addChunkOverlap, "chunk-overlap", 0, "chunk overlap in characters (0 = configured default)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := ensureAssistant(false); err != nil {
		return err
	}

	report, err := assistantService.AddDocuments(cmd.Context(), args, driving.AddOptions{
		ChunkSize:    addChunkSize,
		ChunkOverlap: addChunkOverlap,
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	for _, ingestErr := range report.Errors {
		cmd.Println(warnStyle.Render(fmt.Sprintf("skipped %s: %s", ingestErr.Path, ingestErr.Message)))
	}

	if report.AllFailed() {
		return fmt.Errorf("no documents could be ingested (%d failed)", len(report.Errors))
	}

	cmd.Printf("Added %d document(s): %d chunks, %d records stored.\n",
		report.Documents, report.Chunks, report.Records)
	return nil
}
