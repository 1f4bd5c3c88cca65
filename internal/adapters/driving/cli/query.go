package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driving"
)

var (
	queryTopK        int
	queryTemperature float64
	queryJSON        bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question about your stored knowledge",
	Long: `Embeds the question, retrieves the most similar stored chunks and
asks the configured language model to answer using only that context.
The answer cites its sources as [source:document#chunk] tags.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (0 = configured default)")
	queryCmd.Flags().Float64VarP(&queryTemperature, "temperature", "t", -1, "generation temperature (negative = configured default)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the answer and sources as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := ensureAssistant(true); err != nil {
		return err
	}

	opts := driving.QueryOptions{TopK: queryTopK}
	if queryTemperature >= 0 {
		opts.Temperature = &queryTemperature
	}

	answer, err := assistantService.Query(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(headingStyle.Render("Answer"))
	cmd.Println(answerStyle.Render(answer.Text))

	if len(answer.Sources) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println(headingStyle.Render("Sources"))
	for _, source := range answer.Sources {
		cmd.Println(sourceStyle.Render(fmt.Sprintf("%s (%.2f)", source.Source(), source.Score)))
	}
	return nil
}
