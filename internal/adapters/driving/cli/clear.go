package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all records from the collection",
	Long: `Irreversibly deletes every embedding record from the collection.
Prompts for confirmation unless --force is given.`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if err := ensureAssistant(false); err != nil {
		return err
	}

	if !clearForce {
		cmd.Print("This removes all stored knowledge. Continue? [y/N]: ")
		var input string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &input)
		if !strings.EqualFold(strings.TrimSpace(input), "y") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := assistantService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing collection: %w", err)
	}

	cmd.Println("Collection cleared.")
	return nil
}
