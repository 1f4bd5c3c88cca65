// Package cli implements the memoria command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/memoria-cli/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/memoria-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/memoria-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driving"
	"github.com/custodia-labs/memoria-cli/internal/core/services"
	"github.com/custodia-labs/memoria-cli/internal/logger"
	"github.com/custodia-labs/memoria-cli/internal/normalisers"
	"github.com/custodia-labs/memoria-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/memoria-cli/internal/normalisers/plaintext"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services are wired lazily by the commands that need them. Tests
// inject fakes directly.
var (
	assistantService driving.AssistantService
	configStore      driven.ConfigStore
	appSettings      domain.Settings
	settingsLoaded   bool
)

var rootCmd = &cobra.Command{
	Use:   "memoria",
	Short: "Personal knowledge assistant",
	Long: `Memoria ingests your notes and documents into a local vector
collection and answers questions about them, grounded in what you
actually stored.

Typical usage:
  memoria add notes/*.md
  memoria query "what did I decide about the garden fence?"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureConfig loads the configuration store and settings once.
func ensureConfig() error {
	if settingsLoaded {
		return nil
	}

	if configStore == nil {
		store, err := configfile.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		configStore = store
	}

	appSettings = configfile.SettingsFromStore(configStore)
	settingsLoaded = true
	return nil
}

// ensureAssistant wires the assistant service from configuration. When
// requireLLM is set, a missing completion provider is an error rather
// than something discovered at generation time.
func ensureAssistant(requireLLM bool) error {
	if assistantService != nil {
		return nil
	}

	if err := ensureConfig(); err != nil {
		return err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(&appSettings.Embedding)
	if err != nil {
		return err
	}
	if embedder == nil {
		return errors.New("no embedding provider configured. Run 'memoria config embedding' to set one up")
	}

	llm, err := ai.CreateAndValidateLLMService(&appSettings.LLM)
	if err != nil {
		if requireLLM {
			return err
		}
		logger.Warn("Completion provider unavailable: %v", err)
		llm = nil
	}
	if requireLLM && llm == nil {
		return errors.New("no completion provider configured. Run 'memoria config llm' to set one up")
	}

	store, err := sqlite.NewStore(appSettings.DataDir)
	if err != nil {
		return fmt.Errorf("opening collection: %w", err)
	}

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(markdown.New())

	assistant, err := services.NewAssistant(services.AssistantConfig{
		Registry: registry,
		Embedder: embedder,
		LLM:      llm,
		Store:    store,
		Settings: appSettings,
	})
	if err != nil {
		return err
	}

	assistantService = assistant
	return nil
}
