package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/memoria-cli/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/memoria-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change Memoria's configuration: providers, models,
chunking and retrieval defaults.

With no subcommand the current configuration is shown.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a single configuration value by dotted key, e.g.

  memoria config set retrieval.top_k 8
  memoria config set chunking.size 800
  memoria config set llm.model mistral`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	RunE:  runConfigEmbedding,
}

var configLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the completion provider",
	RunE:  runConfigLLM,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configEmbeddingCmd)
	configCmd.AddCommand(configLLMCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	cmd.Println(headingStyle.Render("Configuration"))
	cmd.Printf("  File: %s\n", configStore.Path())
	cmd.Println()

	cmd.Println("[embedding]")
	printProvider(cmd, appSettings.Embedding.Provider, appSettings.Embedding.Model,
		appSettings.Embedding.BaseURL, appSettings.Embedding.APIKey,
		appSettings.Embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[llm]")
	printProvider(cmd, appSettings.LLM.Provider, appSettings.LLM.Model,
		appSettings.LLM.BaseURL, appSettings.LLM.APIKey,
		appSettings.LLM.IsConfigured())
	cmd.Println()

	cmd.Println("[chunking]")
	cmd.Printf("  Size:    %d\n", appSettings.Chunking.Size)
	cmd.Printf("  Overlap: %d\n", appSettings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[retrieval]")
	cmd.Printf("  Top K:       %d\n", appSettings.Retrieval.TopK)
	cmd.Printf("  Temperature: %g\n", appSettings.Retrieval.Temperature)

	return nil
}

func printProvider(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model:    %s\n", model)
	if provider == domain.AIProviderOllama && baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key:  %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key:  (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status:   %s\n", status)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, parseConfigValue(raw)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, raw)
	settingsLoaded = false
	return nil
}

// parseConfigValue keeps numeric and boolean values typed in the TOML
// file instead of storing everything as strings.
func parseConfigValue(raw string) any {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return raw
}

func runConfigEmbedding(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	provider := providers[parseChoice(readLine(reader), len(providers), 1)-1]

	model, apiKey, err := promptModelAndKey(cmd, reader, provider, domain.DefaultEmbeddingModels()[provider])
	if err != nil {
		return err
	}

	settings := domain.EmbeddingSettings{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
	}

	cmd.Print("Validating configuration... ")
	svc, err := ai.CreateAndValidateEmbeddingService(&settings)
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	if svc != nil {
		_ = svc.Close()
	}
	cmd.Println("OK")

	if err := saveProvider(configfile.KeyEmbeddingProvider, configfile.KeyEmbeddingModel,
		configfile.KeyEmbeddingAPIKey, provider, model, apiKey); err != nil {
		return err
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runConfigLLM(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Completion Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	provider := providers[parseChoice(readLine(reader), len(providers), 1)-1]

	model, apiKey, err := promptModelAndKey(cmd, reader, provider, domain.DefaultLLMModels()[provider])
	if err != nil {
		return err
	}

	settings := domain.LLMSettings{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
	}

	cmd.Print("Validating configuration... ")
	svc, err := ai.CreateAndValidateLLMService(&settings)
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("completion configuration validation failed: %w", err)
	}
	if svc != nil {
		_ = svc.Close()
	}
	cmd.Println("OK")

	if err := saveProvider(configfile.KeyLLMProvider, configfile.KeyLLMModel,
		configfile.KeyLLMAPIKey, provider, model, apiKey); err != nil {
		return err
	}

	cmd.Printf("Completion provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func promptModelAndKey(
	cmd *cobra.Command,
	reader *bufio.Reader,
	provider domain.AIProvider,
	defaultModel string,
) (model, apiKey string, err error) {
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model = readLine(reader)
	if model == "" {
		model = defaultModel
	}

	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return "", "", errors.New("API key is required for this provider")
		}
	}

	return model, apiKey, nil
}

func saveProvider(providerKey, modelKey, apiKeyKey string, provider domain.AIProvider, model, apiKey string) error {
	if err := configStore.Set(providerKey, provider.String()); err != nil {
		return fmt.Errorf("saving provider: %w", err)
	}
	if err := configStore.Set(modelKey, model); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	if apiKey != "" {
		if err := configStore.Set(apiKeyKey, apiKey); err != nil {
			return fmt.Errorf("saving API key: %w", err)
		}
	}
	settingsLoaded = false
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
