package file

import (
	"os"
	"time"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driven"
)

// Configuration keys.
const (
	KeyEmbeddingProvider = "embedding.provider"
	KeyEmbeddingModel    = "embedding.model"
	KeyEmbeddingBaseURL  = "embedding.base_url"
	KeyEmbeddingAPIKey   = "embedding.api_key"

	KeyLLMProvider = "llm.provider"
	KeyLLMModel    = "llm.model"
	KeyLLMBaseURL  = "llm.base_url"
	KeyLLMAPIKey   = "llm.api_key"

	KeyChunkSize    = "chunking.size"
	KeyChunkOverlap = "chunking.overlap"

	KeyTopK        = "retrieval.top_k"
	KeyTemperature = "retrieval.temperature"

	KeyDataDir        = "data_dir"
	KeyTimeoutSeconds = "timeout_seconds"
)

// SettingsFromStore builds domain settings from the store, starting from
// the defaults and overlaying every key that is present. API keys fall
// back to the provider's conventional environment variable so secrets
// can stay out of the config file.
func SettingsFromStore(store driven.ConfigStore) domain.Settings {
	settings := domain.DefaultSettings()

	if v := store.GetString(KeyEmbeddingProvider); v != "" {
		settings.Embedding.Provider = domain.AIProvider(v)
	}
	if v := store.GetString(KeyEmbeddingModel); v != "" {
		settings.Embedding.Model = v
	}
	if v := store.GetString(KeyEmbeddingBaseURL); v != "" {
		settings.Embedding.BaseURL = v
	}
	settings.Embedding.APIKey = apiKey(store, KeyEmbeddingAPIKey, settings.Embedding.Provider)

	if v := store.GetString(KeyLLMProvider); v != "" {
		settings.LLM.Provider = domain.AIProvider(v)
	}
	if v := store.GetString(KeyLLMModel); v != "" {
		settings.LLM.Model = v
	}
	if v := store.GetString(KeyLLMBaseURL); v != "" {
		settings.LLM.BaseURL = v
	}
	settings.LLM.APIKey = apiKey(store, KeyLLMAPIKey, settings.LLM.Provider)

	if v := store.GetInt(KeyChunkSize); v > 0 {
		settings.Chunking.Size = v
	}
	if _, ok := store.Get(KeyChunkOverlap); ok {
		settings.Chunking.Overlap = store.GetInt(KeyChunkOverlap)
	}

	if v := store.GetInt(KeyTopK); v > 0 {
		settings.Retrieval.TopK = v
	}
	if _, ok := store.Get(KeyTemperature); ok {
		settings.Retrieval.Temperature = store.GetFloat(KeyTemperature)
	}

	if v := store.GetString(KeyDataDir); v != "" {
		settings.DataDir = v
	}
	if v := store.GetInt(KeyTimeoutSeconds); v > 0 {
		settings.Timeout = time.Duration(v) * time.Second
	}

	return settings
}

// apiKey reads the stored key, falling back to the provider's standard
// environment variable.
func apiKey(store driven.ConfigStore, key string, provider domain.AIProvider) string {
	if v := store.GetString(key); v != "" {
		return v
	}

	switch provider {
	case domain.AIProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case domain.AIProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
