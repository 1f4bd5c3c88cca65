package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/custodia-labs/memoria-cli/internal/adapters/driven/config/file"
)

// setupTestConfig points the package at a throwaway config store.
func setupTestConfig(t *testing.T) func() {
	t.Helper()

	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	oldStore := configStore
	oldLoaded := settingsLoaded
	configStore = store
	settingsLoaded = false
	return func() {
		configStore = oldStore
		settingsLoaded = oldLoaded
	}
}

func TestConfigShowCmd_PrintsSections(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[embedding]")
	assert.Contains(t, out, "[llm]")
	assert.Contains(t, out, "[chunking]")
	assert.Contains(t, out, "[retrieval]")
}

func TestConfigSetCmd_PersistsTypedValues(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	_, err := execute(t, "config", "set", "retrieval.top_k", "8")
	require.NoError(t, err)
	assert.Equal(t, 8, configStore.GetInt("retrieval.top_k"))

	_, err = execute(t, "config", "set", "retrieval.temperature", "0.3")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, configStore.GetFloat("retrieval.temperature"), 1e-9)

	_, err = execute(t, "config", "set", "llm.model", "mistral")
	require.NoError(t, err)
	assert.Equal(t, "mistral", configStore.GetString("llm.model"))
}

func TestConfigSetCmd_InvalidatesCachedSettings(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	require.NoError(t, ensureConfig())
	assert.True(t, settingsLoaded)

	_, err := execute(t, "config", "set", "retrieval.top_k", "9")
	require.NoError(t, err)

	assert.False(t, settingsLoaded)
	require.NoError(t, ensureConfig())
	assert.Equal(t, 9, appSettings.Retrieval.TopK)
}

func TestParseConfigValue(t *testing.T) {
	assert.Equal(t, int64(8), parseConfigValue("8"))
	assert.Equal(t, 0.3, parseConfigValue("0.3"))
	assert.Equal(t, true, parseConfigValue("true"))
	assert.Equal(t, "mistral", parseConfigValue("mistral"))
}

func TestParseChoice(t *testing.T) {
	assert.Equal(t, 1, parseChoice("", 3, 1))
	assert.Equal(t, 2, parseChoice("2", 3, 1))
	assert.Equal(t, 1, parseChoice("9", 3, 1))
	assert.Equal(t, 1, parseChoice("junk", 3, 1))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", maskAPIKey("sk-abcdefgh-tuvwxyz"))
}
