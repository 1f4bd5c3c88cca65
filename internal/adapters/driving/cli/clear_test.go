package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

func TestClearCmd_ForceSkipsPrompt(t *testing.T) {
	mock, cleanup := setupTestServices(&mockAssistant{})
	defer cleanup()
	defer func() { clearForce = false }()

	out, err := execute(t, "clear", "--force")

	require.NoError(t, err)
	assert.True(t, mock.clearCalled)
	assert.Contains(t, out, "Collection cleared")
}

func TestClearCmd_ConfirmationYes(t *testing.T) {
	mock, cleanup := setupTestServices(&mockAssistant{})
	defer cleanup()

	rootCmd.SetIn(strings.NewReader("y\n"))
	defer rootCmd.SetIn(nil)

	out, err := execute(t, "clear")

	require.NoError(t, err)
	assert.True(t, mock.clearCalled)
	assert.Contains(t, out, "Collection cleared")
}

func TestClearCmd_ConfirmationDeclined(t *testing.T) {
	mock, cleanup := setupTestServices(&mockAssistant{})
	defer cleanup()

	rootCmd.SetIn(strings.NewReader("n\n"))
	defer rootCmd.SetIn(nil)

	out, err := execute(t, "clear")

	require.NoError(t, err)
	assert.False(t, mock.clearCalled)
	assert.Contains(t, out, "Aborted")
}

func TestClearCmd_PropagatesError(t *testing.T) {
	_, cleanup := setupTestServices(&mockAssistant{err: domain.ErrNotFound})
	defer cleanup()
	defer func() { clearForce = false }()

	_, err := execute(t, "clear", "--force")

	assert.Error(t, err)
}
