package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestAddCmd_RequiresAtLeastOnePath(t *testing.T) {
	_, cleanup := setupTestServices(&mockAssistant{})
	defer cleanup()

	_, err := execute(t, "add")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestAddCmd_ReportsSuccess(t *testing.T) {
	mock, cleanup := setupTestServices(&mockAssistant{
		report: domain.IngestReport{Documents: 2, Chunks: 7, Records: 7},
	})
	defer cleanup()

	out, err := execute(t, "add", "a.txt", "b.md")

	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.md"}, mock.addedPaths)
	assert.Contains(t, out, "Added 2 document(s)")
	assert.Contains(t, out, "7 chunks")
}

func TestAddCmd_PassesChunkFlags(t *testing.T) {
	mock, cleanup := setupTestServices(&mockAssistant{
		report: domain.IngestReport{Documents: 1, Chunks: 1, Records: 1},
	})
	defer cleanup()
	defer func() {
		addChunkSize = 0
		addChunkOverlap = 0
	}()

	_, err := execute(t, "add", "--chunk-size", "300", "--chunk-overlap", "30", "a.txt")

	require.NoError(t, err)
	assert.Equal(t, 300, mock.lastAddOpts.ChunkSize)
	assert.Equal(t, 30, mock.lastAddOpts.ChunkOverlap)
}

func TestAddCmd_PrintsSkippedFiles(t *testing.T) {
	report := domain.IngestReport{Documents: 1, Chunks: 2, Records: 2}
	report.AddError("bad.xyz", domain.ErrUnsupportedFormat)
	_, cleanup := setupTestServices(&mockAssistant{report: report})
	defer cleanup()

	out, err := execute(t, "add", "good.txt", "bad.xyz")

	require.NoError(t, err)
	assert.Contains(t, out, "skipped bad.xyz")
}

func TestAddCmd_FailsWhenAllFailed(t *testing.T) {
	var report domain.IngestReport
	report.AddError("a.txt", domain.ErrUnsupportedFormat)
	report.AddError("b.txt", domain.ErrUnsupportedFormat)
	_, cleanup := setupTestServices(&mockAssistant{report: report})
	defer cleanup()

	_, err := execute(t, "add", "a.txt", "b.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no documents could be ingested")
}

func TestAddCmd_PropagatesServiceError(t *testing.T) {
	_, cleanup := setupTestServices(&mockAssistant{err: domain.ErrEmbedding})
	defer cleanup()

	_, err := execute(t, "add", "a.txt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbedding)
}
