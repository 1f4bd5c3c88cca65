package cli

import (
	"context"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driving"
)

// mockAssistant is a configurable driving.AssistantService for command
// tests.
type mockAssistant struct {
	report    domain.IngestReport
	answer    *domain.Answer
	stats     *domain.CollectionStats
	documents []domain.DocumentSummary
	err       error

	addedPaths  []string
	lastAddOpts driving.AddOptions
	lastQuery   string
	lastOpts    driving.QueryOptions
	clearCalled bool
}

func (m *mockAssistant) AddDocuments(
	_ context.Context,
	paths []string,
	opts driving.AddOptions,
) (domain.IngestReport, error) {
	m.addedPaths = paths
	m.lastAddOpts = opts
	return m.report, m.err
}

func (m *mockAssistant) Query(
	_ context.Context,
	text string,
	opts driving.QueryOptions,
) (*domain.Answer, error) {
	m.lastQuery = text
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockAssistant) Stats(_ context.Context) (*domain.CollectionStats, error) {
	return m.stats, m.err
}

func (m *mockAssistant) Documents(_ context.Context) ([]domain.DocumentSummary, error) {
	return m.documents, m.err
}

func (m *mockAssistant) Clear(_ context.Context) error {
	m.clearCalled = true
	return m.err
}

// setupTestServices injects a mock assistant and returns it with a
// cleanup function restoring the previous state.
func setupTestServices(mock *mockAssistant) (*mockAssistant, func()) {
	oldService := assistantService
	assistantService = mock
	return mock, func() {
		assistantService = oldService
	}
}
