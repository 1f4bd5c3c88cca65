package mcp

import (
	"context"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driving"
)

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	report    domain.IngestReport
	answer    *domain.Answer
	stats     *domain.CollectionStats
	documents []domain.DocumentSummary
	err       error

	lastQuery string
	lastOpts  driving.QueryOptions
}

func (m *mockAssistantService) AddDocuments(
	_ context.Context,
	_ []string,
	_ driving.AddOptions,
) (domain.IngestReport, error) {
	return m.report, m.err
}

func (m *mockAssistantService) Query(
	_ context.Context,
	text string,
	opts driving.QueryOptions,
) (*domain.Answer, error) {
	m.lastQuery = text
	m.lastOpts = opts
	return m.answer, m.err
}

func (m *mockAssistantService) Stats(_ context.Context) (*domain.CollectionStats, error) {
	return m.stats, m.err
}

func (m *mockAssistantService) Documents(_ context.Context) ([]domain.DocumentSummary, error) {
	return m.documents, m.err
}

func (m *mockAssistantService) Clear(_ context.Context) error {
	return m.err
}
