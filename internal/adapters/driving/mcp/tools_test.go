package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns grounded answer with sources", func(t *testing.T) {
		mockAssistant := &mockAssistantService{
			answer: &domain.Answer{
				Text: "Go was designed at Google [source:notes.md#0].",
				Sources: []domain.RetrievedChunk{
					{
						Text:       "Go was designed at Google.",
						Score:      0.92,
						DocumentID: "notes.md",
						ChunkIndex: 0,
					},
				},
			},
		}

		server, err := NewServer(&Ports{Assistant: mockAssistant})
		require.NoError(t, err)

		input := AskInput{Question: "Where was Go designed?", TopK: 3}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Go was designed at Google [source:notes.md#0].", output.Answer)
		require.Len(t, output.Sources, 1)
		assert.Equal(t, "notes.md#0", output.Sources[0].Source)
		assert.Equal(t, "notes.md", output.Sources[0].DocumentID)
		assert.Equal(t, 0.92, output.Sources[0].Score)
		assert.Equal(t, "Where was Go designed?", mockAssistant.lastQuery)
		assert.Equal(t, 3, mockAssistant.lastOpts.TopK)
	})

	t.Run("empty collection yields explanatory answer", func(t *testing.T) {
		mockAssistant := &mockAssistantService{err: domain.ErrEmptyCollection}

		server, err := NewServer(&Ports{Assistant: mockAssistant})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		require.NoError(t, err)
		assert.Contains(t, output.Answer, "empty")
		assert.Empty(t, output.Sources)
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		mockAssistant := &mockAssistantService{err: errors.New("query failed")}

		server, err := NewServer(&Ports{Assistant: mockAssistant})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "query failed")
	})
}
