package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driving"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from stored knowledge"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of context chunks to retrieve (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput is one retrieved chunk the answer was grounded in.
type SourceOutput struct {
	Source     string  `json:"source"`
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
	Text       string  `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the user's stored knowledge, citing sources",
	}, s.handleAsk)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Assistant.Query(ctx, input.Question, driving.QueryOptions{
		TopK: input.TopK,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCollection) {
			return nil, AskOutput{
				Answer: "The knowledge collection is empty. Add documents with 'memoria add' first.",
			}, nil
		}
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Sources: make([]SourceOutput, len(answer.Sources)),
	}
	for i, source := range answer.Sources {
		output.Sources[i] = SourceOutput{
			Source:     source.Source(),
			DocumentID: source.DocumentID,
			ChunkIndex: source.ChunkIndex,
			Score:      source.Score,
			Text:       source.Text,
		}
	}

	return nil, output, nil
}
