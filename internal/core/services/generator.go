package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memoria-cli/internal/logger"
)

// Generation bounds.
const (
	// maxTemperature is the upper bound accepted for generation.
	maxTemperature = 2.0

	// defaultMaxAnswerTokens caps answer length.
	defaultMaxAnswerTokens = 1024

	// emptyContextAnswer is returned without calling the model when
	// retrieval produced nothing to ground an answer in.
	emptyContextAnswer = "I don't have any stored knowledge relevant to that question."
)

// Generator produces answers grounded in retrieved context.
type Generator struct {
	llm driven.LLMService
}

// NewGenerator creates a generator backed by the given LLM service.
// The service may be nil; generation then fails with ErrLLMUnavailable.
func NewGenerator(llm driven.LLMService) *Generator {
	return &Generator{llm: llm}
}

// Generate answers the question using only the given chunks as context.
// Temperature must be in [0, 2]. With no chunks the model is not called
// and a fixed "nothing relevant" answer is returned.
func (g *Generator) Generate(
	ctx context.Context,
	question string,
	chunks []domain.RetrievedChunk,
	temperature float64,
) (*domain.Answer, error) {
	if temperature < 0 || temperature > maxTemperature {
		return nil, fmt.Errorf("%w: temperature must be in [0, %g], got %g",
			domain.ErrInvalidConfig, maxTemperature, temperature)
	}

	if len(chunks) == 0 {
		logger.Debug("No context retrieved, skipping generation")
		return &domain.Answer{Text: emptyContextAnswer}, nil
	}

	if g.llm == nil {
		return nil, fmt.Errorf("%w: no completion provider configured", domain.ErrLLMUnavailable)
	}

	prompt := buildPrompt(question, chunks)
	logger.Debug("Prompt: %d characters, %d context chunks", len(prompt), len(chunks))

	text, err := g.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   defaultMaxAnswerTokens,
		Temperature: temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: generation: %w", domain.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	return &domain.Answer{
		Text:    strings.TrimSpace(text),
		Sources: chunks,
	}, nil
}

// buildPrompt assembles the grounded prompt: instructions, a CONTEXT
// block with one source-tagged entry per chunk, and the question.
func buildPrompt(question string, chunks []domain.RetrievedChunk) string {
	var b strings.Builder

	b.WriteString("You are a personal knowledge assistant. Answer the question using ONLY the context below.\n")
	b.WriteString("If the context does not contain the answer, say so instead of guessing.\n")
	b.WriteString("Cite the sources you used by their [source:...] tags.\n\n")

	b.WriteString("CONTEXT\n")
	for _, chunk := range chunks {
		text := strings.TrimSpace(chunk.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "[source:%s] %s\n", chunk.Source(), text)
	}

	b.WriteString("\nQUESTION\n")
	b.WriteString(strings.TrimSpace(question))
	b.WriteString("\n\nANSWER\n")

	return b.String()
}
