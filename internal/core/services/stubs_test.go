package services

import (
	"context"

	"github.com/custodia-labs/memoria-cli/internal/core/ports/driven"
)

// stubEmbedder is a deterministic in-memory embedding service. Texts
// with an entry in vectors get that vector; everything else gets a
// length-derived vector so distinct texts embed consistently.
type stubEmbedder struct {
	dims       int
	vectors    map[string][]float32
	err        error
	embedCalls int
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{dims: 3, vectors: map[string][]float32{}}
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.embedCalls++
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	v := make([]float32, s.dims)
	for i := range v {
		v[i] = float32(len(text)%7 + i + 1)
	}
	return v, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int              { return s.dims }
func (s *stubEmbedder) ModelName() string            { return "stub-embedder" }
func (s *stubEmbedder) Ping(_ context.Context) error { return nil }
func (s *stubEmbedder) Close() error                 { return nil }

// stubLLM records the last prompt and options it was called with.
type stubLLM struct {
	response string
	err      error
	calls    int

	lastPrompt string
	lastOpts   driven.GenerateOptions
}

func (s *stubLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastOpts = opts
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubLLM) ModelName() string            { return "stub-llm" }
func (s *stubLLM) Ping(_ context.Context) error { return nil }
func (s *stubLLM) Close() error                 { return nil }
