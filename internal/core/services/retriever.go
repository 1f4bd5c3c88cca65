package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memoria-cli/internal/logger"
)

// Retriever finds the stored chunks most similar to a query.
type Retriever struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewRetriever creates a retriever over the given embedder and store.
func NewRetriever(embedder driven.EmbeddingService, store driven.VectorStore) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
	}
}

// Retrieve embeds the query and returns the topK most similar chunks by
// cosine similarity, best first. topK is clamped to the collection size;
// an empty collection returns domain.ErrEmptyCollection.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievedChunk, error) {
	count, err := r.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	if count == 0 {
		return nil, domain.ErrEmptyCollection
	}

	if topK < 1 {
		topK = 1
	}
	if topK > count {
		topK = count
	}
	logger.Debug("Retrieving top %d of %d records", topK, count)

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %w", domain.ErrEmbedding, err)
	}

	hits, err := r.store.Search(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("searching collection: %w", err)
	}

	chunks := make([]domain.RetrievedChunk, len(hits))
	for i, hit := range hits {
		chunks[i] = domain.RetrievedChunk{
			Text:       hit.Record.Text,
			Score:      hit.Score,
			DocumentID: hit.Record.DocumentID,
			ChunkIndex: hit.Record.ChunkIndex,
		}
		logger.Debug("Hit %d: %s (score %.4f)", i, chunks[i].Source(), hit.Score)
	}

	return chunks, nil
}
