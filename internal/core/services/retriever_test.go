package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memoria-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

func seedStore(t *testing.T, store *memory.VectorStore, records ...domain.EmbeddingRecord) {
	t.Helper()
	require.NoError(t, store.Upsert(context.Background(), records))
}

func TestRetrieve_EmptyCollection(t *testing.T) {
	retriever := NewRetriever(newStubEmbedder(), memory.NewVectorStore())

	_, err := retriever.Retrieve(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, domain.ErrEmptyCollection)
}

func TestRetrieve_RanksByCosineSimilarity(t *testing.T) {
	store := memory.NewVectorStore()
	seedStore(t, store,
		domain.EmbeddingRecord{ID: "a", Vector: []float32{0, 1, 0}, Text: "orthogonal", DocumentID: "a.txt"},
		domain.EmbeddingRecord{ID: "b", Vector: []float32{1, 0, 0}, Text: "aligned", DocumentID: "b.txt"},
		domain.EmbeddingRecord{ID: "c", Vector: []float32{1, 1, 0}, Text: "diagonal", DocumentID: "c.txt", ChunkIndex: 2},
	)

	embedder := newStubEmbedder()
	embedder.vectors["query"] = []float32{1, 0, 0}

	retriever := NewRetriever(embedder, store)
	chunks, err := retriever.Retrieve(context.Background(), "query", 2)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "aligned", chunks[0].Text)
	assert.InDelta(t, 1.0, chunks[0].Score, 1e-6)
	assert.Equal(t, "diagonal", chunks[1].Text)
	assert.Equal(t, "c.txt#2", chunks[1].Source())
	assert.Greater(t, chunks[0].Score, chunks[1].Score)
}

func TestRetrieve_ClampsTopK(t *testing.T) {
	store := memory.NewVectorStore()
	seedStore(t, store,
		domain.EmbeddingRecord{ID: "a", Vector: []float32{1, 0, 0}, Text: "only one"},
	)

	embedder := newStubEmbedder()
	embedder.vectors["query"] = []float32{1, 0, 0}
	retriever := NewRetriever(embedder, store)

	// Larger than the collection.
	chunks, err := retriever.Retrieve(context.Background(), "query", 50)
	require.NoError(t, err)
	assert.Len(t, chunks, 1)

	// Below one.
	chunks, err = retriever.Retrieve(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestRetrieve_EmbedFailure(t *testing.T) {
	store := memory.NewVectorStore()
	seedStore(t, store,
		domain.EmbeddingRecord{ID: "a", Vector: []float32{1, 0, 0}, Text: "x"},
	)

	embedder := newStubEmbedder()
	embedder.err = errors.New("embedder offline")

	retriever := NewRetriever(embedder, store)
	_, err := retriever.Retrieve(context.Background(), "query", 5)
	assert.ErrorIs(t, err, domain.ErrEmbedding)
	assert.Contains(t, err.Error(), "embedder offline")
}
