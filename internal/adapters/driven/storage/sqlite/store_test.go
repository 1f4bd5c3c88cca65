package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func record(id string, vector []float32) domain.EmbeddingRecord {
	return domain.EmbeddingRecord{
		ID:         id,
		Vector:     vector,
		Text:       "text for " + id,
		DocumentID: "doc.txt",
		ChunkIndex: 0,
		IngestedAt: time.Now(),
	}
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Contains(t, store.Path(), dir)
	assert.Contains(t, store.Path(), "collection.db")
}

func TestUpsert_EstablishesDimensions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dims, err := store.Dimensions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, dims)

	err = store.Upsert(ctx, []domain.EmbeddingRecord{record("a", []float32{1, 2, 3})})
	require.NoError(t, err)

	dims, err = store.Dimensions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, dims)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{record("a", []float32{1, 2, 3})}))

	err := store.Upsert(ctx, []domain.EmbeddingRecord{record("b", []float32{1, 2})})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

	// The failed batch must not have been partially applied.
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpsert_MixedBatchRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Upsert(ctx, []domain.EmbeddingRecord{
		record("a", []float32{1, 2, 3}),
		record("b", []float32{1, 2}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpsert_ReplacesExistingID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := record("a", []float32{1, 0})
	first.Text = "original"
	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{first}))

	updated := record("a", []float32{0, 1})
	updated.Text = "updated"
	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{updated}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	hits, err := store.Search(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "updated", hits[0].Record.Text)
	assert.Equal(t, []float32{0, 1}, hits[0].Record.Vector)
}

func TestUpsert_EmptyBatch(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert(context.Background(), nil))
}

func TestSearch_OrdersByScore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{
		record("far", []float32{0, 1}),
		record("near", []float32{1, 0.1}),
		record("exact", []float32{1, 0}),
	}))

	hits, err := store.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "exact", hits[0].Record.ID)
	assert.Equal(t, "near", hits[1].Record.ID)
	assert.Equal(t, "far", hits[2].Record.ID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.Greater(t, hits[1].Score, hits[2].Score)
}

func TestSearch_TiesBreakByInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Identical vectors produce identical scores; the earliest insert wins.
	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{
		record("first", []float32{1, 1}),
		record("second", []float32{1, 1}),
		record("third", []float32{1, 1}),
	}))

	hits, err := store.Search(ctx, []float32{1, 1}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "first", hits[0].Record.ID)
	assert.Equal(t, "second", hits[1].Record.ID)
}

func TestSearch_TopKTruncation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{
		record("a", []float32{1, 0}),
		record("b", []float32{0.9, 0.1}),
		record("c", []float32{0.8, 0.2}),
	}))

	hits, err := store.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	// topK beyond the collection size returns everything.
	hits, err = store.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestSearch_EmptyCollection(t *testing.T) {
	store := newTestStore(t)

	hits, err := store.Search(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_QueryDimensionMismatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{record("a", []float32{1, 2, 3})}))

	_, err := store.Search(ctx, []float32{1, 2}, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestSearch_InvalidTopK(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Search(context.Background(), []float32{1}, 0)
	assert.Error(t, err)
}

func TestDocuments_GroupsByFirstIngestion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := record("a1", []float32{1, 0})
	first.DocumentID = "first.txt"
	second := record("b1", []float32{0, 1})
	second.DocumentID = "second.txt"
	third := record("a2", []float32{1, 1})
	third.DocumentID = "first.txt"

	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{first, second, third}))

	docs, err := store.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, domain.DocumentSummary{ID: "first.txt", Chunks: 2}, docs[0])
	assert.Equal(t, domain.DocumentSummary{ID: "second.txt", Chunks: 1}, docs[1])
}

func TestDocuments_EmptyCollection(t *testing.T) {
	store := newTestStore(t)

	docs, err := store.Documents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestClear_ResetsCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{record("a", []float32{1, 2, 3})}))
	require.NoError(t, store.Clear(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	dims, err := store.Dimensions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, dims)

	// A cleared collection accepts a different dimensionality.
	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{record("b", []float32{1, 2})}))
	dims, err = store.Dimensions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dims)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)

	rec := record("a", []float32{0.5, -0.5})
	rec.Metadata = map[string]string{"title": "notes", "batch": "b-1"}
	require.NoError(t, store.Upsert(ctx, []domain.EmbeddingRecord{rec}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	hits, err := reopened.Search(ctx, []float32{0.5, -0.5}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].Record.ID)
	assert.Equal(t, []float32{0.5, -0.5}, hits[0].Record.Vector)
	assert.Equal(t, "notes", hits[0].Record.Metadata["title"])
}

func TestVectorRoundTrip(t *testing.T) {
	vector := []float32{0.1, -2.5, 3.75, 0, -0.001}
	assert.Equal(t, vector, bytesToFloat32Slice(float32SliceToBytes(vector)))
	assert.Nil(t, bytesToFloat32Slice(nil))
	assert.Nil(t, float32SliceToBytes(nil))
}
