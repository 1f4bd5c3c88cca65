package driven

import (
	"context"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

// VectorStore persists embedding records and answers nearest-neighbour
// queries by cosine similarity.
//
// A store instance is a handle on one collection. Dimensionality is
// established by the first upsert and never varies across records;
// scores are comparable only within one collection using one embedding
// model (mixing models in a collection is a caller error and is not
// guarded against).
//
// The on-disk collection assumes a single writing process. Concurrent
// readers are tolerated only insofar as the storage engine provides
// read/write isolation; the store implements no locking of its own.
type VectorStore interface {
	// Upsert stores the given records. Re-upserting an existing ID
	// replaces the record rather than duplicating it. Returns
	// domain.ErrDimensionMismatch if any vector's length differs from
	// the collection's established dimensionality.
	Upsert(ctx context.Context, records []domain.EmbeddingRecord) error

	// Search returns up to topK records ordered by descending cosine
	// similarity to the query vector. Ties break by insertion order,
	// earliest first. An empty collection yields an empty result,
	// not an error. topK must be >= 1.
	Search(ctx context.Context, query []float32, topK int) ([]SearchHit, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int, error)

	// Clear irreversibly removes all records and resets the
	// collection's dimensionality.
	Clear(ctx context.Context) error

	// Documents summarises the stored records per source document, in
	// first-ingestion order.
	Documents(ctx context.Context) ([]domain.DocumentSummary, error)

	// Dimensions returns the collection's established vector
	// dimensionality, or 0 when no records have been stored yet.
	Dimensions(ctx context.Context) (int, error)

	// Path returns the on-disk location of the collection.
	Path() string

	// Close releases resources.
	Close() error
}

// SearchHit is one similarity search result.
type SearchHit struct {
	// Record is the matched embedding record.
	Record domain.EmbeddingRecord

	// Score is the cosine similarity to the query vector.
	Score float64
}
