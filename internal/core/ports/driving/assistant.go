package driving

import (
	"context"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

// AssistantService is the knowledge assistant's primary port: ingest
// documents, ask grounded questions, inspect and reset the collection.
type AssistantService interface {
	// AddDocuments ingests the documents at the given paths into the
	// collection. Per-document failures (unreadable file, unsupported
	// format) are captured in the report and do not abort the batch;
	// embedding, storage and timeout errors propagate. An empty path
	// list yields an empty report and no error.
	AddDocuments(ctx context.Context, paths []string, opts AddOptions) (domain.IngestReport, error)

	// Query answers a question from the collection. Returns
	// domain.ErrEmptyCollection when the collection has zero records.
	Query(ctx context.Context, text string, opts QueryOptions) (*domain.Answer, error)

	// Stats reports the collection's current state.
	Stats(ctx context.Context) (*domain.CollectionStats, error)

	// Documents lists the ingested documents, in first-ingestion order.
	Documents(ctx context.Context) ([]domain.DocumentSummary, error)

	// Clear irreversibly removes all records from the collection.
	Clear(ctx context.Context) error
}

// AddOptions overrides ingestion defaults. Zero values mean "use the
// configured default".
type AddOptions struct {
	// ChunkSize is the target chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int
}

// QueryOptions overrides query defaults. Zero values mean "use the
// configured default".
type QueryOptions struct {
	// TopK is the number of chunks to retrieve. Values outside
	// [1, collection size] are clamped.
	TopK int

	// Temperature is the generation temperature, in [0.0, 2.0].
	Temperature *float64
}
