package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/memoria-cli/internal/chunker"
	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driving"
	"github.com/custodia-labs/memoria-cli/internal/logger"
)

// Ensure Assistant implements the interface.
var _ driving.AssistantService = (*Assistant)(nil)

// Assistant is the knowledge assistant's core service: it wires the
// normaliser registry, chunker, embedder, vector store and generator
// into the ingest and query pipelines.
type Assistant struct {
	registry  driven.NormaliserRegistry
	embedder  driven.EmbeddingService
	store     driven.VectorStore
	retriever *Retriever
	generator *Generator
	settings  domain.Settings
}

// AssistantConfig holds the dependencies for a new Assistant.
type AssistantConfig struct {
	Registry driven.NormaliserRegistry
	Embedder driven.EmbeddingService
	LLM      driven.LLMService // optional; queries fail without it
	Store    driven.VectorStore
	Settings domain.Settings
}

// NewAssistant creates the assistant service. Registry, embedder and
// store are required.
func NewAssistant(cfg AssistantConfig) (*Assistant, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("%w: normaliser registry is required", domain.ErrInvalidConfig)
	}
	if cfg.Embedder == nil {
		return nil, fmt.Errorf("%w: embedding service is required", domain.ErrInvalidConfig)
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("%w: vector store is required", domain.ErrInvalidConfig)
	}
	if cfg.Settings.Timeout == 0 {
		cfg.Settings.Timeout = domain.DefaultTimeout
	}

	return &Assistant{
		registry:  cfg.Registry,
		embedder:  cfg.Embedder,
		store:     cfg.Store,
		retriever: NewRetriever(cfg.Embedder, cfg.Store),
		generator: NewGenerator(cfg.LLM),
		settings:  cfg.Settings,
	}, nil
}

// AddDocuments ingests the documents at the given paths. Unreadable or
// unsupported files are recorded in the report and skipped; embedding,
// storage and timeout failures abort the batch.
func (a *Assistant) AddDocuments(
	ctx context.Context,
	paths []string,
	opts driving.AddOptions,
) (domain.IngestReport, error) {
	var report domain.IngestReport
	if len(paths) == 0 {
		return report, nil
	}

	logger.Section("Document Ingestion")

	splitter, err := a.newChunker(opts)
	if err != nil {
		return report, err
	}

	batchID := uuid.New().String()
	logger.Debug("Batch %s: %d paths, chunk size %d, overlap %d",
		batchID, len(paths), splitter.ChunkSize(), splitter.Overlap())

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			report.AddError(path, err)
			continue
		}

		doc, err := a.registry.Normalise(ctx, path, content)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			report.AddError(path, err)
			continue
		}

		chunks := splitter.Split(doc.ID, doc.Content)
		report.Documents++
		if len(chunks) == 0 {
			logger.Debug("Document %s produced no chunks", doc.ID)
			continue
		}

		records, err := a.embedChunks(ctx, doc, chunks, batchID)
		if err != nil {
			return report, err
		}

		if err := a.store.Upsert(ctx, records); err != nil {
			return report, fmt.Errorf("storing records for %s: %w", doc.ID, err)
		}

		report.Chunks += len(chunks)
		report.Records += len(records)
		logger.Info("Ingested %s: %d chunks", doc.ID, len(chunks))
	}

	return report, nil
}

// embedChunks embeds a document's chunks in one batch and builds the
// embedding records, bounded by the configured timeout.
func (a *Assistant) embedChunks(
	ctx context.Context,
	doc *domain.Document,
	chunks []domain.Chunk,
	batchID string,
) ([]domain.EmbeddingRecord, error) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embedCtx, cancel := context.WithTimeout(ctx, a.settings.Timeout)
	defer cancel()

	vectors, err := a.embedder.EmbedBatch(embedCtx, texts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: embedding %s: %w", domain.ErrTimeout, doc.ID, err)
		}
		return nil, fmt.Errorf("%w: embedding %s: %w", domain.ErrEmbedding, doc.ID, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: expected %d vectors for %s, got %d",
			domain.ErrEmbedding, len(chunks), doc.ID, len(vectors))
	}

	records := make([]domain.EmbeddingRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = domain.EmbeddingRecord{
			ID:         chunk.ID(),
			Vector:     vectors[i],
			Text:       chunk.Text,
			DocumentID: chunk.DocumentID,
			ChunkIndex: chunk.Index,
			IngestedAt: doc.IngestedAt,
			Metadata: map[string]string{
				"batch": batchID,
				"title": doc.Title,
				"path":  doc.Path,
			},
		}
	}
	return records, nil
}

// Query answers a question from the collection.
func (a *Assistant) Query(
	ctx context.Context,
	text string,
	opts driving.QueryOptions,
) (*domain.Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: query text must not be empty", domain.ErrInvalidConfig)
	}

	logger.Section("Query Execution")
	logger.Debug("Question: %q", text)

	topK := opts.TopK
	if topK <= 0 {
		topK = a.settings.Retrieval.TopK
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	temperature := a.settings.Retrieval.Temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	queryCtx, cancel := context.WithTimeout(ctx, a.settings.Timeout)
	defer cancel()

	chunks, err := a.retriever.Retrieve(queryCtx, text, topK)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: retrieval: %w", domain.ErrTimeout, err)
		}
		return nil, err
	}

	return a.generator.Generate(queryCtx, text, chunks, temperature)
}

// Stats reports the collection's current state.
func (a *Assistant) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	count, err := a.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}

	dims, err := a.store.Dimensions(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading dimensionality: %w", err)
	}

	return &domain.CollectionStats{
		Records:        count,
		Path:           a.store.Path(),
		Dimensions:     dims,
		EmbeddingModel: a.embedder.ModelName(),
	}, nil
}

// Documents lists the ingested documents, in first-ingestion order.
func (a *Assistant) Documents(ctx context.Context) ([]domain.DocumentSummary, error) {
	summaries, err := a.store.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return summaries, nil
}

// Clear irreversibly removes all records from the collection.
func (a *Assistant) Clear(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing collection: %w", err)
	}
	logger.Info("Collection cleared")
	return nil
}

// newChunker builds a chunker from the per-call options, falling back
// to the configured defaults.
func (a *Assistant) newChunker(opts driving.AddOptions) (*chunker.Chunker, error) {
	size := opts.ChunkSize
	if size == 0 {
		size = a.settings.Chunking.Size
	}
	overlap := opts.ChunkOverlap
	if overlap == 0 {
		overlap = a.settings.Chunking.Overlap
	}

	var chunkerOpts []chunker.Option
	if size != 0 {
		chunkerOpts = append(chunkerOpts, chunker.WithChunkSize(size))
	}
	if overlap != 0 {
		chunkerOpts = append(chunkerOpts, chunker.WithOverlap(overlap))
	}
	return chunker.New(chunkerOpts...)
}
