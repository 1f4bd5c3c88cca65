package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidConfig indicates an invalid parameter value
	// (chunk size, overlap, temperature, top-k).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmbedding indicates the embedding model is unavailable
	// or rejected its input.
	ErrEmbedding = errors.New("embedding failed")

	// ErrDimensionMismatch indicates a vector's length differs from
	// the collection's established dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrGeneration indicates the LLM completion call failed.
	ErrGeneration = errors.New("answer generation failed")

	// ErrEmptyCollection indicates a query was issued against a
	// collection with zero records.
	ErrEmptyCollection = errors.New("collection is empty")

	// ErrTimeout indicates a bounded external call exceeded its deadline.
	ErrTimeout = errors.New("operation timed out")

	// ErrUnsupportedFormat indicates a document format no normaliser handles.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Queries cannot be answered without a completion provider.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Neither ingestion nor retrieval works without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
