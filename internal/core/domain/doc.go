// Package domain defines the core business entities for Memoria.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A loaded document ready for chunking
//   - Chunk: A bounded, overlapping segment of document text
//   - EmbeddingRecord: The persisted unit in the vector store
//   - RetrievedChunk: A chunk plus similarity score returned by retrieval
//   - Answer: A generated answer with its source chunks
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
