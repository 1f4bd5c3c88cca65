package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// DocumentFormat identifies the source format of an ingested document.
type DocumentFormat string

// Supported document formats.
const (
	// FormatPlainText is raw text, including text extracted from PDFs.
	FormatPlainText DocumentFormat = "text"

	// FormatMarkdown is Markdown source, stripped to plain text on load.
	FormatMarkdown DocumentFormat = "markdown"
)

// Document is a unit of ingested content. It exists only for the duration
// of the ingestion call that loaded it: once chunked and embedded, the
// document itself is discarded and only its embedding records persist.
type Document struct {
	// ID is the unique identifier, derived from the source path.
	ID string

	// Path is the original file location.
	Path string

	// Title is the human-readable title (first heading or filename).
	Title string

	// Content is the full text after normalisation.
	Content string

	// Format is the detected source format.
	Format DocumentFormat

	// IngestedAt is when the document was loaded.
	IngestedAt time.Time
}

// Chunk is a contiguous segment of a document's text plus overlap context.
// Chunks are created once per ingestion pass and never mutated; they are
// persisted indirectly via their embedding record.
type Chunk struct {
	// Text is the chunk content, an exact substring of the document text.
	Text string

	// DocumentID links to the source document.
	DocumentID string

	// Index is the ordinal position within the document.
	Index int

	// Start and End are the rune offsets of the chunk within the
	// document text. Consecutive chunks overlap: Start of chunk i+1 is
	// End of chunk i minus the configured overlap.
	Start int
	End   int
}

// ID returns the content-derived record identifier for this chunk.
// Identical document ID, index and text always produce the same ID, so
// re-ingesting an unchanged document replaces its records rather than
// duplicating them.
func (c Chunk) ID() string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s\x00%d\x00%s", c.DocumentID, c.Index, c.Text))
	return hex.EncodeToString(h[:16])
}

// EmbeddingRecord is the persisted unit in the vector store: a vector,
// the chunk text it was computed from, and provenance metadata.
// Records are read-only after creation and removed only by clearing
// the whole collection.
type EmbeddingRecord struct {
	// ID is the unique record identifier (content-derived).
	ID string

	// Vector is the dense embedding. Its length must match the
	// collection's established dimensionality.
	Vector []float32

	// Text is the source chunk text.
	Text string

	// DocumentID identifies the source document.
	DocumentID string

	// ChunkIndex is the chunk's ordinal position within the document.
	ChunkIndex int

	// IngestedAt is when the record was created.
	IngestedAt time.Time

	// Metadata carries additional provenance (ingest batch, title).
	Metadata map[string]string
}

// DocumentSummary describes one ingested document as reflected by its
// stored records.
type DocumentSummary struct {
	// ID is the document identifier.
	ID string `json:"id"`

	// Chunks is the number of records stored for the document.
	Chunks int `json:"chunks"`
}

// RetrievedChunk is one entry of a query result: chunk text, its cosine
// similarity to the query, and provenance. Ephemeral, never persisted.
type RetrievedChunk struct {
	// Text is the chunk content.
	Text string `json:"text"`

	// Score is the cosine similarity to the query, descending order.
	Score float64 `json:"score"`

	// DocumentID identifies the source document.
	DocumentID string `json:"document_id"`

	// ChunkIndex is the chunk position within the source document.
	ChunkIndex int `json:"chunk_index"`
}

// Source returns the traceability tag for this chunk, e.g. "notes.md#2".
func (r RetrievedChunk) Source() string {
	return fmt.Sprintf("%s#%d", r.DocumentID, r.ChunkIndex)
}

// Answer is a generated response grounded in retrieved context.
type Answer struct {
	// Text is the generated answer.
	Text string `json:"answer"`

	// Sources are the retrieved chunks the answer was grounded in,
	// in retrieval order.
	Sources []RetrievedChunk `json:"sources"`
}

// CollectionStats describes the current state of the collection.
type CollectionStats struct {
	// Records is the total number of stored embedding records.
	Records int `json:"records"`

	// Path is the on-disk location of the collection.
	Path string `json:"path"`

	// Dimensions is the collection's vector dimensionality
	// (0 when the collection is empty and unestablished).
	Dimensions int `json:"dimensions"`

	// EmbeddingModel is the configured embedding model name.
	EmbeddingModel string `json:"embedding_model"`
}
