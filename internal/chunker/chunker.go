// Package chunker splits document text into overlapping, sentence-aware
// segments suitable for embedding.
package chunker

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

// DefaultChunkSize is the default target chunk length in characters.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = domain.DefaultChunkOverlap

// Chunker splits text into chunks of at most chunkSize characters,
// preferring sentence boundaries near the cut point. Consecutive chunks
// from the same document overlap by exactly the configured overlap,
// except that the final chunk may be shorter than the target size.
//
// Lengths and offsets are measured in runes so multi-byte text never
// splits mid-character.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		c.chunkSize = size
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker with the given options. Invalid parameters are
// rejected, not clamped: chunk size must be positive and overlap must
// satisfy 0 <= overlap < size.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d",
			domain.ErrInvalidConfig, c.chunkSize)
	}
	if c.overlap < 0 || c.overlap >= c.chunkSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, %d), got %d",
			domain.ErrInvalidConfig, c.chunkSize, c.overlap)
	}

	return c, nil
}

// ChunkSize returns the configured target chunk size.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split chunks the given text. Every chunk is an exact substring of the
// input, and chunk i+1 starts exactly overlap runes before the end of
// chunk i, so the original text is reconstructible by concatenating the
// chunks after dropping each subsequent chunk's leading overlap.
//
// Split is a pure function of its input: no side effects, restartable.
// Empty or whitespace-only input produces zero chunks.
func (c *Chunker) Split(documentID, text string) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	n := len(runes)

	var chunks []domain.Chunk
	start := 0
	index := 0

	for start < n {
		end := start + c.chunkSize
		if end >= n {
			end = n
		} else if cut := c.boundaryCut(runes, start, end); cut > start+c.overlap {
			// Only accept the boundary when the next chunk still
			// advances past the current start.
			end = cut
		}

		chunks = append(chunks, domain.Chunk{
			Text:       string(runes[start:end]),
			DocumentID: documentID,
			Index:      index,
			Start:      start,
			End:        end,
		})

		if end == n {
			break
		}
		start = end - c.overlap
		index++
	}

	return chunks
}

// boundaryCut looks backwards from the hard cut point for a sentence or
// line boundary within the lookback window (20% of the chunk size) and
// returns the adjusted cut position, or 0 if no boundary was found.
func (c *Chunker) boundaryCut(runes []rune, start, end int) int {
	window := c.chunkSize / 5
	limit := end - window
	if limit < start {
		limit = start
	}

	for i := end - 1; i >= limit; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
		if isSentenceEnd(runes[i]) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			// Cut after the terminator and its following space so the
			// next chunk starts at the new sentence.
			if i+2 <= end {
				return i + 2
			}
			return i + 1
		}
	}

	return 0
}

// isSentenceEnd reports whether r terminates a sentence.
func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
