// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and available as a throwaway collection
// backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory vector store. All state is lost on close.
type VectorStore struct {
	mu      sync.RWMutex
	records []domain.EmbeddingRecord
	byID    map[string]int
	dims    int
}

// NewVectorStore creates an empty in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		byID: make(map[string]int),
	}
}

// Upsert stores the given records. Replaced records keep their original
// insertion position.
func (s *VectorStore) Upsert(_ context.Context, records []domain.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dims := s.dims
	if dims == 0 {
		dims = len(records[0].Vector)
		if dims == 0 {
			return fmt.Errorf("%w: record %q has an empty vector",
				domain.ErrDimensionMismatch, records[0].ID)
		}
	}

	for _, record := range records {
		if len(record.Vector) != dims {
			return fmt.Errorf("%w: record %q has %d dimensions, collection has %d",
				domain.ErrDimensionMismatch, record.ID, len(record.Vector), dims)
		}
	}

	s.dims = dims
	for _, record := range records {
		if i, ok := s.byID[record.ID]; ok {
			s.records[i] = record
			continue
		}
		s.byID[record.ID] = len(s.records)
		s.records = append(s.records, record)
	}
	return nil
}

// Search returns up to topK records by descending cosine similarity,
// ties broken by insertion order.
func (s *VectorStore) Search(_ context.Context, query []float32, topK int) ([]driven.SearchHit, error) {
	if topK < 1 {
		return nil, fmt.Errorf("topK must be >= 1, got %d", topK)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, nil
	}
	if len(query) != s.dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, collection has %d",
			domain.ErrDimensionMismatch, len(query), s.dims)
	}

	hits := make([]driven.SearchHit, 0, len(s.records))
	for _, record := range s.records {
		hits = append(hits, driven.SearchHit{
			Record: record,
			Score:  domain.CosineSimilarity(query, record.Vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// Count returns the number of stored records.
func (s *VectorStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Clear removes all records and resets the dimensionality.
func (s *VectorStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.byID = make(map[string]int)
	s.dims = 0
	return nil
}

// Documents summarises stored records per document, in first-ingestion
// order.
func (s *VectorStore) Documents(_ context.Context) ([]domain.DocumentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[string]int)
	var summaries []domain.DocumentSummary
	for _, record := range s.records {
		if i, ok := index[record.DocumentID]; ok {
			summaries[i].Chunks++
			continue
		}
		index[record.DocumentID] = len(summaries)
		summaries = append(summaries, domain.DocumentSummary{ID: record.DocumentID, Chunks: 1})
	}
	return summaries, nil
}

// Dimensions returns the established dimensionality, or 0 when unset.
func (s *VectorStore) Dimensions(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dims, nil
}

// Path returns a placeholder, as the store has no backing file.
func (s *VectorStore) Path() string {
	return ":memory:"
}

// Close is a no-op.
func (s *VectorStore) Close() error {
	return nil
}
