package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidConfig", ErrInvalidConfig},
		{"ErrEmbedding", ErrEmbedding},
		{"ErrDimensionMismatch", ErrDimensionMismatch},
		{"ErrGeneration", ErrGeneration},
		{"ErrEmptyCollection", ErrEmptyCollection},
		{"ErrTimeout", ErrTimeout},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrNotFound", ErrNotFound},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that the sentinels do not alias each other
func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrInvalidConfig, ErrEmbedding))
	assert.False(t, errors.Is(ErrDimensionMismatch, ErrEmptyCollection))
	assert.False(t, errors.Is(ErrGeneration, ErrTimeout))
}

// TestErrors_Wrapping tests that wrapped errors still match with errors.Is
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("chunk size must be positive: %w", ErrInvalidConfig)
	assert.True(t, errors.Is(wrapped, ErrInvalidConfig))

	wrapped = fmt.Errorf("%w: ollama returned 500", ErrEmbedding)
	assert.True(t, errors.Is(wrapped, ErrEmbedding))
}
