// Package local provides an embedding service that runs a sentence
// transformer model in-process via ONNX, requiring no external service
// and no API key.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"

	"github.com/custodia-labs/memoria-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memoria-cli/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	// DefaultModel produces 384-dimensional embeddings and is small
	// enough to download and run on a laptop.
	DefaultModel         = "sentence-transformers/all-MiniLM-L6-v2"
	DefaultDimensions    = 384
	DefaultMaxInputChars = 8000
)

// Config holds configuration for the local embedding service.
type Config struct {
	// Model is the Hugging Face model name (default: all-MiniLM-L6-v2).
	Model string

	// ModelDir is where models are downloaded and cached
	// (default: ~/.memoria/models).
	ModelDir string

	// Dimensions is the embedding vector size (default: 384).
	Dimensions int

	// MaxInputChars caps the input length per text; longer inputs are
	// truncated with a warning (default: 8000).
	MaxInputChars int
}

// EmbeddingService generates embeddings with an in-process ONNX model.
// The model loads lazily on first use, so constructing the service is
// cheap and commands that never embed pay nothing.
type EmbeddingService struct {
	model         string
	modelDir      string
	dimensions    int
	maxInputChars int

	once    sync.Once
	initErr error
	session interface{ Destroy() error }
	run     func(texts []string) ([][]float32, error)
}

// NewEmbeddingService creates a new local embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.ModelDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		cfg.ModelDir = filepath.Join(home, ".memoria", "models")
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.MaxInputChars == 0 {
		cfg.MaxInputChars = DefaultMaxInputChars
	}

	return &EmbeddingService{
		model:         cfg.Model,
		modelDir:      cfg.ModelDir,
		dimensions:    cfg.Dimensions,
		maxInputChars: cfg.MaxInputChars,
	}, nil
}

// load downloads the model if needed and builds the inference pipeline.
// Runs at most once; subsequent calls return the first outcome.
func (s *EmbeddingService) load() error {
	s.once.Do(func() {
		modelPath, err := s.prepareModel()
		if err != nil {
			s.initErr = err
			return
		}

		session, err := hugot.NewGoSession()
		if err != nil {
			s.initErr = fmt.Errorf("creating inference session: %w", err)
			return
		}

		pipeline, err := hugot.NewPipeline(session, hugot.FeatureExtractionConfig{
			ModelPath: modelPath,
			Name:      "memoria-embedder",
		})
		if err != nil {
			if destroyErr := session.Destroy(); destroyErr != nil {
				s.initErr = fmt.Errorf("creating pipeline: %w (cleanup error: %v)", err, destroyErr)
				return
			}
			s.initErr = fmt.Errorf("creating pipeline: %w", err)
			return
		}

		s.session = session
		s.run = func(texts []string) ([][]float32, error) {
			result, err := pipeline.RunPipeline(texts)
			if err != nil {
				return nil, err
			}
			return result.Embeddings, nil
		}
	})
	return s.initErr
}

// prepareModel downloads the model if it is not already cached and
// returns the local model path.
func (s *EmbeddingService) prepareModel() (string, error) {
	cachedName := strings.ReplaceAll(s.model, "/", "_")
	modelPath := filepath.Join(s.modelDir, cachedName)

	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	}

	if err := os.MkdirAll(s.modelDir, 0700); err != nil {
		return "", fmt.Errorf("creating model directory: %w", err)
	}

	logger.Info("downloading embedding model %s to %s", s.model, s.modelDir)
	downloadOptions := hugot.NewDownloadOptions()
	downloadOptions.OnnxFilePath = "onnx/model.onnx"
	downloadedPath, err := hugot.DownloadModel(s.model, s.modelDir, downloadOptions)
	if err != nil {
		return "", fmt.Errorf("downloading model %s: %w", s.model, err)
	}
	return downloadedPath, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("local: no embedding generated")
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one pipeline run.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input := make([]string, len(texts))
	for i, text := range texts {
		input[i] = truncate(text, s.maxInputChars)
	}

	embeddings, err := s.run(input)
	if err != nil {
		return nil, fmt.Errorf("running embedding pipeline: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("local: expected %d embeddings, got %d", len(texts), len(embeddings))
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping loads the model, downloading it on first run. Unlike the remote
// adapters this is not lightweight, but a loaded model is the only
// meaningful readiness signal for in-process inference.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return s.load()
}

// Close releases the inference session.
func (s *EmbeddingService) Close() error {
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}

// truncate caps text at maxChars runes.
func truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	logger.Warn("embedding input truncated from %d to %d characters", len(runes), maxChars)
	return string(runes[:maxChars])
}
