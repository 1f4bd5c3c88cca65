package driven

import (
	"context"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

// Normaliser converts raw file content into a domain.Document ready for
// chunking. Each normaliser handles a set of file extensions; selection
// happens through the normaliser registry.
type Normaliser interface {
	// Extensions returns the lower-case file extensions this
	// normaliser handles, including the leading dot.
	Extensions() []string

	// Normalise converts raw content into a document. The returned
	// document's ID is derived from the path.
	Normalise(ctx context.Context, path string, content []byte) (*domain.Document, error)
}
