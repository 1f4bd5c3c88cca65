package driven

import (
	"context"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a file.
// Dispatch is by file extension, case-insensitive.
type NormaliserRegistry interface {
	// Normalise converts the file at path using the best matching
	// normaliser. Returns domain.ErrUnsupportedFormat when no
	// registered normaliser handles the extension.
	Normalise(ctx context.Context, path string, content []byte) (*domain.Document, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// Extensions returns all file extensions that can be normalised.
	Extensions() []string
}
