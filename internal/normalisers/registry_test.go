package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
	"github.com/custodia-labs/memoria-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/memoria-cli/internal/normalisers/plaintext"
)

func newRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	return r
}

func TestRegistry_DispatchByExtension(t *testing.T) {
	registry := newRegistry()
	ctx := context.Background()

	doc, err := registry.Normalise(ctx, "/notes/todo.txt", []byte("buy milk"))
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPlainText, doc.Format)

	doc, err = registry.Normalise(ctx, "/notes/readme.md", []byte("# Readme"))
	require.NoError(t, err)
	assert.Equal(t, domain.FormatMarkdown, doc.Format)
}

func TestRegistry_CaseInsensitiveExtension(t *testing.T) {
	registry := newRegistry()

	doc, err := registry.Normalise(context.Background(), "/notes/README.MD", []byte("# Title"))
	require.NoError(t, err)
	assert.Equal(t, domain.FormatMarkdown, doc.Format)
}

func TestRegistry_UnsupportedFormat(t *testing.T) {
	registry := newRegistry()

	tests := []string{"/bin/app.exe", "/img/photo.jpg", "/doc/noextension"}
	for _, path := range tests {
		_, err := registry.Normalise(context.Background(), path, []byte("data"))
		require.Error(t, err, path)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat, path)
	}
}

func TestRegistry_Extensions(t *testing.T) {
	registry := newRegistry()
	exts := registry.Extensions()

	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".markdown")
	assert.IsIncreasing(t, exts)
}
