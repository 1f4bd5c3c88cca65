package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memoria-cli/internal/core/domain"
)

func TestExtensions(t *testing.T) {
	normaliser := New()
	exts := normaliser.Extensions()

	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".markdown")
}

func TestNormalise_Success(t *testing.T) {
	normaliser := New()

	content := "# Project Notes\n\nSome **bold** text with a [link](https://example.com)."
	doc, err := normaliser.Normalise(context.Background(), "/notes/project.md", []byte(content))
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "project.md", doc.ID)
	assert.Equal(t, "Project Notes", doc.Title)
	assert.Equal(t, domain.FormatMarkdown, doc.Format)
	assert.Equal(t, "Project Notes\n\nSome bold text with a link.", doc.Content)
}

func TestNormalise_TitleFallsBackToFilename(t *testing.T) {
	normaliser := New()

	doc, err := normaliser.Normalise(context.Background(), "/notes/meeting_minutes.md", []byte("no headings here"))
	require.NoError(t, err)
	assert.Equal(t, "meeting minutes", doc.Title)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "code block removed",
			input:    "before\n```go\nfunc main() {}\n```\nafter",
			expected: "before\n\nafter",
		},
		{
			name:     "inline code removed",
			input:    "run `go test` locally",
			expected: "run  locally",
		},
		{
			name:     "image removed",
			input:    "see ![diagram](img.png) here",
			expected: "see  here",
		},
		{
			name:     "link keeps text",
			input:    "read [the docs](https://docs.example.com)",
			expected: "read the docs",
		},
		{
			name:     "headings stripped",
			input:    "## Section\n### Subsection",
			expected: "Section\nSubsection",
		},
		{
			name:     "list markers stripped",
			input:    "- first\n- second\n1. third",
			expected: "first\nsecond\nthird",
		},
		{
			name:     "blockquote stripped",
			input:    "> quoted line",
			expected: "quoted line",
		},
		{
			name:     "horizontal rule removed",
			input:    "above\n\n---\n\nbelow",
			expected: "above\n\nbelow",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stripMarkdown(tc.input))
		})
	}
}
