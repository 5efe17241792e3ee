package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".md"}, New().Extensions())
}

func TestNormalise_StripsFormatting(t *testing.T) {
	input := "# Title\n\nSome **bold** text with a [link](https://example.com).\n\n- item one\n- item two\n"

	text, err := New().Normalise(context.Background(), "doc.md", []byte(input))
	require.NoError(t, err)

	assert.Contains(t, text, "Title")
	assert.Contains(t, text, "Some bold text with a link.")
	assert.Contains(t, text, "item one")
	assert.NotContains(t, text, "#")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "](")
	assert.NotContains(t, text, "https://example.com")
}

func TestNormalise_Empty(t *testing.T) {
	text, err := New().Normalise(context.Background(), "empty.md", nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNormalise_PlainParagraphsSurvive(t *testing.T) {
	input := "First paragraph.\n\nSecond paragraph."

	text, err := New().Normalise(context.Background(), "doc.md", []byte(input))
	require.NoError(t, err)
	assert.Contains(t, text, "First paragraph.")
	assert.Contains(t, text, "Second paragraph.")
}
