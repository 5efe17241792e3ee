package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

func TestListCmd_PrintsPaths(t *testing.T) {
	knowledge, _, cleanup := setupTestServices()
	defer cleanup()
	knowledge.paths = []string{"/docs/a.md", "/notes/x.md"}

	out, err := execute("list")

	require.NoError(t, err)
	assert.Contains(t, out, "/docs/a.md")
	assert.Contains(t, out, "/notes/x.md")
	assert.Equal(t, domain.DocTypeAll, knowledge.lastType)
}

func TestListCmd_EmptyIndex(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("list")

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing indexed yet.")
}

func TestListCmd_TypeFlag(t *testing.T) {
	knowledge, _, cleanup := setupTestServices()
	defer cleanup()
	defer func() { listType = "all" }()

	_, err := execute("list", "--type", "document")

	require.NoError(t, err)
	assert.Equal(t, domain.DocTypeDocument, knowledge.lastType)
}

func TestDeleteCmd_ReportsOutcomes(t *testing.T) {
	knowledge, _, cleanup := setupTestServices()
	defer cleanup()
	knowledge.reports = []domain.PathReport{
		{Path: "/docs/a.md", Status: domain.PathDeleted},
		{Path: "/docs/gone.md", Status: domain.PathNotFound},
	}

	out, err := execute("delete", "/docs/a.md", "/docs/gone.md")

	require.NoError(t, err)
	assert.Contains(t, out, "deleted")
	assert.Contains(t, out, "not found")
	assert.Equal(t, domain.DocTypeAll, knowledge.lastType)
}

func TestContentCmd_PrintsChunks(t *testing.T) {
	knowledge, _, cleanup := setupTestServices()
	defer cleanup()
	knowledge.content = domain.Content{
		Texts:     []string{"first chunk", "second chunk"},
		Metadatas: []domain.Metadata{{Source: "/docs/a.md", Type: domain.DocTypeDocument}},
	}

	out, err := execute("content", "/docs/a.md")

	require.NoError(t, err)
	assert.Contains(t, out, "first chunk")
	assert.Contains(t, out, "second chunk")
}

func TestContentCmd_UnknownPath(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("content", "/nowhere.md")

	require.NoError(t, err)
	assert.Contains(t, out, "is not indexed")
}

func TestKeywordCmd_PrintsSnippets(t *testing.T) {
	knowledge, _, cleanup := setupTestServices()
	defer cleanup()
	knowledge.snippets = []string{"buy milk tomorrow"}

	out, err := execute("keyword", "milk")

	require.NoError(t, err)
	assert.Contains(t, out, "buy milk tomorrow")
	assert.Equal(t, domain.DocTypeAll, knowledge.lastType)
}
