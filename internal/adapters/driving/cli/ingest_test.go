package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [paths...]", ingestCmd.Use)
}

func TestIngestCmd_DefaultTypeIsDocument(t *testing.T) {
	flag := ingestCmd.Flags().Lookup("type")
	require.NotNil(t, flag)
	assert.Equal(t, "document", flag.DefValue)
}

func TestIngestCmd_RequiresPaths(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("ingest")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestIngestCmd_ReportsPerPath(t *testing.T) {
	knowledge, _, cleanup := setupTestServices()
	defer cleanup()
	knowledge.reports = []domain.PathReport{
		{Path: "/docs/a.md", Status: domain.PathIngested},
		{Path: "/docs/b.md", Status: domain.PathSkipped},
		{Path: "/docs/c.png", Status: domain.PathFailed, Err: errors.New("unsupported document format")},
	}

	out, err := execute("ingest", "/docs/a.md", "/docs/b.md", "/docs/c.png")

	require.NoError(t, err)
	assert.Contains(t, out, "ingested")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "unsupported document format")
	assert.Contains(t, out, "1 of 3 files failed.")
	assert.Equal(t, []string{"/docs/a.md", "/docs/b.md", "/docs/c.png"}, knowledge.lastPaths)
	assert.Equal(t, domain.DocTypeDocument, knowledge.lastType)
}

func TestIngestCmd_NoteType(t *testing.T) {
	knowledge, _, cleanup := setupTestServices()
	defer cleanup()
	defer func() { ingestType = "document" }()

	_, err := execute("ingest", "--type", "note", "/notes/x.md")

	require.NoError(t, err)
	assert.Equal(t, domain.DocTypeNote, knowledge.lastType)
}
