package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper-labs/keeper-cli/internal/core/ports/driving"
)

func TestNotesSyncCmd_PrintsChanges(t *testing.T) {
	_, syncer, cleanup := setupTestServices()
	defer cleanup()
	syncer.result = driving.SyncResult{
		Added:   []string{"/notes/x.md"},
		Removed: []string{"/notes/old.md"},
	}

	out, err := execute("notes", "sync")

	require.NoError(t, err)
	assert.Equal(t, 1, syncer.runs)
	assert.Contains(t, out, "added    /notes/x.md")
	assert.Contains(t, out, "removed  /notes/old.md")
}

func TestNotesSyncCmd_InSync(t *testing.T) {
	_, syncer, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("notes", "sync")

	require.NoError(t, err)
	assert.Equal(t, 1, syncer.runs)
	assert.Contains(t, out, "Notes are in sync.")
}

func TestNotesSyncCmd_NotConfigured(t *testing.T) {
	SetServices(Services{})
	defer rootCmd.SetArgs(nil)

	_, err := execute("notes", "sync")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "note syncer not configured")
}

func TestVersionCmd(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()
	SetVersion("1.2.3")
	defer SetVersion("dev")

	out, err := execute("version")

	require.NoError(t, err)
	assert.Contains(t, out, "keeper version 1.2.3")
}
