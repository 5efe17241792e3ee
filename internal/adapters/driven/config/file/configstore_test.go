package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(KeyAPIKey, "sk-test"))
	require.NoError(t, store.Set(KeyEmbeddingBatch, 10))
	require.NoError(t, store.Set(KeyNotesSyncOnStart, true))

	assert.Equal(t, "sk-test", store.GetString(KeyAPIKey))
	assert.Equal(t, 10, store.GetInt(KeyEmbeddingBatch))
	assert.True(t, store.GetBool(KeyNotesSyncOnStart))
}

func TestConfigStore_MissingKeyZeroValues(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStore_WrongTypeZeroValues(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("key", "a string"))

	assert.Equal(t, 0, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyNotesDir, "/home/user/notes"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "/home/user/notes", reopened.GetString(KeyNotesDir))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[dashscope]\napi_key = \"sk-from-file\"\n\n[embedding]\nbatch_size = 25\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-file", store.GetString(KeyAPIKey))
	assert.Equal(t, 25, store.GetInt(KeyEmbeddingBatch))
}

func TestConfigStore_RestrictedFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyAPIKey, "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
