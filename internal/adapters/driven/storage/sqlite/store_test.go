package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

// setupTestStore creates a store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func testEntries() []domain.IndexEntry {
	return []domain.IndexEntry{
		{
			Vector: []float32{0.1, -0.2, 0.3},
			Chunk:  domain.Chunk{ID: 0, Text: "Preamble", Source: "constitution.pdf", PageNumber: 1},
		},
		{
			Vector: []float32{1, 0, 0},
			Chunk:  domain.Chunk{ID: 1, Text: "Article 14", Source: "constitution.pdf", PageNumber: 6, Position: 2},
		},
		{
			Vector: []float32{0, 0, 1},
			Chunk:  domain.Chunk{ID: 2, Text: "Notes", Source: "notes.txt"},
		},
	}
}

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "index")

	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, filepath.Join(dir, FileName))

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveEntries(ctx, testEntries()))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestOpenReadOnly(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	writer, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, writer.SaveEntries(ctx, testEntries()))
	require.NoError(t, writer.Close())

	dbPath := filepath.Join(dir, FileName)
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(dbPath, old, old))
	before, err := os.Stat(dbPath)
	require.NoError(t, err)

	store, err := OpenReadOnly(ctx, dir)
	require.NoError(t, err)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	err = store.SaveEntries(ctx, nil)
	assert.Error(t, err, "writes must be refused")
	require.NoError(t, store.Close())

	after, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.Equal(t, before.Size(), after.Size())
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestOpenReadOnly_Missing(t *testing.T) {
	_, err := OpenReadOnly(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenReadOnly_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(dbPath, nil, 0600))

	_, err := OpenReadOnly(context.Background(), dir)

	assert.ErrorIs(t, err, ErrSchemaMismatch)
	info, statErr := os.Stat(dbPath)
	require.NoError(t, statErr)
	assert.Zero(t, info.Size())
}

func TestOpenReadOnly_NewerSchema(t *testing.T) {
	dir := t.TempDir()

	writer, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	db, err := sql.Open("sqlite", filepath.Join(dir, FileName))
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO schema_migrations (version) VALUES (99)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = OpenReadOnly(context.Background(), dir)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestLatestVersion(t *testing.T) {
	v, err := latestVersion(migrations.FS)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestStore_SaveAndLoadEntries(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEntries(ctx, testEntries()))

	loaded, err := store.LoadEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, testEntries(), loaded)
}

func TestStore_SaveEntriesReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEntries(ctx, testEntries()))
	require.NoError(t, store.SaveEntries(ctx, testEntries()[:1]))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_LoadEntries_Empty(t *testing.T) {
	store := setupTestStore(t)

	loaded, err := store.LoadEntries(context.Background())

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_GetChunk(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveEntries(ctx, testEntries()))

	chunk, err := store.GetChunk(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, testEntries()[1].Chunk, *chunk)

	_, err = store.GetChunk(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SourceStats(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveEntries(ctx, testEntries()))

	stats, err := store.SourceStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"constitution.pdf": 2, "notes.txt": 1}, stats)
}

func TestFloat32Conversion(t *testing.T) {
	in := []float32{0, 1.5, -3.25, 1e-7}

	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	assert.Nil(t, bytesToFloat32Slice(nil))
	assert.Empty(t, float32SliceToBytes(nil))
}
