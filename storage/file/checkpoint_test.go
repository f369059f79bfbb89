package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/scriptura/core"
	"github.com/poiesic/scriptura/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "processed_kjv_books.json", FileName("kjv"))
	assert.Equal(t, "processed_world_english_bible_books.json", FileName(core.CheckpointKey("World English Bible")))
	assert.Equal(t, "processed_.._etc_books.json", FileName("../etc"))
}

func TestLoadCheckpoint_Missing(t *testing.T) {
	repo, err := NewCheckpointRepository(t.TempDir())
	require.NoError(t, err)

	checkpoint, err := repo.LoadCheckpoint(context.Background(), "kjv")
	require.NoError(t, err)
	assert.Nil(t, checkpoint)
}

func TestSaveAndLoadCheckpoint(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewCheckpointRepository(dir)
	require.NoError(t, err)
	ctx := context.Background()

	checkpoint := &core.Checkpoint{Key: "kjv", Books: []string{"GEN", "EXO"}}
	require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint))
	assert.False(t, checkpoint.UpdatedAt.IsZero())

	// Stored as a plain JSON array
	data, err := os.ReadFile(filepath.Join(dir, "processed_kjv_books.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `["GEN","EXO"]`, string(data))

	loaded, err := repo.LoadCheckpoint(ctx, "kjv")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "kjv", loaded.Key)
	assert.Equal(t, []string{"GEN", "EXO"}, loaded.Books)
}

func TestSaveCheckpoint_Overwrites(t *testing.T) {
	repo, err := NewCheckpointRepository(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{Key: "kjv", Books: []string{"GEN"}}))
	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{Key: "kjv", Books: []string{"GEN", "EXO", "LEV"}}))

	loaded, err := repo.LoadCheckpoint(ctx, "kjv")
	require.NoError(t, err)
	assert.Equal(t, []string{"GEN", "EXO", "LEV"}, loaded.Books)

	// No temp files left behind
	entries, err := os.ReadDir(repo.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveCheckpoint_EmptySetWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewCheckpointRepository(dir)
	require.NoError(t, err)

	require.NoError(t, repo.SaveCheckpoint(context.Background(), &core.Checkpoint{Key: "asv"}))

	data, err := os.ReadFile(filepath.Join(dir, "processed_asv_books.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestLoadCheckpoint_Corrupt(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewCheckpointRepository(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "processed_kjv_books.json"), []byte("{not json"), 0644))

	checkpoint, err := repo.LoadCheckpoint(context.Background(), "kjv")
	assert.ErrorIs(t, err, storage.ErrSerializationFailed)
	assert.Nil(t, checkpoint)
}

func TestEmptyKey(t *testing.T) {
	repo, err := NewCheckpointRepository(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.LoadCheckpoint(ctx, "")
	assert.ErrorIs(t, err, storage.ErrEmptyKey)

	err = repo.SaveCheckpoint(ctx, &core.Checkpoint{})
	assert.ErrorIs(t, err, storage.ErrEmptyKey)
}

func TestNewCheckpointRepository_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "checkpoints")
	_, err := NewCheckpointRepository(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
