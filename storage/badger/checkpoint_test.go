package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/scriptura/core"
	"github.com/poiesic/scriptura/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRepository_LoadMissing(t *testing.T) {
	_, repo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	checkpoint, err := repo.LoadCheckpoint(context.Background(), "kjv")
	require.NoError(t, err)
	assert.Nil(t, checkpoint)
}

func TestCheckpointRepository_SaveAndLoad(t *testing.T) {
	_, repo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	checkpoint := &core.Checkpoint{Key: "kjv", Books: []string{"GEN", "EXO"}}
	require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint))
	assert.False(t, checkpoint.UpdatedAt.IsZero())

	loaded, err := repo.LoadCheckpoint(ctx, "kjv")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "kjv", loaded.Key)
	assert.Equal(t, []string{"GEN", "EXO"}, loaded.Books)
	assert.True(t, checkpoint.UpdatedAt.Equal(loaded.UpdatedAt))
}

func TestCheckpointRepository_UpdatedAtSurvivesReload(t *testing.T) {
	_, repo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		checkpoint := &core.Checkpoint{Key: "kjv", Books: []string{"GEN"}}
		require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint))
		assert.Equal(t, checkpoint.UpdatedAt, checkpoint.UpdatedAt.Truncate(time.Microsecond))

		loaded, err := repo.LoadCheckpoint(ctx, "kjv")
		require.NoError(t, err)
		require.True(t, checkpoint.UpdatedAt.Equal(loaded.UpdatedAt),
			"saved %v, loaded %v", checkpoint.UpdatedAt, loaded.UpdatedAt)
	}
}

func TestCheckpointRepository_KeysAreIsolated(t *testing.T) {
	_, repo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{Key: "kjv", Books: []string{"GEN"}}))
	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{Key: "asv", Books: []string{"MAT", "MRK"}}))
	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{Key: "kjv", Books: []string{"GEN", "EXO"}}))

	kjv, err := repo.LoadCheckpoint(ctx, "kjv")
	require.NoError(t, err)
	assert.Equal(t, []string{"GEN", "EXO"}, kjv.Books)

	asv, err := repo.LoadCheckpoint(ctx, "asv")
	require.NoError(t, err)
	assert.Equal(t, []string{"MAT", "MRK"}, asv.Books)
}

func TestCheckpointRepository_EmptyKey(t *testing.T) {
	_, repo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = repo.LoadCheckpoint(context.Background(), "")
	assert.ErrorIs(t, err, storage.ErrEmptyKey)
	assert.ErrorIs(t, repo.SaveCheckpoint(context.Background(), &core.Checkpoint{}), storage.ErrEmptyKey)
}
