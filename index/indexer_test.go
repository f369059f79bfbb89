package index

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/scriptura/ai/mock"
	"github.com/poiesic/scriptura/core"
	"github.com/poiesic/scriptura/storage"
	"github.com/poiesic/scriptura/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIndexer(t *testing.T, embedder *mock.MockEmbedder, opts ...Option) (*Indexer, storage.VerseRepository) {
	t.Helper()
	verses, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	ix, err := NewIndexer(verses, embedder, opts...)
	require.NoError(t, err)
	return ix, verses
}

func batchOf(texts ...*string) []core.VerseRecord {
	batch := make([]core.VerseRecord, len(texts))
	for i, text := range texts {
		batch[i] = core.NewVerseRecord("GEN", "KJV", 1, i+1, text)
	}
	return batch
}

func str(s string) *string { return &s }

func TestNewIndexer_Validation(t *testing.T) {
	_, err := NewIndexer(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	verses, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewIndexer(verses, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestIndexer_Submit(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	var seen []string
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		seen = texts
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{3, 4}
		}
		return out, nil
	}
	ix, verses := setupIndexer(t, embedder)
	ctx := context.Background()

	require.NoError(t, ix.Submit(ctx, batchOf(str("In the beginning"), nil)))
	assert.Equal(t, []string{"In the beginning", ""}, seen, "absent text embeds as empty")

	stored, err := verses.GetVerse(ctx, "GEN:1:1:KJV")
	require.NoError(t, err)
	assert.Equal(t, "In the beginning", *stored.Record.Text)
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, stored.Vector, 1e-6)
	assert.False(t, stored.IndexedAt.IsZero())

	absent, err := verses.GetVerse(ctx, "GEN:1:2:KJV")
	require.NoError(t, err)
	assert.Nil(t, absent.Record.Text)

	count, err := verses.CountVerses(ctx, "KJV")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIndexer_SubmitIsIdempotent(t *testing.T) {
	ix, verses := setupIndexer(t, mock.NewMockEmbedder())
	ctx := context.Background()
	batch := batchOf(str("a"), str("b"))

	require.NoError(t, ix.Submit(ctx, batch))
	require.NoError(t, ix.Submit(ctx, batch))

	count, err := verses.CountVerses(ctx, "KJV")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIndexer_EmbedderFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, errors.New("503 service unavailable")
	}
	ix, verses := setupIndexer(t, embedder)
	ctx := context.Background()

	err := ix.Submit(ctx, batchOf(str("a")))
	assert.ErrorContains(t, err, "503")

	count, err := verses.CountVerses(ctx, "KJV")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIndexer_CountMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return [][]float32{{1}}, nil
	}
	ix, _ := setupIndexer(t, embedder)

	err := ix.Submit(context.Background(), batchOf(str("a"), str("b")))
	assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
}

func TestIndexer_EmptyBatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	ix, _ := setupIndexer(t, embedder)

	require.NoError(t, ix.Submit(context.Background(), nil))
	assert.Zero(t, embedder.CallCount())
}

func TestIndexer_RateLimit(t *testing.T) {
	ix, _ := setupIndexer(t, mock.NewMockEmbedder(), WithRateLimit(20, 1))
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, ix.Submit(ctx, batchOf(str("a"))))
	}
	// First call uses the burst token; the next two wait ~50ms each
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestIndexer_RateLimitHonorsContext(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	ix, _ := setupIndexer(t, embedder, WithRateLimit(0.001, 1))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, ix.Submit(ctx, batchOf(str("a"))))
	assert.Error(t, ix.Submit(ctx, batchOf(str("b"))))
	assert.Equal(t, 1, embedder.CallCount())
}
