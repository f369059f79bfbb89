package search

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

// fixedEmbedder maps known texts to vectors.
func fixedEmbedder(vectors map[string][]float32) *mock.MockEmbedder {
	m := mock.NewMockEmbedder()
	m.EmbedTextFunc = func(_ context.Context, text string) ([]float32, error) {
		if v, ok := vectors[text]; ok {
			return v, nil
		}
		return nil, errors.New("unknown text")
	}
	return m
}

func seed(t *testing.T, repo storage.VerseRepository, version string, verses map[int][]any) {
	t.Helper()
	for n, v := range verses {
		text := v[0].(string)
		record := core.NewVerseRecord("GEN", version, 1, n, &text)
		require.NoError(t, repo.UpsertVerses(context.Background(), &core.IndexedVerse{
			Record:    record,
			Vector:    v[1].([]float32),
			IndexedAt: time.Now(),
		}))
	}
}

func setupSearcher(t *testing.T, embedder *mock.MockEmbedder) (*Searcher, storage.VerseRepository) {
	t.Helper()
	verses, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	s, err := NewSearcher(verses, mock.NewMockProviderWithEmbedder(embedder), WithMinSimilarity(0.1))
	require.NoError(t, err)
	return s, verses
}

func TestNewSearcher_Validation(t *testing.T) {
	_, err := NewSearcher(nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrVerseRepositoryRequired)

	verses, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewSearcher(verses, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestSearch_RanksBySimilarity(t *testing.T) {
	s, repo := setupSearcher(t, fixedEmbedder(map[string][]float32{
		"light": {1, 0},
	}))
	seed(t, repo, "KJV", map[int][]any{
		1: {"In the beginning", []float32{0.6, 0.8}},
		3: {"Let there be light", []float32{1, 0}},
		4: {"Darkness", []float32{0, 1}},
	})

	results, err := s.Search(context.Background(), "KJV", "light", 5)
	require.NoError(t, err)
	require.Len(t, results, 2, "orthogonal verse falls below the floor")

	assert.Equal(t, "GEN:1:3:KJV", results[0].Verse.Record.ID)
	assert.InDelta(t, 1.0+verbatimBoost, results[0].Score, 1e-5)
	assert.Equal(t, "GEN:1:1:KJV", results[1].Verse.Record.ID)
	assert.InDelta(t, 0.6, results[1].Score, 1e-5)
}

func TestSearch_VerbatimBoostReorders(t *testing.T) {
	s, repo := setupSearcher(t, fixedEmbedder(map[string][]float32{
		"God created": {1, 0},
	}))
	seed(t, repo, "KJV", map[int][]any{
		1: {"In the beginning God created the heaven", []float32{0.8, 0.6}},
		2: {"And the earth was without form", []float32{0.9, 0.43589}},
	})

	results, err := s.Search(context.Background(), "KJV", "God created", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "GEN:1:1:KJV", results[0].Verse.Record.ID)
}

func TestSearch_ScopedToVersion(t *testing.T) {
	s, repo := setupSearcher(t, fixedEmbedder(map[string][]float32{"light": {1, 0}}))
	seed(t, repo, "ASV", map[int][]any{3: {"Let there be light", []float32{1, 0}}})

	results, err := s.Search(context.Background(), "KJV", "light", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_Errors(t *testing.T) {
	s, _ := setupSearcher(t, fixedEmbedder(nil))
	ctx := context.Background()

	_, err := s.Search(ctx, "KJV", "   ", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = s.Search(ctx, "KJV", "unknown", 5)
	assert.Error(t, err)

	results, err := s.Search(ctx, "KJV", "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
