package mock

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicVector(t *testing.T) {
	a := DeterministicVector("In the beginning", 32)
	b := DeterministicVector("In the beginning", 32)
	c := DeterministicVector("And the earth was without form", 32)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestMockEmbedder(t *testing.T) {
	ctx := context.Background()
	m := NewMockEmbedder()

	vectors, err := m.EmbedTexts(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Len(t, vectors[0], DefaultDimensions)

	vector, err := m.EmbedText(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, vectors[0], vector)
	assert.Equal(t, 2, m.CallCount())

	m.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, errors.New("rate limited")
	}
	_, err = m.EmbedTexts(ctx, []string{"a"})
	assert.EqualError(t, err, "rate limited")

	m.Reset()
	assert.Zero(t, m.CallCount())
	_, err = m.EmbedTexts(ctx, []string{"a"})
	assert.NoError(t, err)
}

func TestMockProvider(t *testing.T) {
	provider := NewMockProviderWithEmbedder(NewMockEmbedder())
	assert.Same(t, provider.GetMockEmbedder(), provider.Embedder())
	require.NoError(t, provider.Close())
	assert.True(t, provider.Closed())
}
