// Package mock provides test doubles for the ai interfaces.
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("rate limited")
//	}
//
// By default MockEmbedder returns deterministic unit vectors derived from a
// hash of the text.
package mock
