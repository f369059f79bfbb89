// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/scriptura/ai"
	"github.com/poiesic/scriptura/core"
	"github.com/poiesic/scriptura/index"
	"github.com/poiesic/scriptura/storage"
)

const (
	// DefaultMinSimilarity is the cosine floor for semantic matches.
	DefaultMinSimilarity = 0.35

	// verbatimBoost is added when every significant query word appears in the verse.
	verbatimBoost = 0.3

	// candidateFactor widens the semantic pool so verbatim boosts can reorder it.
	candidateFactor = 3
)

// Searcher finds indexed verses similar to a free-text query.
type Searcher struct {
	verseRepository storage.VerseRepository
	embedder        ai.Embedder
	minSimilarity   float32
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMinSimilarity sets the cosine similarity floor.
// Default is DefaultMinSimilarity.
func WithMinSimilarity(min float32) Option {
	return func(s *Searcher) error {
		s.minSimilarity = min
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(verseRepository storage.VerseRepository, provider ai.AIProvider, opts ...Option) (*Searcher, error) {
	if verseRepository == nil {
		return nil, ErrVerseRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		verseRepository: verseRepository,
		embedder:        provider.Embedder(),
		minSimilarity:   DefaultMinSimilarity,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "search")

	return s, nil
}

// Search returns up to maxHits verses of version ranked by relevance.
// Scores are the cosine similarity, plus a boost when the verse contains
// every significant word of the query.
func (s *Searcher) Search(ctx context.Context, version, query string, maxHits int) ([]*core.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if maxHits <= 0 {
		return []*core.SearchResult{}, nil
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	matches, err := s.verseRepository.FindSimilar(ctx, version, index.NormalizeVector(embedding), s.minSimilarity, maxHits*candidateFactor)
	if err != nil {
		s.logger.Error("error querying for similar verses", "version", version, "err", err)
		return nil, err
	}
	s.logger.Debug("semantic candidates", "version", version, "count", len(matches))

	results := make([]*core.SearchResult, 0, len(matches))
	for _, match := range matches {
		score := match.Score
		if containsAllQueryWords(match.Verse.Record.TextOrEmpty(), query) {
			score += verbatimBoost
		}
		results = append(results, &core.SearchResult{Verse: match.Verse, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}

	return results, nil
}
