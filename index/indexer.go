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

package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/scriptura/ai"
	"github.com/poiesic/scriptura/core"
	"github.com/poiesic/scriptura/ingest"
	"github.com/poiesic/scriptura/storage"
	"golang.org/x/time/rate"
)

// Indexer embeds verse batches and stores them with their vectors.
// It is the production ingest.Sink.
type Indexer struct {
	repo     storage.VerseRepository
	embedder ai.Embedder
	limiter  *rate.Limiter
	logger   *slog.Logger
}

var _ ingest.Sink = (*Indexer)(nil)

// Option configures an Indexer.
type Option func(*Indexer)

// WithRateLimit throttles embedding calls to requestsPerSecond with the
// given burst. A non-positive rate disables throttling.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(ix *Indexer) {
		if requestsPerSecond <= 0 {
			ix.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		if burst < 1 {
			burst = 1
		}
		ix.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) {
		if logger != nil {
			ix.logger = logger
		}
	}
}

// NewIndexer creates an Indexer. Without WithRateLimit calls are not throttled.
func NewIndexer(repo storage.VerseRepository, embedder ai.Embedder, opts ...Option) (*Indexer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	ix := &Indexer{
		repo:     repo,
		embedder: embedder,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	ix.logger = ix.logger.With("component", "indexer")
	return ix, nil
}

// Submit embeds the batch texts and upserts the verses. Absent text is
// embedded as an empty string. The batch is stored only if every vector
// was produced, so a failed call leaves nothing half-written.
func (ix *Indexer) Submit(ctx context.Context, batch []core.VerseRecord) error {
	if len(batch) == 0 {
		return nil
	}

	if err := ix.limiter.Wait(ctx); err != nil {
		return err
	}

	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = batch[i].TextOrEmpty()
	}

	vectors, err := ix.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding batch: %w", err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(batch), len(vectors))
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	verses := make([]*core.IndexedVerse, len(batch))
	for i := range batch {
		verses[i] = &core.IndexedVerse{
			Record:    batch[i],
			Vector:    NormalizeVector(vectors[i]),
			IndexedAt: now,
		}
	}

	if err := ix.repo.UpsertVerses(ctx, verses...); err != nil {
		return fmt.Errorf("storing batch: %w", err)
	}

	ix.logger.Debug("indexed batch", "first", batch[0].ID, "count", len(batch))
	return nil
}
