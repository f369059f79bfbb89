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

package scriptura

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/scriptura/ai"
	"github.com/poiesic/scriptura/ai/openai"
	"github.com/poiesic/scriptura/config"
	"github.com/poiesic/scriptura/core"
	"github.com/poiesic/scriptura/index"
	"github.com/poiesic/scriptura/ingest"
	"github.com/poiesic/scriptura/search"
	"github.com/poiesic/scriptura/source"
	"github.com/poiesic/scriptura/storage"
	"github.com/poiesic/scriptura/storage/badger"
	"github.com/poiesic/scriptura/storage/file"
	redisstore "github.com/poiesic/scriptura/storage/redis"
)

// Database wires storage, the embedding provider and the document source
// from a config.Config.
type Database struct {
	cfg            *config.Config
	backend        *badger.Backend
	verseRepo      storage.VerseRepository
	checkpointRepo storage.CheckpointRepository
	provider       ai.AIProvider
	fetcher        source.Fetcher
	logger         *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	provider    ai.AIProvider
	fetcher     source.Fetcher
	checkpoints storage.CheckpointRepository
	logger      *slog.Logger
}

// WithAIProvider uses provider instead of building an OpenAI-compatible one.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithFetcher uses fetcher instead of the configured document source.
func WithFetcher(fetcher source.Fetcher) DatabaseOption {
	return func(o *databaseOptions) {
		o.fetcher = fetcher
	}
}

// WithCheckpointRepository uses repo instead of the configured checkpoint backend.
func WithCheckpointRepository(repo storage.CheckpointRepository) DatabaseOption {
	return func(o *databaseOptions) {
		o.checkpoints = repo
	}
}

// WithLogger sets the logger passed to every component.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// Open validates cfg and opens every component it names.
func Open(ctx context.Context, cfg *config.Config, opts ...DatabaseOption) (*Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &databaseOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	backend, err := badger.OpenBackend(cfg.Database.Path, cfg.Database.InMemory)
	if err != nil {
		return nil, err
	}
	verseRepo := badger.NewVerseRepository(backend)

	checkpointRepo := options.checkpoints
	if checkpointRepo == nil {
		checkpointRepo, err = openCheckpoints(ctx, cfg, backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(cfg.AIConfig())
		if err != nil {
			checkpointRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	fetcher := options.fetcher
	if fetcher == nil {
		fetcher = openFetcher(cfg, logger)
	}

	logger.Debug("database opened", "path", cfg.Database.Path, "inMemory", cfg.Database.InMemory,
		"checkpointBackend", cfg.Checkpoint.Backend)

	return &Database{
		cfg:            cfg,
		backend:        backend,
		verseRepo:      verseRepo,
		checkpointRepo: checkpointRepo,
		provider:       provider,
		fetcher:        fetcher,
		logger:         logger,
	}, nil
}

func openCheckpoints(ctx context.Context, cfg *config.Config, backend *badger.Backend) (storage.CheckpointRepository, error) {
	switch cfg.Checkpoint.Backend {
	case config.BackendFile:
		return file.NewCheckpointRepository(cfg.Checkpoint.Dir)
	case config.BackendBadger:
		return badger.NewCheckpointRepository(backend), nil
	case config.BackendRedis:
		return redisstore.NewCheckpointRepository(ctx, cfg.Checkpoint.RedisAddr)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.Checkpoint.Backend)
	}
}

func openFetcher(cfg *config.Config, logger *slog.Logger) source.Fetcher {
	if cfg.Source.Dir != "" {
		return source.NewFileFetcher(cfg.Source.Dir)
	}
	return source.NewHTTPFetcher(
		source.WithURLTemplate(cfg.Source.URLTemplate),
		source.WithLogger(logger.With("component", "source")),
	)
}

// Close releases every component, reporting the first error.
func (db *Database) Close() error {
	var firstErr error
	record := func(what string, err error) {
		if err == nil {
			return
		}
		db.logger.Error("error closing "+what, "err", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	record("AI provider", db.provider.Close())
	record("checkpoint repository", db.checkpointRepo.Close())
	record("verse repository", db.verseRepo.Close())
	record("backend storage", db.backend.Close())
	return firstErr
}

// Config returns the configuration the database was opened with.
func (db *Database) Config() *config.Config {
	return db.cfg
}

// VerseRepository returns the indexed verse store.
func (db *Database) VerseRepository() storage.VerseRepository {
	return db.verseRepo
}

// CheckpointRepository returns the configured checkpoint store.
func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

// NewIndexer creates the embedding sink, throttled per the embedding config.
func (db *Database) NewIndexer() (*index.Indexer, error) {
	return index.NewIndexer(db.verseRepo, db.provider.Embedder(),
		index.WithRateLimit(db.cfg.Embedding.RequestsPerSecond, db.cfg.Embedding.Burst),
		index.WithLogger(db.logger),
	)
}

// NewIngestionPipeline creates a pipeline feeding the indexer. Options are
// applied after the configured batch size and retry policy.
func (db *Database) NewIngestionPipeline(progress io.Writer, opts ...ingest.Option) (*ingest.Pipeline, error) {
	indexer, err := db.NewIndexer()
	if err != nil {
		return nil, err
	}

	base := []ingest.Option{
		ingest.WithBatchSize(db.cfg.Pipeline.BatchSize),
		ingest.WithRetry(db.cfg.Pipeline.MaxAttempts, db.cfg.Pipeline.RetryBaseDelay),
		ingest.WithLogger(db.logger),
	}
	if progress != nil {
		base = append(base, ingest.WithProgress(progress))
	}
	return ingest.NewPipeline(db.fetcher, indexer, db.checkpointRepo, append(base, opts...)...)
}

// NewSearcher creates a searcher over the indexed verses.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithLogger(db.logger)}, opts...)
	return search.NewSearcher(db.verseRepo, db.provider, opts...)
}

// Status returns the checkpoint for version, or an empty one if none was saved.
func (db *Database) Status(ctx context.Context, version string) (*core.Checkpoint, error) {
	key := core.CheckpointKey(version)
	if key == "" {
		return nil, core.ErrEmptyVersion
	}
	checkpoint, err := db.checkpointRepo.LoadCheckpoint(ctx, key)
	if err != nil {
		return nil, err
	}
	if checkpoint == nil {
		return &core.Checkpoint{Key: key}, nil
	}
	return checkpoint, nil
}

// Reset overwrites the checkpoint for version with an empty set, so the
// next run processes every book again. Indexed verses are left in place.
func (db *Database) Reset(ctx context.Context, version string) error {
	key := core.CheckpointKey(version)
	if key == "" {
		return core.ErrEmptyVersion
	}
	return db.checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{Key: key, Books: []string{}})
}
