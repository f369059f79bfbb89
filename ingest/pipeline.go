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

package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/scriptura/canon"
	"github.com/poiesic/scriptura/core"
	"github.com/poiesic/scriptura/source"
	"github.com/poiesic/scriptura/storage"
)

// Sink receives batches of verse records. Any error counts as a failed attempt.
type Sink interface {
	Submit(ctx context.Context, batch []core.VerseRecord) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, batch []core.VerseRecord) error

// Submit calls f.
func (f SinkFunc) Submit(ctx context.Context, batch []core.VerseRecord) error {
	return f(ctx, batch)
}

// Pipeline runs corpus versions through a sink, book by book.
// A Pipeline runs one version at a time; it is not safe for concurrent Run calls.
type Pipeline struct {
	source      source.Fetcher
	sink        Sink
	checkpoints storage.CheckpointRepository
	normalizer  *canon.Normalizer
	submitter   *Submitter
	batchSize   int
	maxAttempts int
	baseDelay   time.Duration
	progress    io.Writer
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithBatchSize sets the number of records per sink call.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithRetry sets the attempt bound and base delay for each batch.
// Defaults are DefaultMaxAttempts and DefaultRetryBaseDelay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
		return nil
	}
}

// WithNormalizer sets the book name normalizer.
// Default is canon.Default().
func WithNormalizer(normalizer *canon.Normalizer) Option {
	return func(p *Pipeline) error {
		if normalizer != nil {
			p.normalizer = normalizer
		}
		return nil
	}
}

// WithProgress reports verse progress to w.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline reading from src, submitting to sink and
// recording progress in checkpoints.
func NewPipeline(src source.Fetcher, sink Sink, checkpoints storage.CheckpointRepository, opts ...Option) (*Pipeline, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}
	if sink == nil {
		return nil, ErrSinkRequired
	}
	if checkpoints == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	p := &Pipeline{
		source:      src,
		sink:        sink,
		checkpoints: checkpoints,
		normalizer:  canon.Default(),
		batchSize:   DefaultBatchSize,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultRetryBaseDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "ingest")

	submitter, err := NewSubmitter(p.maxAttempts, p.baseDelay, p.logger)
	if err != nil {
		return nil, err
	}
	p.submitter = submitter

	return p, nil
}

// Run ingests one corpus version.
//
// The requested version label, trimmed, is what goes into record IDs and the
// checkpoint key. Any version string carried inside the fetched document is
// ignored, so the same label always resumes the same checkpoint.
//
// The returned error is non-nil only when the document could not be
// fetched or ctx was cancelled; per-book failures are reported in the
// Report. A version missing at the source, or one without books, yields an
// empty report and no error.
func (p *Pipeline) Run(ctx context.Context, version string) (*Report, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, core.ErrEmptyVersion
	}
	logger := p.logger.With("version", version)
	report := &Report{Version: version}

	corpus, err := p.source.Fetch(ctx, version)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if corpus == nil {
		logger.Warn("nothing to process: version not found at source")
		return report, nil
	}
	report.Found = true
	report.Translation = corpus.Name
	if len(corpus.Books) == 0 {
		logger.Warn("nothing to process: corpus has no books")
		return report, nil
	}

	key := core.CheckpointKey(version)
	done := p.loadCheckpoint(ctx, key, logger)
	logger.Info("starting ingestion", "books", len(corpus.Books), "alreadyDone", done.Len(),
		"batchSize", p.batchSize, "maxAttempts", p.maxAttempts)

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, p.pendingVerses(corpus, done), p.batchSize)
		tracker.Start()
		defer tracker.Finish()
	}

	for i, book := range corpus.Books {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := p.processBook(ctx, i, book, version, done, tracker, logger)
		if result.State == StateComplete {
			done.Add(result.BookID)
			result.Persisted = p.saveCheckpoint(ctx, key, done, logger)
		}
		report.Books = append(report.Books, result)

		if result.State == StatePartialFailure && ctx.Err() != nil {
			return report, ctx.Err()
		}
	}

	logger.Info("ingestion finished",
		"complete", report.Count(StateComplete),
		"alreadyDone", report.Count(StateAlreadyDone),
		"unresolved", report.Count(StateUnresolved),
		"failed", report.Count(StatePartialFailure))
	return report, nil
}

// processBook takes one book through resolve, skip check, flatten, batch and submit.
func (p *Pipeline) processBook(
	ctx context.Context,
	index int,
	book core.Book,
	version string,
	done *core.BookSet,
	tracker *ProgressTracker,
	logger *slog.Logger,
) BookResult {
	result := BookResult{Index: index, Name: book.Name, FailedOffset: -1}

	bookID, ok := p.normalizer.Resolve(book.Name)
	if !ok {
		result.State = StateUnresolved
		logger.Warn("skipping book with unknown name", "index", index, "name", book.Name)
		return result
	}
	result.BookID = bookID
	logger = logger.With("book", bookID)

	if done.Contains(bookID) {
		result.State = StateAlreadyDone
		logger.Info("skipping book, already processed")
		return result
	}

	result.State = StatePending
	records := Flatten(book, bookID, version)
	batches := Batches(records, p.batchSize)
	result.Verses = len(records)
	result.Batches = len(batches)
	logger.Debug("processing book", "verses", result.Verses, "batches", result.Batches)

	for n, batch := range batches {
		offset := n * p.batchSize
		submitter := p.submitter.With("version", version, "book", bookID, "offset", offset)

		res := submitter.Submit(ctx, func(ctx context.Context) error {
			return p.sink.Submit(ctx, batch)
		})
		result.BatchesSubmitted++
		result.Attempts += res.Attempts

		if !res.OK() {
			result.State = StatePartialFailure
			result.FailedOffset = offset
			result.Err = res.Err
			logger.Error("batch failed, book needs manual intervention",
				"offset", offset, "attempts", res.Attempts, "err", res.Err)
			return result
		}
		if tracker != nil {
			tracker.Increment(len(batch))
		}
	}

	result.State = StateComplete
	logger.Info("book complete", "verses", result.Verses, "batches", result.Batches)
	return result
}

// pendingVerses counts verses in books the run will actually submit.
func (p *Pipeline) pendingVerses(corpus *core.Corpus, done *core.BookSet) int {
	total := 0
	for i := range corpus.Books {
		bookID, ok := p.normalizer.Resolve(corpus.Books[i].Name)
		if !ok || done.Contains(bookID) {
			continue
		}
		total += corpus.Books[i].VerseCount()
	}
	return total
}

// loadCheckpoint returns the completed set for key. Any failure starts fresh.
func (p *Pipeline) loadCheckpoint(ctx context.Context, key string, logger *slog.Logger) *core.BookSet {
	checkpoint, err := p.checkpoints.LoadCheckpoint(ctx, key)
	if err != nil {
		logger.Warn("checkpoint unreadable, starting fresh", "key", key, "err", err)
		return core.NewBookSet()
	}
	if checkpoint == nil {
		logger.Debug("no checkpoint found, starting fresh", "key", key)
		return core.NewBookSet()
	}
	return core.NewBookSet(checkpoint.Books...)
}

// saveCheckpoint persists done and reports whether the write succeeded.
// A failure is logged only; the in-memory set stays authoritative for this run.
func (p *Pipeline) saveCheckpoint(ctx context.Context, key string, done *core.BookSet, logger *slog.Logger) bool {
	checkpoint := &core.Checkpoint{Key: key, Books: done.IDs()}
	if err := p.checkpoints.SaveCheckpoint(ctx, checkpoint); err != nil {
		logger.Error("failed to save checkpoint, progress is in memory only", "key", key, "err", err)
		return false
	}
	logger.Debug("checkpoint saved", "key", key, "books", len(checkpoint.Books))
	return true
}
