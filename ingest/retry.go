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
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	// DefaultMaxAttempts is the number of times a batch is tried before the book is abandoned.
	DefaultMaxAttempts = 3
	// DefaultRetryBaseDelay is the wait after the first failed attempt.
	DefaultRetryBaseDelay = time.Second
)

// SubmitResult is the outcome of a bounded submission.
type SubmitResult struct {
	Attempts int   // Attempts made, between 1 and the configured maximum
	Err      error // Error from the last attempt, nil on success
}

// OK reports whether the submission eventually succeeded.
func (r SubmitResult) OK() bool {
	return r.Err == nil
}

// Submitter runs an operation up to maxAttempts times. After failed attempt k
// it waits baseDelay*k before trying again.
type Submitter struct {
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// NewSubmitter creates a Submitter. A nil logger uses slog.Default().
func NewSubmitter(maxAttempts int, baseDelay time.Duration, logger *slog.Logger) (*Submitter, error) {
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	if baseDelay < 0 {
		baseDelay = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
	}, nil
}

// MaxAttempts returns the attempt bound.
func (s *Submitter) MaxAttempts() int {
	return s.maxAttempts
}

// Backoff returns the delay after failed attempt k.
func (s *Submitter) Backoff(k int) time.Duration {
	if k < 1 {
		return 0
	}
	return s.baseDelay * time.Duration(k)
}

// With returns a copy of s that adds args to every log line.
func (s *Submitter) With(args ...any) *Submitter {
	clone := *s
	clone.logger = s.logger.With(args...)
	return &clone
}

// Submit runs op until it succeeds, maxAttempts is reached, or ctx is done.
// Every failed attempt is logged. Context cancellation is returned as the
// result's error without further attempts.
func (s *Submitter) Submit(ctx context.Context, op func(context.Context) error) SubmitResult {
	attempts := 0
	err := retry.Do(
		func() error {
			attempts++
			err := op(ctx)
			if err != nil {
				s.logger.Warn("attempt failed", "attempt", attempts, "maxAttempts", s.maxAttempts, "err", err)
			} else if attempts > 1 {
				s.logger.Debug("operation succeeded after retry", "attempt", attempts)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uint(s.maxAttempts)),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(error) bool { return ctx.Err() == nil }),
		retry.DelayType(func(_ uint, _ error, _ *retry.Config) time.Duration {
			return s.Backoff(attempts)
		}),
	)
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return SubmitResult{Attempts: attempts, Err: err}
}
