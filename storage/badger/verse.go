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

package badger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scriptura/core"
	"github.com/poiesic/scriptura/storage"
)

// VerseRepository implements storage.VerseRepository for BadgerDB.
type VerseRepository struct {
	backend *Backend
}

var _ storage.VerseRepository = (*VerseRepository)(nil)

// NewVerseRepository creates a new VerseRepository.
func NewVerseRepository(backend *Backend) *VerseRepository {
	return &VerseRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend is owned and closed by the caller.
func (r *VerseRepository) Close() error {
	return nil
}

// UpsertVerses inserts or replaces indexed verses in a single transaction.
func (r *VerseRepository) UpsertVerses(ctx context.Context, verses ...*core.IndexedVerse) error {
	if len(verses) == 0 {
		return nil
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, verse := range verses {
			if err := core.ValidateVerseRecord(&verse.Record); err != nil {
				return err
			}
			if verse.IndexedAt.IsZero() {
				verse.IndexedAt = now
			}
			key := makeVerseKey(verse.Record.Version, verse.Record.ID)
			if err := tx.Set(key, storage.MarshalIndexedVerse(verse)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetVerse retrieves an indexed verse by record ID.
func (r *VerseRepository) GetVerse(ctx context.Context, id string) (*core.IndexedVerse, error) {
	version, ok := versionFromRecordID(id)
	if !ok {
		return nil, fmt.Errorf("%w: malformed record id %q", storage.ErrInvalidQuery, id)
	}

	var result *core.IndexedVerse
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVerseKey(version, id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalIndexedVerse(val)
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return nil, err
	}
	// Guard against content-ID collisions
	if result.Record.ID != id {
		return nil, storage.ErrNotFound
	}
	return result, nil
}

// CountVerses returns the number of indexed verses for a version.
func (r *VerseRepository) CountVerses(ctx context.Context, version string) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeVersePrefix(version)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// FindSimilar finds indexed verses of a version similar to the given vector.
func (r *VerseRepository) FindSimilar(ctx context.Context, version string, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be greater than 0", storage.ErrInvalidQuery)
	}

	var results []*core.SearchResult

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeVersePrefix(version)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var verse *core.IndexedVerse
			err := iter.Item().Value(func(val []byte) error {
				var err error
				verse, err = storage.UnmarshalIndexedVerse(val)
				return err
			})
			if err != nil {
				return err
			}

			// Skip verses without embeddings
			if len(verse.Vector) == 0 {
				continue
			}

			// Cosine similarity (dot product for normalized vectors)
			similarity := dotProduct(vector, verse.Vector)
			if similarity >= minSimilarity {
				results = append(results, &core.SearchResult{
					Verse: verse,
					Score: similarity,
				})
			}
		}

		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
