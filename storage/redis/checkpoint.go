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

package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/poiesic/scriptura/core"
	"github.com/poiesic/scriptura/storage"
	"github.com/redis/go-redis/v9"
)

// DefaultNamespace prefixes every key written by the repository.
const DefaultNamespace = "scriptura"

// CheckpointRepository implements storage.CheckpointRepository on Redis.
// Each version is a list of book IDs plus a companion key holding the
// last update time, both replaced atomically on save.
type CheckpointRepository struct {
	rdb       redis.UniversalClient
	namespace string
	owned     bool
}

var _ storage.CheckpointRepository = (*CheckpointRepository)(nil)

// NewCheckpointRepository connects to addr and verifies the connection.
func NewCheckpointRepository(ctx context.Context, addr string) (*CheckpointRepository, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	repo := NewCheckpointRepositoryWithClient(rdb, DefaultNamespace)
	repo.owned = true
	return repo, nil
}

// NewCheckpointRepositoryWithClient wraps an existing client. The caller keeps
// ownership of the client; Close does not close it.
func NewCheckpointRepositoryWithClient(rdb redis.UniversalClient, namespace string) *CheckpointRepository {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CheckpointRepository{rdb: rdb, namespace: namespace}
}

// booksKey returns the list key for a checkpoint key.
func (r *CheckpointRepository) booksKey(key string) string {
	return r.namespace + ":checkpoint:" + key + ":books"
}

// updatedKey returns the timestamp key for a checkpoint key.
func (r *CheckpointRepository) updatedKey(key string) string {
	return r.namespace + ":checkpoint:" + key + ":updated"
}

// LoadCheckpoint reads the checkpoint for key.
// Returns nil, nil if the version has never been saved.
func (r *CheckpointRepository) LoadCheckpoint(ctx context.Context, key string) (*core.Checkpoint, error) {
	if key == "" {
		return nil, storage.ErrEmptyKey
	}

	updated, err := r.rdb.Get(ctx, r.updatedKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	micros, err := strconv.ParseInt(updated, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: updated timestamp %q: %w", storage.ErrSerializationFailed, updated, err)
	}

	books, err := r.rdb.LRange(ctx, r.booksKey(key), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	return &core.Checkpoint{
		Key:       key,
		Books:     books,
		UpdatedAt: time.UnixMicro(micros).UTC(),
	}, nil
}

// SaveCheckpoint replaces the stored list for checkpoint.Key in a MULTI/EXEC block.
func (r *CheckpointRepository) SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error {
	if checkpoint.Key == "" {
		return storage.ErrEmptyKey
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	booksKey := r.booksKey(checkpoint.Key)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, booksKey)
		if len(checkpoint.Books) > 0 {
			values := make([]any, len(checkpoint.Books))
			for i, id := range checkpoint.Books {
				values[i] = id
			}
			pipe.RPush(ctx, booksKey, values...)
		}
		pipe.Set(ctx, r.updatedKey(checkpoint.Key), strconv.FormatInt(now.UnixMicro(), 10), 0)
		return nil
	})
	if err != nil {
		return err
	}

	checkpoint.UpdatedAt = now
	return nil
}

// Close closes the client if the repository created it.
func (r *CheckpointRepository) Close() error {
	if r.owned {
		return r.rdb.Close()
	}
	return nil
}
