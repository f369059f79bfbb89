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

package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/poiesic/scriptura/core"
	"github.com/poiesic/scriptura/storage"
)

// CheckpointRepository implements storage.CheckpointRepository with one JSON
// file per corpus version. Each file holds a JSON array of canonical book IDs.
type CheckpointRepository struct {
	mu  sync.Mutex
	dir string
}

var _ storage.CheckpointRepository = (*CheckpointRepository)(nil)

// NewCheckpointRepository creates a repository rooted at dir.
// If dir is empty, the current working directory is used.
// Creates the directory if it doesn't exist.
func NewCheckpointRepository(dir string) (*CheckpointRepository, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}
	return &CheckpointRepository{dir: dir}, nil
}

// FileName returns the checkpoint file name for a key.
// Characters outside [a-z0-9._-] are replaced with underscores.
func FileName(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r == '.' || r == '_' || r == '-':
			return r
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return '_'
		}
	}, key)
	return "processed_" + safe + "_books.json"
}

// Path returns the full checkpoint file path for a key.
func (r *CheckpointRepository) Path(key string) string {
	return filepath.Join(r.dir, FileName(key))
}

// LoadCheckpoint reads the checkpoint file for key.
// Returns nil, nil if the file does not exist.
func (r *CheckpointRepository) LoadCheckpoint(ctx context.Context, key string) (*core.Checkpoint, error) {
	if key == "" {
		return nil, storage.ErrEmptyKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var books []string
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", storage.ErrSerializationFailed, path, err)
	}

	checkpoint := &core.Checkpoint{Key: key, Books: books}
	if info, err := os.Stat(path); err == nil {
		checkpoint.UpdatedAt = info.ModTime().UTC()
	}
	return checkpoint, nil
}

// SaveCheckpoint overwrites the checkpoint file for checkpoint.Key.
// The file is written to a temporary name and renamed into place.
func (r *CheckpointRepository) SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error {
	if checkpoint.Key == "" {
		return storage.ErrEmptyKey
	}

	books := checkpoint.Books
	if books == nil {
		books = []string{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(r.dir, ".checkpoint-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, r.Path(checkpoint.Key)); err != nil {
		os.Remove(tmpName)
		return err
	}

	checkpoint.UpdatedAt = time.Now().UTC()
	return nil
}

// Close is a no-op; files are closed after each operation.
func (r *CheckpointRepository) Close() error {
	return nil
}
