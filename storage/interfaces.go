package storage

import (
	"context"

	"github.com/poiesic/scriptura/core"
)

// CheckpointRepository persists the set of fully processed books per corpus version.
// Implementations overwrite the stored set on every save.
type CheckpointRepository interface {
	// LoadCheckpoint retrieves the checkpoint for a key (see core.CheckpointKey).
	// Returns nil, nil if no checkpoint exists.
	// Returns an error if the stored checkpoint cannot be read or decoded.
	LoadCheckpoint(ctx context.Context, key string) (*core.Checkpoint, error)

	// SaveCheckpoint persists a checkpoint, replacing any previous record for its key.
	// Sets UpdatedAt.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// Close releases resources held by the repository.
	Close() error
}

// VerseRepository stores indexed verses and their embeddings.
// Implementations must be thread-safe and support concurrent access.
type VerseRepository interface {
	// UpsertVerses inserts or replaces indexed verses, keyed by record ID.
	// Sets IndexedAt if not already set.
	UpsertVerses(ctx context.Context, verses ...*core.IndexedVerse) error

	// GetVerse retrieves an indexed verse by record ID (book:chapter:verse:version).
	// Returns ErrNotFound if the verse doesn't exist.
	GetVerse(ctx context.Context, id string) (*core.IndexedVerse, error)

	// CountVerses returns the number of indexed verses for a version label.
	CountVerses(ctx context.Context, version string) (int, error)

	// FindSimilar finds verses of a version similar to the given vector.
	// Returns verses with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, version string, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// Close releases resources held by the repository.
	Close() error
}
