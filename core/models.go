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

package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a compact storage identifier for indexed verses.
// It is derived from the verse record ID using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Corpus is a fetched text collection: a named translation with its books.
// It lives for the duration of a single run and is never persisted.
type Corpus struct {
	Name    string `json:"translation"`
	Version string `json:"-"` // Set by the fetcher from the requested version label
	Books   []Book `json:"books"`
}

// Book is a top-level unit of work. Name is the raw source name and may be empty.
type Book struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter holds the verses of one chapter in source order.
type Chapter struct {
	Number int     `json:"chapter"`
	Verses []Verse `json:"verses"`
}

// Verse is a single source verse. Text is nil when the source carries no text.
type Verse struct {
	Number int     `json:"verse"`
	Text   *string `json:"text"`
}

// VerseCount returns the number of verses across all chapters.
func (b *Book) VerseCount() int {
	n := 0
	for _, ch := range b.Chapters {
		n += len(ch.Verses)
	}
	return n
}

// VerseRecord is the flattened unit of work submitted to the indexing sink.
type VerseRecord struct {
	ID         string  `json:"id"`      // book:chapter:verse:version
	VerseID    string  `json:"verseId"` // book:chapter:verse
	Version    string  `json:"version"`
	Collection string  `json:"collection"`
	Book       string  `json:"book"`
	Chapter    int     `json:"chapter"`
	Verse      int     `json:"verse"`
	Text       *string `json:"text"`
}

// NewVerseRecord builds a record from its coordinates. IDs are derived, never random,
// so repeated runs over the same source produce identical keys.
func NewVerseRecord(bookID, version string, chapter, verse int, text *string) VerseRecord {
	verseID := VerseKey(bookID, chapter, verse)
	return VerseRecord{
		ID:         verseID + ":" + version,
		VerseID:    verseID,
		Version:    version,
		Collection: bookID,
		Book:       bookID,
		Chapter:    chapter,
		Verse:      verse,
		Text:       text,
	}
}

// TextOrEmpty returns the record text, or "" when the text is absent.
func (r *VerseRecord) TextOrEmpty() string {
	if r.Text == nil {
		return ""
	}
	return *r.Text
}

// VerseKey formats the version-independent verse identifier.
func VerseKey(bookID string, chapter, verse int) string {
	return fmt.Sprintf("%s:%d:%d", bookID, chapter, verse)
}

// CheckpointKey derives the storage key for a version's checkpoint:
// lowercase with spaces replaced by underscores.
func CheckpointKey(version string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(version)), " ", "_")
}

// Checkpoint is the durable progress record for one corpus version.
type Checkpoint struct {
	Key       string    // Derived from the version label via CheckpointKey
	Books     []string  // Canonical IDs of fully processed books, in completion order
	UpdatedAt time.Time // When the checkpoint was last written
}

// IndexedVerse is a verse record stored together with its embedding.
type IndexedVerse struct {
	Record    VerseRecord
	Vector    []float32 // Unit-length embedding vector
	IndexedAt time.Time
}

// SearchResult represents a search hit with the indexed verse and similarity score.
type SearchResult struct {
	Verse *IndexedVerse
	Score float32
}
