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

// BookState is where a book ended up in a run.
type BookState int

const (
	// StateUnresolved means the book's name has no canonical ID. Nothing was submitted.
	StateUnresolved BookState = iota
	// StateAlreadyDone means the checkpoint already lists the book.
	StateAlreadyDone
	// StatePending means the book is being submitted.
	StatePending
	// StatePartialFailure means a batch exhausted its attempts; the book needs another run.
	StatePartialFailure
	// StateComplete means every batch succeeded and the book was checkpointed.
	StateComplete
)

func (s BookState) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateAlreadyDone:
		return "already-done"
	case StatePending:
		return "pending"
	case StatePartialFailure:
		return "partial-failure"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// BookResult describes what happened to one book.
type BookResult struct {
	Index            int    // Position in the corpus
	Name             string // Raw source name
	BookID           string // Canonical ID; empty when unresolved
	State            BookState
	Verses           int
	Batches          int   // Batches the book was split into
	BatchesSubmitted int   // Batches handed to the sink, including a failed one
	Attempts         int   // Sink calls across all batches
	FailedOffset     int   // Record offset of the failed batch, -1 if none
	Persisted        bool  // Checkpoint save succeeded after completion
	Err              error // Last sink error for a failed batch
}

// Report summarizes a run over one corpus version.
type Report struct {
	Version     string
	Translation string
	Found       bool // The source had a document for the version
	Books       []BookResult
}

// Count returns the number of books that ended in state.
func (r *Report) Count(state BookState) int {
	n := 0
	for _, b := range r.Books {
		if b.State == state {
			n++
		}
	}
	return n
}

// Failed returns the books that need another run.
func (r *Report) Failed() []BookResult {
	var failed []BookResult
	for _, b := range r.Books {
		if b.State == StatePartialFailure {
			failed = append(failed, b)
		}
	}
	return failed
}

// Completed returns the IDs of books completed during this run.
func (r *Report) Completed() []string {
	var ids []string
	for _, b := range r.Books {
		if b.State == StateComplete {
			ids = append(ids, b.BookID)
		}
	}
	return ids
}
