// Package ingest drives a corpus through an indexing sink one book at a time.
//
// Each book is resolved to a canonical ID, flattened into verse records,
// split into batches and submitted in order. A batch that still fails after
// the configured number of attempts stops that book; other books continue.
// Only books whose every batch succeeded are added to the version's
// checkpoint, which is saved right away so a later run skips them.
//
// Checkpoint I/O is best effort: an unreadable checkpoint starts the run
// fresh, and a failed save is logged and the run goes on.
package ingest
