// Package index turns verse batches into stored, searchable embeddings.
package index
