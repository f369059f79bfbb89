// Package search ranks indexed verses against a free-text query.
//
// Candidates come from vector similarity; verses that contain every
// significant query word (stop words removed) get a fixed boost.
package search
