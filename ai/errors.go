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

package ai

import "errors"

var (
	// ErrMissingHost indicates the embedding service URL was not configured.
	ErrMissingHost = errors.New("embedding host required")

	// ErrMissingModel indicates the embedding model was not configured.
	ErrMissingModel = errors.New("embedding model required")

	// ErrInvalidBatchSize indicates a non-positive request batch size.
	ErrInvalidBatchSize = errors.New("embedding request batch size must be positive")

	// ErrEmbeddingFailed wraps any failure returned by the embedding service.
	ErrEmbeddingFailed = errors.New("embedding failed")
)
