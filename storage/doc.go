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

// Package storage provides the storage abstraction layer for scriptura.
//
// This package defines repository interfaces that decouple storage implementation
// from the ingestion pipeline. Backends can be swapped without changing how the
// pipeline tracks progress.
//
// # Repositories
//
//   - CheckpointRepository: durable set of completed books per corpus version
//   - VerseRepository: indexed verses with their embedding vectors
//
// # Implementations
//
//   - storage/file: JSON array checkpoint files, one per version
//   - storage/badger: BadgerDB checkpoints and verse index
//   - storage/redis: Redis set checkpoints
//
// # Serialization
//
// Records persisted in binary form use the mus-go serializers declared in core.
// MarshalX/UnmarshalX helpers in this package wrap them and reject trailing
// bytes.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
