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

package storage

import (
	"fmt"

	"github.com/poiesic/scriptura/core"
)

// MarshalIndexedVerse serializes an IndexedVerse to bytes.
func MarshalIndexedVerse(verse *core.IndexedVerse) []byte {
	buf := make([]byte, core.IndexedVerseMUS.Size(*verse))
	core.IndexedVerseMUS.Marshal(*verse, buf)
	return buf
}

// UnmarshalIndexedVerse deserializes an IndexedVerse from bytes.
func UnmarshalIndexedVerse(data []byte) (*core.IndexedVerse, error) {
	verse, n, err := core.IndexedVerseMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, ErrTruncatedData
	}
	return &verse, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, core.CheckpointMUS.Size(*checkpoint))
	core.CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, n, err := core.CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, ErrTruncatedData
	}
	return &checkpoint, nil
}
