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

import (
	"fmt"
	"strings"
)

// ValidateVerseRecord validates a VerseRecord according to domain rules.
//
// Validation rules:
//   - Book and Version must not be empty
//   - Chapter and Verse must be positive
//   - ID and VerseID must match the record coordinates
//
// NOT validated:
//   - Text (absent text is passed through to the sink)
func ValidateVerseRecord(record *VerseRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidVerseRecord)
	}

	if record.Book == "" {
		return fmt.Errorf("%w: %w", ErrInvalidVerseRecord, ErrEmptyBookID)
	}

	if strings.TrimSpace(record.Version) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidVerseRecord, ErrEmptyVersion)
	}

	if record.Chapter < 1 || record.Verse < 1 {
		return fmt.Errorf("%w: %w: %d:%d", ErrInvalidVerseRecord, ErrInvalidCoordinate, record.Chapter, record.Verse)
	}

	verseID := VerseKey(record.Book, record.Chapter, record.Verse)
	if record.VerseID != verseID || record.ID != verseID+":"+record.Version {
		return fmt.Errorf("%w: %w: %q", ErrInvalidVerseRecord, ErrMismatchedID, record.ID)
	}

	return nil
}
