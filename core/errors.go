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

import "errors"

// Domain validation errors
var (
	// ErrInvalidVerseRecord indicates a VerseRecord failed validation.
	ErrInvalidVerseRecord = errors.New("invalid verse record")

	// ErrEmptyVersion indicates the version label is empty.
	ErrEmptyVersion = errors.New("version cannot be empty")

	// ErrEmptyBookID indicates the canonical book ID is empty.
	ErrEmptyBookID = errors.New("book id cannot be empty")

	// ErrInvalidCoordinate indicates a chapter or verse number below 1.
	ErrInvalidCoordinate = errors.New("chapter and verse must be positive")

	// ErrMismatchedID indicates the record ID does not match its coordinates.
	ErrMismatchedID = errors.New("record id does not match coordinates")
)
