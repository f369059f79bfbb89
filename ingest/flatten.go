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

import (
	"strings"

	"github.com/poiesic/scriptura/core"
)

// Flatten walks a book's chapters and returns one record per verse in source order.
// Text is trimmed; absent text stays absent.
func Flatten(book core.Book, bookID, version string) []core.VerseRecord {
	records := make([]core.VerseRecord, 0, book.VerseCount())
	for _, chapter := range book.Chapters {
		for _, verse := range chapter.Verses {
			records = append(records, core.NewVerseRecord(bookID, version, chapter.Number, verse.Number, trimText(verse.Text)))
		}
	}
	return records
}

func trimText(text *string) *string {
	if text == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*text)
	return &trimmed
}
