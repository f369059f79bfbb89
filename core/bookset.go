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

import "strings"

// BookSet is an insertion-ordered set of canonical book IDs with
// case-insensitive membership. It is not safe for concurrent use.
type BookSet struct {
	ids   []string
	index map[string]struct{}
}

// NewBookSet creates a set from the given IDs. Blank and duplicate IDs are dropped.
func NewBookSet(ids ...string) *BookSet {
	s := &BookSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Contains reports whether id is in the set, ignoring case.
func (s *BookSet) Contains(id string) bool {
	_, ok := s.index[strings.ToLower(strings.TrimSpace(id))]
	return ok
}

// Add inserts id and reports whether it was newly added.
func (s *BookSet) Add(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	folded := strings.ToLower(id)
	if _, ok := s.index[folded]; ok {
		return false
	}
	s.index[folded] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// IDs returns a copy of the set contents in insertion order.
func (s *BookSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of books in the set.
func (s *BookSet) Len() int {
	return len(s.ids)
}
