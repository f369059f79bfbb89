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

package canon

import "strings"

// Normalizer resolves raw source book names to canonical book IDs.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	exact  map[string]string
	folded map[string]string
}

// New creates a Normalizer over the given raw name → canonical ID table.
// The table is copied; later changes to it have no effect.
func New(table map[string]string) *Normalizer {
	n := &Normalizer{
		exact:  make(map[string]string, len(table)),
		folded: make(map[string]string, len(table)),
	}
	for name, id := range table {
		name = strings.TrimSpace(name)
		id = strings.TrimSpace(id)
		if name == "" || id == "" {
			continue
		}
		n.exact[name] = id
		n.folded[strings.ToLower(name)] = id
	}
	return n
}

// Default returns a Normalizer over the built-in canon table.
func Default() *Normalizer {
	return New(DefaultTable())
}

// Resolve returns the canonical ID for a raw book name.
// Exact matches win; otherwise the lookup ignores case.
// Empty names and unknown names report false.
func (n *Normalizer) Resolve(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", false
	}
	if id, ok := n.exact[name]; ok {
		return id, true
	}
	id, ok := n.folded[strings.ToLower(name)]
	return id, ok
}

// Len returns the number of raw names the normalizer knows.
func (n *Normalizer) Len() int {
	return len(n.exact)
}
