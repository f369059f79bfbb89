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

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/poiesic/scriptura/core"
)

// Fetcher retrieves a corpus document by version label.
//
// A nil corpus with a nil error means the version does not exist at the
// source; callers treat that as nothing to do.
type Fetcher interface {
	Fetch(ctx context.Context, version string) (*core.Corpus, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, version string) (*core.Corpus, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, version string) (*core.Corpus, error) {
	return f(ctx, version)
}

// Decode reads a corpus document in the scrollmapper JSON layout and labels it with version.
func Decode(r io.Reader, version string) (*core.Corpus, error) {
	var corpus core.Corpus
	if err := json.NewDecoder(r).Decode(&corpus); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	corpus.Version = version
	return &corpus, nil
}
