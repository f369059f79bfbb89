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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/scriptura/core"
)

// FileFetcher reads corpus documents from a directory of {version}.json files.
type FileFetcher struct {
	dir string
}

var _ Fetcher = (*FileFetcher)(nil)

// NewFileFetcher creates a fetcher rooted at dir.
func NewFileFetcher(dir string) *FileFetcher {
	if dir == "" {
		dir = "."
	}
	return &FileFetcher{dir: dir}
}

// Path returns the file path consulted for version.
func (f *FileFetcher) Path(version string) string {
	return filepath.Join(f.dir, filepath.Base(version)+".json")
}

// Fetch reads the document for version. A missing file yields nil, nil.
func (f *FileFetcher) Fetch(ctx context.Context, version string) (*core.Corpus, error) {
	if strings.TrimSpace(version) == "" {
		return nil, ErrEmptyVersion
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.Path(version))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer file.Close()

	return Decode(file, version)
}
