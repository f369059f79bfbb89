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
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/scriptura/core"
)

// DefaultURLTemplate points at the scrollmapper bible_databases JSON exports.
const DefaultURLTemplate = "https://raw.githubusercontent.com/scrollmapper/bible_databases/master/formats/json/{version}.json"

// versionPlaceholder is substituted with the escaped version label.
const versionPlaceholder = "{version}"

// HTTPFetcher downloads corpus documents over HTTP.
type HTTPFetcher struct {
	client   *http.Client
	template string
	logger   *slog.Logger
}

var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithURLTemplate sets the URL template. "{version}" is replaced with the version label.
func WithURLTemplate(template string) HTTPOption {
	return func(f *HTTPFetcher) {
		if template != "" {
			f.template = template
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) HTTPOption {
	return func(f *HTTPFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewHTTPFetcher creates a fetcher using DefaultURLTemplate unless overridden.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:   &http.Client{Timeout: 2 * time.Minute},
		template: DefaultURLTemplate,
		logger:   slog.Default().With("component", "source"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the document URL for version.
func (f *HTTPFetcher) URL(version string) string {
	return strings.ReplaceAll(f.template, versionPlaceholder, url.PathEscape(version))
}

// Fetch downloads and decodes the document for version.
// A 404 response yields nil, nil.
func (f *HTTPFetcher) Fetch(ctx context.Context, version string) (*core.Corpus, error) {
	if strings.TrimSpace(version) == "" {
		return nil, ErrEmptyVersion
	}

	target := f.URL(version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", target, err)
	}
	req.Header.Set("Accept", "application/json")

	f.logger.Debug("fetching corpus", "version", version, "url", target)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		f.logger.Warn("corpus not found at source", "version", version, "url", target)
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, target, resp.StatusCode)
	}

	corpus, err := Decode(resp.Body, version)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("fetched corpus", "version", version, "translation", corpus.Name, "books", len(corpus.Books))
	return corpus, nil
}
