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

package ai

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultRequestBatchSize caps how many texts go into one embeddings request.
	// An ingestion batch larger than this is split into several requests.
	DefaultRequestBatchSize = 64

	// DefaultTimeout bounds a single embeddings request.
	DefaultTimeout = 60 * time.Second
)

// Config describes how to reach an OpenAI-compatible embeddings endpoint.
type Config struct {
	// EmbeddingHost is the API base URL, e.g. "http://localhost:11434/v1".
	EmbeddingHost string

	// EmbeddingModel names the model, e.g. "embeddinggemma" or "text-embedding-3-small".
	EmbeddingModel string

	// APIToken authenticates against hosted services. Local servers
	// usually accept any value, so it defaults to "none".
	APIToken string

	// RequestBatchSize is the number of texts sent per request.
	RequestBatchSize int

	// Timeout bounds each HTTP request. Zero disables the limit.
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAPIToken sets the API token.
func WithAPIToken(token string) ConfigOption {
	return func(c *Config) {
		c.APIToken = token
	}
}

// WithRequestBatchSize sets how many texts are sent per embeddings request.
func WithRequestBatchSize(n int) ConfigOption {
	return func(c *Config) {
		c.RequestBatchSize = n
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// DefaultConfig targets a local Ollama-style server.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:    "http://localhost:11434/v1",
		EmbeddingModel:   "embeddinggemma",
		APIToken:         "none",
		RequestBatchSize: DefaultRequestBatchSize,
		Timeout:          DefaultTimeout,
	}
}

// NewConfig applies opts on top of DefaultConfig.
//
//	cfg := NewConfig(
//	    WithEmbeddingHost("https://api.openai.com/v1"),
//	    WithEmbeddingModel("text-embedding-3-small"),
//	    WithAPIToken(os.Getenv("OPENAI_API_KEY")),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize trims the host, appends the /v1 suffix OpenAI-compatible servers
// expect, and fills in the placeholder token.
func (c *Config) Normalize() {
	c.EmbeddingHost = strings.TrimSpace(c.EmbeddingHost)
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	if c.APIToken == "" {
		c.APIToken = "none"
	}
}

// Validate normalizes the configuration and reports the first missing or invalid field.
func (c *Config) Validate() error {
	c.Normalize()

	switch {
	case c.EmbeddingHost == "":
		return ErrMissingHost
	case strings.TrimSpace(c.EmbeddingModel) == "":
		return ErrMissingModel
	case c.RequestBatchSize < 1:
		return fmt.Errorf("%w: %d", ErrInvalidBatchSize, c.RequestBatchSize)
	}
	return nil
}
