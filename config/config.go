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

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/poiesic/scriptura/ai"
	"github.com/poiesic/scriptura/ingest"
	"github.com/poiesic/scriptura/source"
	"github.com/spf13/viper"
)

// Checkpoint backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// EnvPrefix prefixes environment overrides, e.g. SCRIPTURA_PIPELINE_BATCH_SIZE.
const EnvPrefix = "SCRIPTURA"

var (
	// ErrInvalidBackend is returned for an unknown checkpoint backend.
	ErrInvalidBackend = errors.New("unknown checkpoint backend")
	// ErrInvalidConfig is returned when a value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the full application configuration.
type Config struct {
	Version    string           `mapstructure:"version"`
	Source     SourceConfig     `mapstructure:"source"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
	Checkpoint CheckpointConfig `mapstructure:"checkpoint"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Embedding  EmbeddingConfig  `mapstructure:"embedding"`
}

// SourceConfig selects where corpus documents come from.
// When Dir is set documents are read from disk instead of downloaded.
type SourceConfig struct {
	URLTemplate string `mapstructure:"url_template"`
	Dir         string `mapstructure:"dir"`
}

// PipelineConfig controls batching and retries.
type PipelineConfig struct {
	BatchSize      int           `mapstructure:"batch_size"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
}

// CheckpointConfig selects the checkpoint store.
type CheckpointConfig struct {
	Backend   string `mapstructure:"backend"`
	Dir       string `mapstructure:"dir"`
	RedisAddr string `mapstructure:"redis_addr"`
}

// DatabaseConfig locates the badger database holding indexed verses.
type DatabaseConfig struct {
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
}

// EmbeddingConfig configures the embedding service.
// APIToken may reference an environment variable as ${NAME}.
type EmbeddingConfig struct {
	Host              string        `mapstructure:"host"`
	Model             string        `mapstructure:"model"`
	APIToken          string        `mapstructure:"api_token"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	RequestBatchSize  int           `mapstructure:"request_batch_size"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Version: "KJV",
		Source: SourceConfig{
			URLTemplate: source.DefaultURLTemplate,
		},
		Pipeline: PipelineConfig{
			BatchSize:      ingest.DefaultBatchSize,
			MaxAttempts:    ingest.DefaultMaxAttempts,
			RetryBaseDelay: ingest.DefaultRetryBaseDelay,
		},
		Checkpoint: CheckpointConfig{
			Backend:   BackendFile,
			Dir:       ".",
			RedisAddr: "localhost:6379",
		},
		Database: DatabaseConfig{
			Path: "scriptura.db",
		},
		Embedding: EmbeddingConfig{
			Host:              aiDefaults.EmbeddingHost,
			Model:             aiDefaults.EmbeddingModel,
			APIToken:          aiDefaults.APIToken,
			RequestsPerSecond: 0,
			Burst:             1,
			RequestBatchSize:  aiDefaults.RequestBatchSize,
			Timeout:           aiDefaults.Timeout,
		},
	}
}

// setDefaults registers every key so environment overrides apply on Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("source.url_template", d.Source.URLTemplate)
	v.SetDefault("source.dir", d.Source.Dir)
	v.SetDefault("pipeline.batch_size", d.Pipeline.BatchSize)
	v.SetDefault("pipeline.max_attempts", d.Pipeline.MaxAttempts)
	v.SetDefault("pipeline.retry_base_delay", d.Pipeline.RetryBaseDelay)
	v.SetDefault("checkpoint.backend", d.Checkpoint.Backend)
	v.SetDefault("checkpoint.dir", d.Checkpoint.Dir)
	v.SetDefault("checkpoint.redis_addr", d.Checkpoint.RedisAddr)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.in_memory", d.Database.InMemory)
	v.SetDefault("embedding.host", d.Embedding.Host)
	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.api_token", d.Embedding.APIToken)
	v.SetDefault("embedding.requests_per_second", d.Embedding.RequestsPerSecond)
	v.SetDefault("embedding.burst", d.Embedding.Burst)
	v.SetDefault("embedding.request_batch_size", d.Embedding.RequestBatchSize)
	v.SetDefault("embedding.timeout", d.Embedding.Timeout)
}

// Load builds a Config from defaults, an optional yaml file and SCRIPTURA_*
// environment variables, in increasing precedence. With an empty cfgFile,
// scriptura.yaml is looked up in the working directory and $HOME/.scriptura;
// a missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("scriptura")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.scriptura")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges and the backend name.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidConfig)
	}
	if c.Pipeline.BatchSize < 1 {
		return fmt.Errorf("%w: pipeline.batch_size must be at least 1", ErrInvalidConfig)
	}
	if c.Pipeline.MaxAttempts < 1 {
		return fmt.Errorf("%w: pipeline.max_attempts must be at least 1", ErrInvalidConfig)
	}
	if c.Pipeline.RetryBaseDelay < 0 {
		return fmt.Errorf("%w: pipeline.retry_base_delay cannot be negative", ErrInvalidConfig)
	}
	switch c.Checkpoint.Backend {
	case BackendFile, BackendBadger:
	case BackendRedis:
		if c.Checkpoint.RedisAddr == "" {
			return fmt.Errorf("%w: checkpoint.redis_addr is required for the redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Checkpoint.Backend)
	}
	if c.Embedding.RequestBatchSize < 1 {
		return fmt.Errorf("%w: embedding.request_batch_size must be at least 1", ErrInvalidConfig)
	}
	if !c.Database.InMemory && c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	return nil
}

// AIConfig converts the embedding section into an ai.Config, resolving
// ${ENV_VAR} references in the token.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.Embedding.Host),
		ai.WithEmbeddingModel(c.Embedding.Model),
		ai.WithAPIToken(ResolveEnvVars(c.Embedding.APIToken)),
		ai.WithRequestBatchSize(c.Embedding.RequestBatchSize),
		ai.WithTimeout(c.Embedding.Timeout),
	)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}
