package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
version: ASV
pipeline:
  batch_size: 25
  retry_base_delay: 250ms
checkpoint:
  backend: badger
embedding:
  requests_per_second: 2.5
  request_batch_size: 32
  timeout: 15s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ASV", cfg.Version)
	assert.Equal(t, 25, cfg.Pipeline.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Pipeline.RetryBaseDelay)
	assert.Equal(t, 3, cfg.Pipeline.MaxAttempts, "unset keys keep defaults")
	assert.Equal(t, BackendBadger, cfg.Checkpoint.Backend)
	assert.Equal(t, 2.5, cfg.Embedding.RequestsPerSecond)
	assert.Equal(t, 32, cfg.Embedding.RequestBatchSize)
	assert.Equal(t, 15*time.Second, cfg.Embedding.Timeout)
}

func TestLoad_FindsDefaultFileName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scriptura.yaml"), []byte("version: WEB\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "WEB", cfg.Version)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scriptura.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  batch_size: 25\n"), 0o644))

	t.Setenv("SCRIPTURA_PIPELINE_BATCH_SIZE", "50")
	t.Setenv("SCRIPTURA_CHECKPOINT_BACKEND", "redis")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Pipeline.BatchSize)
	assert.Equal(t, BackendRedis, cfg.Checkpoint.Backend)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"empty version", func(c *Config) { c.Version = " " }, ErrInvalidConfig},
		{"zero batch size", func(c *Config) { c.Pipeline.BatchSize = 0 }, ErrInvalidConfig},
		{"zero attempts", func(c *Config) { c.Pipeline.MaxAttempts = 0 }, ErrInvalidConfig},
		{"negative delay", func(c *Config) { c.Pipeline.RetryBaseDelay = -time.Second }, ErrInvalidConfig},
		{"unknown backend", func(c *Config) { c.Checkpoint.Backend = "s3" }, ErrInvalidBackend},
		{"redis without addr", func(c *Config) {
			c.Checkpoint.Backend = BackendRedis
			c.Checkpoint.RedisAddr = ""
		}, ErrInvalidConfig},
		{"no database path", func(c *Config) { c.Database.Path = "" }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.target)
		})
	}

	t.Run("in-memory database needs no path", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Database.Path = ""
		cfg.Database.InMemory = true
		assert.NoError(t, cfg.Validate())
	})
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("TEST_EMBED_TOKEN", "secret123")

	assert.Equal(t, "secret123", ResolveEnvVars("${TEST_EMBED_TOKEN}"))
	assert.Equal(t, "", ResolveEnvVars("${DEFINITELY_NOT_SET_12345}"))
	assert.Equal(t, "literal-value", ResolveEnvVars("literal-value"))
}

func TestAIConfig(t *testing.T) {
	t.Setenv("TEST_EMBED_TOKEN", "sk-abc")
	cfg := DefaultConfig()
	cfg.Embedding.Host = "http://embed:8080"
	cfg.Embedding.APIToken = "${TEST_EMBED_TOKEN}"

	aiCfg := cfg.AIConfig()
	require.NoError(t, aiCfg.Validate())
	assert.Equal(t, "http://embed:8080/v1", aiCfg.EmbeddingHost)
	assert.Equal(t, "sk-abc", aiCfg.APIToken)
	assert.Equal(t, cfg.Embedding.RequestBatchSize, aiCfg.RequestBatchSize)
	assert.Equal(t, cfg.Embedding.Timeout, aiCfg.Timeout)
}
