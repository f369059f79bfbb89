// Package config loads application settings with viper.
//
// Precedence, lowest first: DefaultConfig, a yaml file, SCRIPTURA_*
// environment variables (dots become underscores). Command-line flags are
// applied on top by the caller.
//
//	version: KJV
//	pipeline:
//	  batch_size: 100
//	  max_attempts: 3
//	  retry_base_delay: 1s
//	checkpoint:
//	  backend: file
//	  dir: ./checkpoints
//	embedding:
//	  host: http://localhost:11434
//	  model: embeddinggemma
//	  api_token: ${OPENAI_API_KEY}
package config
