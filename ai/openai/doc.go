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

// Package openai implements ai.AIProvider with langchaingo against OpenAI or
// an OpenAI-compatible server (Ollama, LocalAI, vLLM).
//
//	config := ai.NewConfig(ai.WithEmbeddingHost("http://localhost:11434"))  // /v1 added automatically
//	provider, err := openai.NewProvider(config)
package openai
