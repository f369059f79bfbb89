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

import "errors"

var (
	// ErrEmptyVersion is returned when Fetch is called without a version label.
	ErrEmptyVersion = errors.New("version label required")

	// ErrUnexpectedStatus is returned when the remote source answers with a non-success status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrMalformedDocument is returned when the document cannot be decoded.
	ErrMalformedDocument = errors.New("malformed corpus document")
)
