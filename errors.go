// Copyright 2017-25 the original author or authors.
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

package osmpbf

import "github.com/kvelaren/osmpbf/internal/decoder"

// Error kinds, re-exported so callers can match them with errors.Is without
// reaching into the internal package (§7).
var (
	ErrFormat                  = decoder.ErrFormat
	ErrInputSequence           = decoder.ErrInputSequence
	ErrUnsupportedCompression  = decoder.ErrUnsupportedCompression
	ErrChangesetsNotImplemented = decoder.ErrChangesetsNotImplemented
	ErrParallelArrayMismatch   = decoder.ErrParallelArrayMismatch
	ErrConfig                  = decoder.ErrConfig
)
