// Copyright 2025 the original author or authors.
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

package decoder

import "errors"

// Sentinel errors, one per error kind a caller may want to match with
// errors.Is. All are fatal: none of them trigger an internal retry.
var (
	// ErrFormat covers buffer/length inconsistencies, undecodable
	// BlobHeader or Blob messages, and truncation at end of stream. An
	// unrecognized BlobHeader type is reported as ErrInputSequence.
	ErrFormat = errors.New("osmpbf: format error")

	// ErrInputSequence is returned when the first frame is not an
	// OSMHeader, or a BlobHeader names a type outside {OSMHeader, OSMData}.
	ErrInputSequence = errors.New("osmpbf: input sequence error")

	// ErrUnsupportedCompression is returned when a Blob carries neither
	// raw nor zlib_data, or names a compression this decoder does not
	// implement.
	ErrUnsupportedCompression = errors.New("osmpbf: unsupported compression")

	// ErrChangesetsNotImplemented is returned when a PrimitiveGroup carries
	// a non-empty changesets payload.
	ErrChangesetsNotImplemented = errors.New("osmpbf: changesets not implemented")

	// ErrParallelArrayMismatch is returned when arrays that must be
	// parallel (e.g. a Relation's memids/types/roles_sid) differ in length.
	ErrParallelArrayMismatch = errors.New("osmpbf: parallel array length mismatch")

	// ErrConfig is returned at construction time when an option's value is
	// malformed.
	ErrConfig = errors.New("osmpbf: configuration error")
)
