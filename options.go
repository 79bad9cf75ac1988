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

// Option configures a Decoder, Open, or Parse call. Options that describe
// an impossible configuration (§4.4, §7 config-error) are rejected at
// construction time rather than mid-decode.
type Option = decoder.DecoderOption

// WithTags turns tag inclusion on or off for every entity kind at once.
// The default is true.
func WithTags(include bool) Option { return decoder.WithTags(include) }

// WithNodeTags restricts node tags to the given keys. An empty set
// excludes all node tags.
func WithNodeTags(keys ...string) Option { return decoder.WithNodeTags(keys...) }

// WithWayTags restricts way tags to the given keys.
func WithWayTags(keys ...string) Option { return decoder.WithWayTags(keys...) }

// WithRelationTags restricts relation tags to the given keys.
func WithRelationTags(keys ...string) Option { return decoder.WithRelationTags(keys...) }

// WithTagsConfig accepts the dynamic, language-neutral shape described by
// §4.4 directly: a bool, or a map with optional "node"/"way"/"relation"
// entries, each itself a bool or a []string of keys.
func WithTagsConfig(cfg any) Option { return decoder.WithTagsConfig(cfg) }

// WithInfo includes or excludes the info field on every entity. The
// default is false.
func WithInfo(include bool) Option { return decoder.WithInfo(include) }

// WithWriteRaw switches to raw-passthrough mode: data blobs are emitted as
// their stored data bytes (still-compressed zlib_data, or raw bytes for an
// uncompressed blob) rather than reconstructed entities. Use Parse to
// reconstruct entities from the inflated bytes downstream.
func WithWriteRaw(writeRaw bool) Option { return decoder.WithWriteRaw(writeRaw) }

// WithBufferSize sets the initial capacity of the frame reassembler's
// internal byte accumulator.
func WithBufferSize(n int) Option { return decoder.WithBufferSize(n) }
