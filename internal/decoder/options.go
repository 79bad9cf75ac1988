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

import (
	"fmt"
)

// defaultBufferSize is the initial capacity given to a fresh reassembler
// accumulator; it grows on demand for larger frames.
const defaultBufferSize = 64 * 1024

type tagFilterKind int

const (
	filterAll tagFilterKind = iota
	filterNone
	filterOnly
)

// TagFilter is the normalized, internal representation of the three shapes
// §4.4 allows withTags to take on: include everything, include nothing, or
// include only a finite set of keys. The zero value is filterAll, so a
// zero-value TagsConfig behaves as the spec's default (withTags=true).
type TagFilter struct {
	kind tagFilterKind
	only map[string]struct{}
}

// AllTags includes every tag.
func AllTags() TagFilter { return TagFilter{kind: filterAll} }

// NoTags excludes every tag.
func NoTags() TagFilter { return TagFilter{kind: filterNone} }

// OnlyTags includes only the named keys. An empty set behaves as NoTags.
func OnlyTags(keys []string) TagFilter {
	if len(keys) == 0 {
		return NoTags()
	}

	only := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		only[k] = struct{}{}
	}

	return TagFilter{kind: filterOnly, only: only}
}

// apply returns the subset of tags this filter admits, or nil if the
// result would be empty — callers rely on a nil map to omit the tags field
// entirely.
func (f TagFilter) apply(tags map[string]string) map[string]string {
	switch f.kind {
	case filterNone:
		return nil
	case filterAll:
		if len(tags) == 0 {
			return nil
		}

		return tags
	case filterOnly:
		out := make(map[string]string, len(f.only))

		for k, v := range tags {
			if _, ok := f.only[k]; ok {
				out[k] = v
			}
		}

		if len(out) == 0 {
			return nil
		}

		return out
	default:
		return nil
	}
}

// TagsConfig holds one TagFilter per entity kind.
type TagsConfig struct {
	Node     TagFilter
	Way      TagFilter
	Relation TagFilter
}

// Options is the normalized configuration driving a Decoder. Construct it
// with NewOptions; the zero value is not ready to use on its own because
// BufferSize would be zero.
type Options struct {
	Tags       TagsConfig
	Info       bool
	WriteRaw   bool
	BufferSize int
}

func defaultOptions() Options {
	return Options{BufferSize: defaultBufferSize}
}

// DecoderOption configures a Decoder at construction time. Options that
// describe an impossible configuration return ErrConfig when applied.
type DecoderOption func(*Options) error

// WithTags turns tag inclusion on or off for every entity kind at once.
func WithTags(include bool) DecoderOption {
	return func(o *Options) error {
		f := NoTags()
		if include {
			f = AllTags()
		}

		o.Tags = TagsConfig{Node: f, Way: f, Relation: f}

		return nil
	}
}

// WithNodeTags restricts node tags to the given keys.
func WithNodeTags(keys ...string) DecoderOption {
	return func(o *Options) error {
		o.Tags.Node = OnlyTags(keys)

		return nil
	}
}

// WithWayTags restricts way tags to the given keys.
func WithWayTags(keys ...string) DecoderOption {
	return func(o *Options) error {
		o.Tags.Way = OnlyTags(keys)

		return nil
	}
}

// WithRelationTags restricts relation tags to the given keys.
func WithRelationTags(keys ...string) DecoderOption {
	return func(o *Options) error {
		o.Tags.Relation = OnlyTags(keys)

		return nil
	}
}

// WithTagsConfig accepts the dynamic, language-neutral shape described by
// §4.4 directly: a bool, or a map with optional "node"/"way"/"relation"
// entries, each itself a bool or a []string of keys. Any other shape is a
// configuration error raised at construction time rather than mid-decode.
func WithTagsConfig(cfg any) DecoderOption {
	return func(o *Options) error {
		switch v := cfg.(type) {
		case bool:
			return WithTags(v)(o)

		case map[string]any:
			tags := TagsConfig{Node: AllTags(), Way: AllTags(), Relation: AllTags()}

			for _, kind := range []string{"node", "way", "relation"} {
				val, ok := v[kind]
				if !ok {
					continue
				}

				f, err := tagFilterFrom(val)
				if err != nil {
					return fmt.Errorf("%w: %q: %w", ErrConfig, kind, err)
				}

				switch kind {
				case "node":
					tags.Node = f
				case "way":
					tags.Way = f
				case "relation":
					tags.Relation = f
				}
			}

			o.Tags = tags

			return nil

		default:
			return fmt.Errorf("%w: withTags must be a bool or a per-entity map, got %T", ErrConfig, cfg)
		}
	}
}

func tagFilterFrom(val any) (TagFilter, error) {
	switch v := val.(type) {
	case bool:
		if v {
			return AllTags(), nil
		}

		return NoTags(), nil

	case []string:
		return OnlyTags(v), nil

	default:
		return TagFilter{}, fmt.Errorf("must be a bool or a []string of keys, got %T", val)
	}
}

// WithInfo includes or excludes the info field.
func WithInfo(include bool) DecoderOption {
	return func(o *Options) error {
		o.Info = include

		return nil
	}
}

// WithWriteRaw switches the decoder into raw-passthrough mode: data blobs
// are emitted as their stored data bytes (still-compressed zlib_data, or
// raw bytes for an uncompressed blob) rather than reconstructed entities.
func WithWriteRaw(writeRaw bool) DecoderOption {
	return func(o *Options) error {
		o.WriteRaw = writeRaw

		return nil
	}
}

// WithBufferSize sets the initial capacity of the reassembler's internal
// accumulator.
func WithBufferSize(n int) DecoderOption {
	return func(o *Options) error {
		if n <= 0 {
			return fmt.Errorf("%w: buffer size must be positive, got %d", ErrConfig, n)
		}

		o.BufferSize = n

		return nil
	}
}

// NewOptions applies opts over the defaults (withTags=true, withInfo=false,
// writeRaw=false) and returns the normalized result.
func NewOptions(opts ...DecoderOption) (Options, error) {
	o := defaultOptions()

	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	return o, nil
}
