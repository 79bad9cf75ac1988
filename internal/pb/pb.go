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

// Package pb decodes the OSM-binary wire messages (fileformat.proto and
// osmformat.proto) field by field using google.golang.org/protobuf's
// low-level protowire primitives. There is no generated code here: the
// schema is small, stable, and well-known, and a hand-written decoder
// avoids the weight of a full code-generation step for four messages.
package pb

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrTruncated is returned when a message's bytes end in the middle of a
// field.
var ErrTruncated = errors.New("pb: truncated message")

// fieldFunc is invoked once per field encountered while decoding a message.
// It must consume the value bytes appropriate to typ and return the number
// of bytes consumed, or a negative number together with a non-nil error.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error)

// decodeMessage walks b, dispatching every field to fn, unknown ones
// included; fn is responsible for skipping fields it does not recognize
// (see skipField).
func decodeMessage(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))
		}

		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}

		if n < 0 || n > len(b) {
			return fmt.Errorf("%w: field %d", ErrTruncated, num)
		}

		b = b[n:]
	}

	return nil
}

// skipField consumes and discards the value of a field whose number this
// decoder does not recognize.
func skipField(typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(0, typ, b)
	if n < 0 {
		return 0, fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))
	}

	return n, nil
}

func consumeVarint(b []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))
	}

	return v, n, nil
}

func consumeBytes(b []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))
	}

	return v, n, nil
}

// consumeVarintList decodes a repeated integer field that may legally
// appear either packed (a single length-delimited run of varints) or
// unpacked (one varint per occurrence of the tag) — a real-world decoder
// must accept both regardless of what the writer's .proto declared.
func consumeVarintList(dst []int64, typ protowire.Type, b []byte, zigzag bool) ([]int64, int, error) {
	decode := func(v uint64) int64 {
		if zigzag {
			return protowire.DecodeZigZag(v)
		}

		return int64(v)
	}

	switch typ {
	case protowire.BytesType:
		packed, n, err := consumeBytes(b)
		if err != nil {
			return nil, 0, err
		}

		for len(packed) > 0 {
			v, m, err := consumeVarint(packed)
			if err != nil {
				return nil, 0, err
			}

			dst = append(dst, decode(v))
			packed = packed[m:]
		}

		return dst, n, nil

	case protowire.VarintType:
		v, n, err := consumeVarint(b)
		if err != nil {
			return nil, 0, err
		}

		return append(dst, decode(v)), n, nil

	default:
		return nil, 0, fmt.Errorf("pb: unexpected wire type %d for packable varint field", typ)
	}
}

func consumeBoolList(dst []bool, typ protowire.Type, b []byte) ([]bool, int, error) {
	switch typ {
	case protowire.BytesType:
		packed, n, err := consumeBytes(b)
		if err != nil {
			return nil, 0, err
		}

		for len(packed) > 0 {
			v, m, err := consumeVarint(packed)
			if err != nil {
				return nil, 0, err
			}

			dst = append(dst, v != 0)
			packed = packed[m:]
		}

		return dst, n, nil

	case protowire.VarintType:
		v, n, err := consumeVarint(b)
		if err != nil {
			return nil, 0, err
		}

		return append(dst, v != 0), n, nil

	default:
		return nil, 0, fmt.Errorf("pb: unexpected wire type %d for packable bool field", typ)
	}
}
