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

package pb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Compression enumerates which of a Blob's data fields was populated.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionRaw
	CompressionZlib
	CompressionLzma
	CompressionBzip2
	CompressionLz4
	CompressionZstd
)

// BlobHeader is the fixed-size frame header that precedes every Blob.
type BlobHeader struct {
	Type      string
	Datasize  int32
	IndexData []byte
}

// DecodeBlobHeader decodes a BlobHeader message.
func DecodeBlobHeader(b []byte) (*BlobHeader, error) {
	h := &BlobHeader{}

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			h.Type = string(v)

			return n, nil

		case 2:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			h.IndexData = v

			return n, nil

		case 3:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			h.Datasize = int32(v)

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode BlobHeader: %w", err)
	}

	return h, nil
}

// Blob carries the (possibly compressed) bytes of one HeaderBlock or
// PrimitiveBlock.
type Blob struct {
	Raw         []byte
	ZlibData    []byte
	RawSize     int32
	Compression Compression
}

// DecodeBlob decodes a Blob message. Compression records which data field
// was present even for codecs this package does not itself inflate, so the
// caller can report a precise unsupported-compression error.
func DecodeBlob(b []byte) (*Blob, error) {
	blob := &Blob{}

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			blob.Raw = v
			blob.Compression = CompressionRaw

			return n, nil

		case 2:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			blob.RawSize = int32(v)

			return n, nil

		case 3:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			blob.ZlibData = v
			blob.Compression = CompressionZlib

			return n, nil

		case 4:
			_, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			blob.Compression = CompressionLzma

			return n, nil

		case 5:
			_, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			blob.Compression = CompressionBzip2

			return n, nil

		case 6:
			_, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			blob.Compression = CompressionLz4

			return n, nil

		case 7:
			_, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			blob.Compression = CompressionZstd

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode Blob: %w", err)
	}

	return blob, nil
}
