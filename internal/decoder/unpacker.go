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
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/kvelaren/osmpbf/internal/core"
	"github.com/kvelaren/osmpbf/internal/pb"
)

// unpack inflates a Blob into its raw bytes.
//
// This method is not "buried" within the frame reassembler so that
// decompression of blobs can be performed concurrently (see batch.go). Only
// the two compression forms this format's Non-goals leave in scope are
// implemented: raw passthrough and zlib. Any other populated compression
// field is reported as ErrUnsupportedCompression rather than silently
// skipped.
func unpack(buf *core.PooledBuffer, blob *pb.Blob) ([]byte, error) {
	switch blob.Compression {
	case pb.CompressionRaw:
		return blob.Raw, nil

	case pb.CompressionZlib:
		rdr, err := zlib.NewReader(bytes.NewReader(blob.ZlibData))
		if err != nil {
			return nil, fmt.Errorf("unpacker factory error: %w", err)
		}

		rawBufferSize := int(blob.RawSize) + bytes.MinRead
		if rawBufferSize > buf.Cap() {
			buf.Grow(rawBufferSize)
		}

		n, err := buf.ReadFrom(rdr)
		if err != nil {
			return nil, fmt.Errorf("unpacker read error: %w", err)
		}

		if n != int64(blob.RawSize) {
			return nil, fmt.Errorf("raw blob data size %d but expected %d", n, blob.RawSize)
		}

		if err := rdr.Close(); err != nil && err != io.EOF {
			return nil, fmt.Errorf("unpacker close error: %w", err)
		}

		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: blob carries neither raw nor zlib_data", ErrUnsupportedCompression)
	}
}
