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
	"encoding/binary"
	"fmt"

	"github.com/kvelaren/osmpbf/internal/pb"
)

type frameState int

const (
	wantLen frameState = iota
	wantHeader
	wantBlobH
	wantBlobD
)

// frameKind distinguishes the one OSMHeader frame from the many OSMData
// frames that follow it.
type frameKind int

const (
	frameHeader frameKind = iota
	frameData
)

// frame is one fully-buffered (BlobHeader, Blob) pair, still compressed.
type frame struct {
	kind frameKind
	blob *pb.Blob
}

// reassembler is the byte-level state machine of §4.1: it turns a stream of
// arbitrarily sized chunks into a sequence of framed blobs, independent of
// how the caller happened to slice the input. A single state variable plus
// a "bytes-needed" counter lets it suspend at any byte boundary.
type reassembler struct {
	buf    []byte
	cursor int
	state  frameState
	needed int

	curType string
	sawHeader bool
}

// compactThreshold bounds how much of the accumulator may be dead (already
// consumed) before it is compacted back to the front; this avoids both
// per-chunk reallocation and unbounded growth from repeatedly appending.
const compactThreshold = 64 * 1024

func newReassembler(bufSize int) *reassembler {
	return &reassembler{
		buf:    make([]byte, 0, bufSize),
		needed: 4,
	}
}

// push feeds a chunk of bytes and returns every frame that became complete
// as a result, in order.
func (r *reassembler) push(chunk []byte) ([]frame, error) {
	r.buf = append(r.buf, chunk...)

	var frames []frame

	for len(r.buf)-r.cursor >= r.needed {
		switch r.state {
		case wantLen:
			n := binary.BigEndian.Uint32(r.buf[r.cursor : r.cursor+4])
			r.cursor += 4
			r.needed = int(n)
			r.state = wantHeader

		case wantHeader:
			b := r.buf[r.cursor : r.cursor+r.needed]
			r.cursor += r.needed

			hdr, err := pb.DecodeBlobHeader(b)
			if err != nil {
				return nil, fmt.Errorf("%w: decoding BlobHeader: %v", ErrFormat, err)
			}

			switch hdr.Type {
			case "OSMHeader":
				if r.sawHeader {
					return nil, fmt.Errorf("%w: OSMHeader seen after the first frame", ErrInputSequence)
				}

				r.state = wantBlobH

			case "OSMData":
				if !r.sawHeader {
					return nil, fmt.Errorf("%w: OSMData before any OSMHeader", ErrInputSequence)
				}

				r.state = wantBlobD

			default:
				return nil, fmt.Errorf("%w: unrecognized BlobHeader type %q", ErrInputSequence, hdr.Type)
			}

			r.curType = hdr.Type
			r.needed = int(hdr.Datasize)

		case wantBlobH, wantBlobD:
			// The decoded Blob aliases b, and compact reuses r.buf, so the
			// blob bytes are copied out of the accumulator first.
			b := append([]byte(nil), r.buf[r.cursor:r.cursor+r.needed]...)
			r.cursor += r.needed

			blob, err := pb.DecodeBlob(b)
			if err != nil {
				return nil, fmt.Errorf("%w: decoding Blob: %v", ErrFormat, err)
			}

			kind := frameData
			if r.state == wantBlobH {
				kind = frameHeader
				r.sawHeader = true
			}

			frames = append(frames, frame{kind: kind, blob: blob})

			r.needed = 4
			r.state = wantLen
		}

		if r.cursor >= compactThreshold {
			r.compact()
		}
	}

	r.compact()

	return frames, nil
}

func (r *reassembler) compact() {
	if r.cursor == 0 {
		return
	}

	n := copy(r.buf, r.buf[r.cursor:])
	r.buf = r.buf[:n]
	r.cursor = 0
}

// finish asserts that the reassembler reached end of stream cleanly: back
// in wantLen with nothing left unconsumed, having seen at least the one
// mandatory OSMHeader frame. Anything else is a truncated frame — an empty
// input included, since it never produced the header every valid file
// must start with.
func (r *reassembler) finish() error {
	if r.state != wantLen || len(r.buf)-r.cursor != 0 || !r.sawHeader {
		return fmt.Errorf("%w: truncated input, %d bytes short of a complete frame", ErrFormat, r.needed-(len(r.buf)-r.cursor))
	}

	return nil
}
