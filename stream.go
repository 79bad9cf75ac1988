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

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kvelaren/osmpbf/internal/decoder"
)

// Parse is the pure function backing raw-passthrough mode (§4.6): given the
// already-inflated bytes of one OSMData blob's PrimitiveBlock, it returns
// the same entities the non-raw path would have reconstructed.
func Parse(inflatedBlockBytes []byte, opts ...Option) ([]Entity, error) {
	o, err := decoder.NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	return decoder.Parse(inflatedBlockBytes, o)
}

// errStopIteration unwinds out of a Decoder callback when Open's consumer
// stops ranging early; it never escapes Open itself.
var errStopIteration = errors.New("osmpbf: iteration stopped")

const streamChunkSize = 64 * 1024

// Open reads the file at path and returns a lazy, pull-based sequence of
// its entities: the Header, then nodes, ways, and relations in source
// order. It is the flat-sequence counterpart to Decoder's batch callback
// (§4.6) — convenient for simple range loops, at the cost of roughly 1.6x
// more overhead per entity than consuming batches directly.
//
// The returned sequence yields a final (zero, err) pair and stops iterating
// if reading or decoding fails; callers should check the error on every
// iteration that might be the last.
func Open(path string, opts ...Option) func(yield func(Entity, error) bool) {
	return func(yield func(Entity, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(nil, fmt.Errorf("osmpbf: opening %s: %w", path, err))

			return
		}
		defer f.Close()

		stopped := false

		dec, err := decoder.New(func(b decoder.Batch) error {
			for _, e := range b.Entities {
				if !yield(e, nil) {
					stopped = true

					return errStopIteration
				}
			}

			return nil
		}, opts...)
		if err != nil {
			yield(nil, err)

			return
		}

		r := bufio.NewReaderSize(f, streamChunkSize)
		buf := make([]byte, streamChunkSize)

		for {
			n, rerr := r.Read(buf)
			if n > 0 {
				if err := dec.Push(buf[:n]); err != nil {
					if !errors.Is(err, errStopIteration) {
						yield(nil, err)
					}

					return
				}
			}

			if stopped {
				return
			}

			if rerr == io.EOF {
				break
			}

			if rerr != nil {
				yield(nil, fmt.Errorf("osmpbf: reading %s: %w", path, rerr))

				return
			}
		}

		if err := dec.Finish(); err != nil {
			yield(nil, err)
		}
	}
}
