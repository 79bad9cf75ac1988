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
	"log/slog"
	"runtime"
	"sync"

	"github.com/destel/rill"

	"github.com/kvelaren/osmpbf/internal/core"
	"github.com/kvelaren/osmpbf/internal/pb"
	"github.com/kvelaren/osmpbf/model"
)

// Batch is one emitted unit: the header's single-element batch, the
// entities reconstructed from one OSMData blob, or — in raw-passthrough
// mode — the stored data bytes of one OSMData blob: its still-compressed
// zlib_data, or its raw bytes when the blob is stored uncompressed.
type Batch struct {
	Entities []model.Entity
	Raw      []byte
}

// decodeFrames turns a run of buffered frames into batches, one per frame,
// preserving frame order in the result regardless of which worker finishes
// first. Decompression and reconstruction of each data frame are
// embarrassingly parallel (§9's design hook); rill.Try carries each
// worker's outcome back to the reorder step without losing which frame it
// belongs to. The single-threaded contract of §5 stays observable from the
// outside: a caller of decodeFrames only ever sees batches in frame order.
func decodeFrames(frames []frame, opts Options) ([]Batch, error) {
	n := len(frames)
	if n == 0 {
		return nil, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}

	results := make([]rill.Try[Batch], n)
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup

	for i, f := range frames {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, f frame) {
			defer wg.Done()
			defer func() { <-sem }()

			b, err := decodeFrame(f, opts)
			if err != nil {
				slog.Error(err.Error())
				results[i] = rill.Try[Batch]{Error: err}

				return
			}

			results[i] = rill.Try[Batch]{Value: b}
		}(i, f)
	}

	wg.Wait()

	batches := make([]Batch, n)

	for i, r := range results {
		if r.Error != nil {
			return nil, r.Error
		}

		batches[i] = r.Value
	}

	return batches, nil
}

func decodeFrame(f frame, opts Options) (Batch, error) {
	if f.kind == frameHeader {
		hb, err := decodeHeaderBlob(f.blob)
		if err != nil {
			return Batch{}, err
		}

		return Batch{Entities: []model.Entity{hb}}, nil
	}

	if opts.WriteRaw {
		switch f.blob.Compression {
		case pb.CompressionZlib:
			return Batch{Raw: f.blob.ZlibData}, nil
		case pb.CompressionRaw:
			return Batch{Raw: f.blob.Raw}, nil
		default:
			return Batch{}, fmt.Errorf("%w: blob carries neither raw nor zlib_data", ErrUnsupportedCompression)
		}
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	unpacked, err := unpack(buf, f.blob)
	if err != nil {
		return Batch{}, fmt.Errorf("unable to unpack blob: %w", err)
	}

	entities, err := parsePrimitiveBlock(unpacked, opts)
	if err != nil {
		return Batch{}, fmt.Errorf("unable to parse block: %w", err)
	}

	return Batch{Entities: entities}, nil
}

// Parse is the pure, public entry point used in raw-passthrough mode: a
// downstream consumer that collected the raw zlib_data bytes from Decoder
// and inflated them can hand the inflated bytes back here to get the same
// entities the non-raw path would have produced.
func Parse(inflatedBlockBytes []byte, opts Options) ([]model.Entity, error) {
	return parsePrimitiveBlock(inflatedBlockBytes, opts)
}
