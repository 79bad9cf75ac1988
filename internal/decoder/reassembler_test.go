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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvelaren/osmpbf/internal/fixture"
)

func sampleStream() []byte {
	var stream []byte
	stream = append(stream, fixture.Frame("OSMHeader", fixture.HeaderBlock(nil, "test"))...)

	st := fixture.StringTable("")
	dense := fixture.DenseNodesGroup([]int64{100, 1, 1}, []int64{100000000, 0, 0}, []int64{200000000, 0, 0}, nil)
	stream = append(stream, fixture.Frame("OSMData", fixture.PrimitiveBlock(st, 100, 0, 0, dense))...)

	return stream
}

// feed pushes data through a fresh reassembler in chunks of size n (n<=0
// means "all at once") and returns every frame produced, in order.
func feed(t *testing.T, data []byte, chunkSize int) []frame {
	t.Helper()

	r := newReassembler(defaultBufferSize)

	var frames []frame

	if chunkSize <= 0 {
		chunkSize = len(data)
	}

	for i := 0; i < len(data); i += chunkSize {
		end := i + chunkSize
		if end > len(data) {
			end = len(data)
		}

		fs, err := r.push(data[i:end])
		require.NoError(t, err)

		frames = append(frames, fs...)
	}

	require.NoError(t, r.finish())

	return frames
}

func TestReassemblerChunkIndependence(t *testing.T) {
	data := sampleStream()

	oneShot := feed(t, data, 0)
	byteAtATime := feed(t, data, 1)
	oddChunks := feed(t, data, 7)

	require.Len(t, oneShot, 2)
	assert.Equal(t, oneShot, byteAtATime)
	assert.Equal(t, oneShot, oddChunks)

	assert.Equal(t, frameHeader, oneShot[0].kind)
	assert.Equal(t, frameData, oneShot[1].kind)
}

func TestReassemblerTruncationAtEOF(t *testing.T) {
	data := sampleStream()

	r := newReassembler(defaultBufferSize)

	_, err := r.push(data[:len(data)-3])
	require.NoError(t, err)

	err = r.finish()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestReassemblerEmptyInputTruncation(t *testing.T) {
	r := newReassembler(defaultBufferSize)

	err := r.finish()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestReassemblerRejectsDataBeforeHeader(t *testing.T) {
	r := newReassembler(defaultBufferSize)

	st := fixture.StringTable("")
	dense := fixture.DenseNodesGroup([]int64{1}, []int64{0}, []int64{0}, nil)
	data := fixture.Frame("OSMData", fixture.PrimitiveBlock(st, 100, 0, 0, dense))

	_, err := r.push(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputSequence))
}

func TestReassemblerRejectsUnknownBlobType(t *testing.T) {
	r := newReassembler(defaultBufferSize)

	data := fixture.Frame("OSMWeird", []byte{})

	_, err := r.push(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputSequence))
}
