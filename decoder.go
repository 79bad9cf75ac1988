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

// Decoder is the stateful, push-based entry point: feed it arbitrarily
// sized byte chunks with Push and it emits batches, in source order,
// through the onBatch callback given to NewDecoder. Call Finish once the
// input is exhausted to assert the stream ended cleanly.
type Decoder struct {
	inner *decoder.Decoder
}

// NewDecoder constructs a Decoder. onBatch is invoked once per completed
// blob: first a single-element batch carrying the Header, then one batch
// per OSMData blob, in file order.
func NewDecoder(onBatch func(Batch) error, opts ...Option) (*Decoder, error) {
	inner, err := decoder.New(onBatch, opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{inner: inner}, nil
}

// Push feeds a chunk of bytes, synchronously emitting every batch that
// became complete as a result.
func (d *Decoder) Push(chunk []byte) error {
	return d.inner.Push(chunk)
}

// Finish asserts that every byte pushed resolved into complete frames, with
// nothing left over. A non-nil error means the input was truncated
// mid-frame.
func (d *Decoder) Finish() error {
	return d.inner.Finish()
}
