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

// Decoder is the stateful, push-based frame reassembler plus entity
// reconstructor described by §4.1-§4.6. It is safe to drive from an
// asynchronous input producer: each Push call is synchronous and either
// delivers zero or more batches through onBatch, or returns an error.
type Decoder struct {
	opts    Options
	re      *reassembler
	onBatch func(Batch) error
}

// New constructs a Decoder. onBatch is invoked once per completed blob, in
// source order: first a single-element batch carrying the Header, then one
// batch per OSMData blob.
func New(onBatch func(Batch) error, opts ...DecoderOption) (*Decoder, error) {
	o, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		opts:    o,
		re:      newReassembler(o.BufferSize),
		onBatch: onBatch,
	}, nil
}

// Push feeds a chunk of bytes. It decodes and emits every blob that became
// complete as a result, in order, before returning.
func (d *Decoder) Push(chunk []byte) error {
	frames, err := d.re.push(chunk)
	if err != nil {
		return err
	}

	batches, err := decodeFrames(frames, d.opts)
	if err != nil {
		return err
	}

	for _, b := range batches {
		if err := d.onBatch(b); err != nil {
			return err
		}
	}

	return nil
}

// Finish asserts that the decoder reached a clean terminal state: every
// byte pushed has been consumed into a complete frame. It reports a
// truncation error otherwise.
func (d *Decoder) Finish() error {
	return d.re.finish()
}
