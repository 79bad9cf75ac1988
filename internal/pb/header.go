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

// HeaderBBox is the file's bounding box, in nanodegrees.
type HeaderBBox struct {
	Left, Right, Top, Bottom int64
}

// HeaderBlock is the decoded payload of the first (OSMHeader) Blob.
type HeaderBlock struct {
	Bbox                             *HeaderBBox
	RequiredFeatures                 []string
	OptionalFeatures                 []string
	Writingprogram                   string
	Source                           string
	OsmosisReplicationTimestamp      *int64
	OsmosisReplicationSequenceNumber *int64
	OsmosisReplicationBaseUrl        string
}

// DecodeHeaderBlock decodes a HeaderBlock message.
func DecodeHeaderBlock(b []byte) (*HeaderBlock, error) {
	hb := &HeaderBlock{}

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			bbox, err := decodeHeaderBBox(v)
			if err != nil {
				return 0, err
			}

			hb.Bbox = bbox

			return n, nil

		case 4:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			hb.RequiredFeatures = append(hb.RequiredFeatures, string(v))

			return n, nil

		case 5:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			hb.OptionalFeatures = append(hb.OptionalFeatures, string(v))

			return n, nil

		case 16:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			hb.Writingprogram = string(v)

			return n, nil

		case 17:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			hb.Source = string(v)

			return n, nil

		case 32:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			ts := int64(v)
			hb.OsmosisReplicationTimestamp = &ts

			return n, nil

		case 33:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			seq := int64(v)
			hb.OsmosisReplicationSequenceNumber = &seq

			return n, nil

		case 34:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			hb.OsmosisReplicationBaseUrl = string(v)

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode HeaderBlock: %w", err)
	}

	return hb, nil
}

func decodeHeaderBBox(b []byte) (*HeaderBBox, error) {
	bbox := &HeaderBBox{}

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1, 2, 3, 4:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			coord := protowire.DecodeZigZag(v)

			switch num {
			case 1:
				bbox.Left = coord
			case 2:
				bbox.Right = coord
			case 3:
				bbox.Top = coord
			case 4:
				bbox.Bottom = coord
			}

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode HeaderBBox: %w", err)
	}

	return bbox, nil
}
