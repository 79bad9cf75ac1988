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

// Way is a single way. Id is a plain int64, unlike Node.Id, which is
// zigzag-encoded; Refs is delta-encoded against its own predecessor.
type Way struct {
	Id   int64
	Keys []int32
	Vals []int32
	Refs []int64
	Info *Info
}

func decodeWay(b []byte) (*Way, error) {
	way := &Way{}

	var refs []int64

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			way.Id = int64(v)

			return n, nil

		case 2:
			vals, n, err := consumeVarintList(nil, typ, b, false)
			if err != nil {
				return 0, err
			}

			for _, v := range vals {
				way.Keys = append(way.Keys, int32(v))
			}

			return n, nil

		case 3:
			vals, n, err := consumeVarintList(nil, typ, b, false)
			if err != nil {
				return 0, err
			}

			for _, v := range vals {
				way.Vals = append(way.Vals, int32(v))
			}

			return n, nil

		case 4:
			vals, n, err := consumeVarintList(refs, typ, b, true)
			if err != nil {
				return 0, err
			}

			refs = vals

			return n, nil

		case 8:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			info, err := decodeInfo(v)
			if err != nil {
				return 0, err
			}

			way.Info = info

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode Way: %w", err)
	}

	undelta(refs)
	way.Refs = refs

	return way, nil
}
