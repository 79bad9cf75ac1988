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

// MemberType is the Relation.MemberType enum: 0 = node, 1 = way,
// 2 = relation.
type MemberType int32

const (
	MemberNode MemberType = iota
	MemberWay
	MemberRelation
)

// Relation is a single relation. Id is a plain int64, like Way.Id. Memids is
// delta-encoded against its own predecessor; RolesSid and Types are plain,
// parallel arrays of the same length as Memids.
type Relation struct {
	Id       int64
	Keys     []int32
	Vals     []int32
	RolesSid []int32
	Memids   []int64
	Types    []MemberType
	Info     *Info
}

func decodeRelation(b []byte) (*Relation, error) {
	rel := &Relation{}

	var memids []int64

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			rel.Id = int64(v)

			return n, nil

		case 2:
			vals, n, err := consumeVarintList(nil, typ, b, false)
			if err != nil {
				return 0, err
			}

			for _, v := range vals {
				rel.Keys = append(rel.Keys, int32(v))
			}

			return n, nil

		case 3:
			vals, n, err := consumeVarintList(nil, typ, b, false)
			if err != nil {
				return 0, err
			}

			for _, v := range vals {
				rel.Vals = append(rel.Vals, int32(v))
			}

			return n, nil

		case 4:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			info, err := decodeInfo(v)
			if err != nil {
				return 0, err
			}

			rel.Info = info

			return n, nil

		case 8:
			vals, n, err := consumeVarintList(nil, typ, b, false)
			if err != nil {
				return 0, err
			}

			for _, v := range vals {
				rel.RolesSid = append(rel.RolesSid, int32(v))
			}

			return n, nil

		case 9:
			vals, n, err := consumeVarintList(memids, typ, b, true)
			if err != nil {
				return 0, err
			}

			memids = vals

			return n, nil

		case 10:
			vals, n, err := consumeVarintList(nil, typ, b, false)
			if err != nil {
				return 0, err
			}

			for _, v := range vals {
				rel.Types = append(rel.Types, MemberType(v))
			}

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode Relation: %w", err)
	}

	undelta(memids)
	rel.Memids = memids

	return rel, nil
}
