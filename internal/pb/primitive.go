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

// StringTable is the per-block table of byte strings referenced by index
// from tags, roles, and user names.
type StringTable struct {
	S [][]byte
}

func decodeStringTable(b []byte) (*StringTable, error) {
	st := &StringTable{}

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			st.S = append(st.S, v)

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode StringTable: %w", err)
	}

	return st, nil
}

// PrimitiveBlock is the decoded payload of one OSMData Blob.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     int32
	DateGranularity int32
	LatOffset       int64
	LonOffset       int64
}

// DecodePrimitiveBlock decodes a PrimitiveBlock message.
func DecodePrimitiveBlock(b []byte) (*PrimitiveBlock, error) {
	pb := &PrimitiveBlock{
		Granularity:     100,
		DateGranularity: 1000,
	}

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			st, err := decodeStringTable(v)
			if err != nil {
				return 0, err
			}

			pb.Stringtable = st

			return n, nil

		case 2:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			pg, err := decodePrimitiveGroup(v)
			if err != nil {
				return 0, err
			}

			pb.Primitivegroup = append(pb.Primitivegroup, pg)

			return n, nil

		case 17:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			pb.Granularity = int32(v)

			return n, nil

		case 18:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			pb.DateGranularity = int32(v)

			return n, nil

		case 19:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			pb.LatOffset = int64(v)

			return n, nil

		case 20:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			pb.LonOffset = int64(v)

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode PrimitiveBlock: %w", err)
	}

	if pb.Stringtable == nil {
		pb.Stringtable = &StringTable{}
	}

	return pb, nil
}

// PrimitiveGroup is a homogeneous run of nodes, dense nodes, ways, or
// relations. HasChangesets records whether the group carried any
// changesets payload; the OSM PBF format this decoder targets does not
// implement changesets, so the contents are never decoded, only detected.
type PrimitiveGroup struct {
	Nodes         []*Node
	Dense         *DenseNodes
	Ways          []*Way
	Relations     []*Relation
	HasChangesets bool
}

func decodePrimitiveGroup(b []byte) (*PrimitiveGroup, error) {
	pg := &PrimitiveGroup{}

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			node, err := decodeNode(v)
			if err != nil {
				return 0, err
			}

			pg.Nodes = append(pg.Nodes, node)

			return n, nil

		case 2:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			dense, err := decodeDenseNodes(v)
			if err != nil {
				return 0, err
			}

			pg.Dense = dense

			return n, nil

		case 3:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			way, err := decodeWay(v)
			if err != nil {
				return 0, err
			}

			pg.Ways = append(pg.Ways, way)

			return n, nil

		case 4:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			rel, err := decodeRelation(v)
			if err != nil {
				return 0, err
			}

			pg.Relations = append(pg.Relations, rel)

			return n, nil

		case 5:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			if len(v) > 0 {
				pg.HasChangesets = true
			}

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode PrimitiveGroup: %w", err)
	}

	return pg, nil
}
