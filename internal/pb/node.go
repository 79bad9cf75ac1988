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

// Info carries a primitive's optional metadata (version, timestamp,
// changeset, user). Every field is optional on the wire, so each value
// field has a matching Has* flag recording whether it was present.
type Info struct {
	Version   int32
	Timestamp int64
	Changeset int64
	Uid       int32
	UserSid   int32
	Visible   bool

	HasVersion   bool
	HasTimestamp bool
	HasChangeset bool
	HasUid       bool
	HasUserSid   bool
	HasVisible   bool
}

func decodeInfo(b []byte) (*Info, error) {
	info := &Info{Visible: true}

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			info.Version = int32(v)
			info.HasVersion = true

			return n, nil

		case 2:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			info.Timestamp = int64(v)
			info.HasTimestamp = true

			return n, nil

		case 3:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			info.Changeset = int64(v)
			info.HasChangeset = true

			return n, nil

		case 4:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			info.Uid = int32(v)
			info.HasUid = true

			return n, nil

		case 5:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			info.UserSid = int32(v)
			info.HasUserSid = true

			return n, nil

		case 6:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			info.Visible = v != 0
			info.HasVisible = true

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode Info: %w", err)
	}

	return info, nil
}

// Node is a single, non-dense node. id and lat/lon are plain (non-delta)
// fields in this message, unlike their DenseNodes counterparts.
type Node struct {
	Id      int64
	Lat     int64
	Lon     int64
	Keys    []int32
	Vals    []int32
	Info    *Info
}

func decodeNode(b []byte) (*Node, error) {
	node := &Node{}

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			node.Id = protowire.DecodeZigZag(v)

			return n, nil

		case 2:
			vals, n, err := consumeVarintList(nil, typ, b, false)
			if err != nil {
				return 0, err
			}

			for _, v := range vals {
				node.Keys = append(node.Keys, int32(v))
			}

			return n, nil

		case 3:
			vals, n, err := consumeVarintList(nil, typ, b, false)
			if err != nil {
				return 0, err
			}

			for _, v := range vals {
				node.Vals = append(node.Vals, int32(v))
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

			node.Info = info

			return n, nil

		case 8:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			node.Lat = protowire.DecodeZigZag(v)

			return n, nil

		case 9:
			v, n, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}

			node.Lon = protowire.DecodeZigZag(v)

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode Node: %w", err)
	}

	return node, nil
}

// DenseInfo is the struct-of-arrays counterpart of Info for DenseNodes.
// Every array is delta-encoded against its own predecessor except Visible,
// which is plain.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	Uid       []int32
	UserSid   []int32
	Visible   []bool
}

func decodeDenseInfo(b []byte) (*DenseInfo, error) {
	di := &DenseInfo{}

	var timestamp, changeset, uid, userSid []int64

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			vals, n, err := consumeVarintList(nil, typ, b, false)
			if err != nil {
				return 0, err
			}

			for _, v := range vals {
				di.Version = append(di.Version, int32(v))
			}

			return n, nil

		case 2:
			vals, n, err := consumeVarintList(timestamp, typ, b, true)
			if err != nil {
				return 0, err
			}

			timestamp = vals

			return n, nil

		case 3:
			vals, n, err := consumeVarintList(changeset, typ, b, true)
			if err != nil {
				return 0, err
			}

			changeset = vals

			return n, nil

		case 4:
			vals, n, err := consumeVarintList(uid, typ, b, true)
			if err != nil {
				return 0, err
			}

			uid = vals

			return n, nil

		case 5:
			vals, n, err := consumeVarintList(userSid, typ, b, true)
			if err != nil {
				return 0, err
			}

			userSid = vals

			return n, nil

		case 6:
			vals, n, err := consumeBoolList(di.Visible, typ, b)
			if err != nil {
				return 0, err
			}

			di.Visible = vals

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode DenseInfo: %w", err)
	}

	undelta(timestamp)
	undelta(changeset)
	undelta32(uid)
	undelta32(userSid)

	di.Timestamp = timestamp
	di.Changeset = changeset
	di.Uid = int32Slice(uid)
	di.UserSid = int32Slice(userSid)

	return di, nil
}

// undelta turns a slice of consecutive deltas into cumulative values, in
// place.
func undelta(vals []int64) {
	var running int64

	for i, v := range vals {
		running += v
		vals[i] = running
	}
}

func undelta32(vals []int64) {
	undelta(vals)
}

func int32Slice(vals []int64) []int32 {
	if vals == nil {
		return nil
	}

	out := make([]int32, len(vals))
	for i, v := range vals {
		out[i] = int32(v)
	}

	return out
}

// DenseNodes is the struct-of-arrays encoding used for the overwhelming
// majority of real-world node data. Id, Lat, and Lon are each delta-encoded
// against their own predecessor. KeysVals is a single flat array shared by
// every node in the group: each node's run of key/value string-table
// indices is terminated by a 0 sentinel.
type DenseNodes struct {
	Id       []int64
	Lat      []int64
	Lon      []int64
	KeysVals []int32
	Denseinfo *DenseInfo
}

func decodeDenseNodes(b []byte) (*DenseNodes, error) {
	dn := &DenseNodes{}

	var id, lat, lon []int64

	err := decodeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			vals, n, err := consumeVarintList(id, typ, b, true)
			if err != nil {
				return 0, err
			}

			id = vals

			return n, nil

		case 5:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}

			di, err := decodeDenseInfo(v)
			if err != nil {
				return 0, err
			}

			dn.Denseinfo = di

			return n, nil

		case 8:
			vals, n, err := consumeVarintList(lat, typ, b, true)
			if err != nil {
				return 0, err
			}

			lat = vals

			return n, nil

		case 9:
			vals, n, err := consumeVarintList(lon, typ, b, true)
			if err != nil {
				return 0, err
			}

			lon = vals

			return n, nil

		case 10:
			vals, n, err := consumeVarintList(nil, typ, b, false)
			if err != nil {
				return 0, err
			}

			for _, v := range vals {
				dn.KeysVals = append(dn.KeysVals, int32(v))
			}

			return n, nil

		default:
			return skipField(typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode DenseNodes: %w", err)
	}

	undelta(id)
	undelta(lat)
	undelta(lon)

	dn.Id = id
	dn.Lat = lat
	dn.Lon = lon

	return dn, nil
}
