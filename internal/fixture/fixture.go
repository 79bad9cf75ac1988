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

// Package fixture hand-encodes minimal OSM PBF byte streams for tests, the
// same way internal/pb hand-decodes them: field by field with
// google.golang.org/protobuf/encoding/protowire, no generated messages and
// no dependency on a real .osm.pbf sample file.
package fixture

import (
	"encoding/binary"

	"google.golang.org/protobuf/encoding/protowire"
)

func tagVarint(b []byte, num protowire.Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func tagZigzag(b []byte, num protowire.Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
}

func tagBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func tagString(b []byte, num protowire.Number, v string) []byte {
	return tagBytes(b, num, []byte(v))
}

// packedVarints encodes vals as a single length-delimited field: the form
// every real-world writer uses for PrimitiveBlock's repeated integer
// arrays, and the only form internal/pb's consumeVarintList is required to
// accept for this decoder's own output (it also accepts the unpacked
// repeated-tag form, which fixture never needs to emit).
func packedVarints(num protowire.Number, vals []int64, zigzag bool) []byte {
	var inner []byte

	for _, v := range vals {
		u := uint64(v)
		if zigzag {
			u = protowire.EncodeZigZag(v)
		}

		inner = protowire.AppendVarint(inner, u)
	}

	return tagBytes(nil, num, inner)
}

func packedVarints32(num protowire.Number, vals []int32) []byte {
	vs := make([]int64, len(vals))
	for i, v := range vals {
		vs[i] = int64(v)
	}

	return packedVarints(num, vs, false)
}

// BBox is the literal bounding box a HeaderBlock may carry, in nanodegrees.
type BBox struct{ Left, Right, Top, Bottom int64 }

// HeaderBlock encodes a HeaderBlock message. bbox may be nil.
func HeaderBlock(bbox *BBox, writingProgram string) []byte {
	var b []byte

	if bbox != nil {
		var bb []byte
		bb = tagZigzag(bb, 1, bbox.Left)
		bb = tagZigzag(bb, 2, bbox.Right)
		bb = tagZigzag(bb, 3, bbox.Top)
		bb = tagZigzag(bb, 4, bbox.Bottom)
		b = tagBytes(b, 1, bb)
	}

	if writingProgram != "" {
		b = tagString(b, 16, writingProgram)
	}

	return b
}

// StringTable encodes a StringTable message from strs in order. Callers
// supplying dense tag/role data must reserve index 0 themselves, per the
// format's own convention (§3): pass "" as strs[0].
func StringTable(strs ...string) []byte {
	var b []byte
	for _, s := range strs {
		b = tagBytes(b, 1, []byte(s))
	}

	return b
}

// DenseNodesGroup encodes a PrimitiveGroup containing one DenseNodes
// message. idDeltas/latDeltas/lonDeltas are the wire-level deltas (not
// cumulative values) — exactly what a real writer emits and what the
// decoder is expected to undo.
func DenseNodesGroup(idDeltas, latDeltas, lonDeltas []int64, keysVals []int32) []byte {
	var dn []byte
	dn = append(dn, packedVarints(1, idDeltas, true)...)
	dn = append(dn, packedVarints(8, latDeltas, true)...)
	dn = append(dn, packedVarints(9, lonDeltas, true)...)

	if len(keysVals) > 0 {
		dn = append(dn, packedVarints32(10, keysVals)...)
	}

	return tagBytes(nil, 2, dn)
}

// DenseNodesGroupWithInfo is DenseNodesGroup plus a DenseInfo submessage
// whose delta-encoded arrays parallel id/lat/lon.
func DenseNodesGroupWithInfo(
	idDeltas, latDeltas, lonDeltas []int64,
	keysVals []int32,
	versions []int32, tsDeltas, csDeltas, uidDeltas, sidDeltas []int64,
	visible []bool,
) []byte {
	var dn []byte
	dn = append(dn, packedVarints(1, idDeltas, true)...)
	dn = append(dn, packedVarints(8, latDeltas, true)...)
	dn = append(dn, packedVarints(9, lonDeltas, true)...)

	var di []byte
	di = append(di, packedVarints32(1, versions)...)
	di = append(di, packedVarints(2, tsDeltas, true)...)
	di = append(di, packedVarints(3, csDeltas, true)...)
	di = append(di, packedVarints(4, uidDeltas, true)...)
	di = append(di, packedVarints(5, sidDeltas, true)...)

	if visible != nil {
		var inner []byte

		for _, v := range visible {
			n := int64(0)
			if v {
				n = 1
			}

			inner = protowire.AppendVarint(inner, uint64(n))
		}

		di = tagBytes(di, 6, inner)
	}

	dn = tagBytes(dn, 5, di)

	if len(keysVals) > 0 {
		dn = append(dn, packedVarints32(10, keysVals)...)
	}

	return tagBytes(nil, 2, dn)
}

// Info encodes an Info submessage. The user_sid field is always written;
// pass 0 to reference the empty string. Pass nil visible to omit that field.
func Info(version int32, timestamp, changeset int64, uid int32, userSid int32, visible *bool) []byte {
	var b []byte
	b = tagVarint(b, 1, int64(version))
	b = tagVarint(b, 2, timestamp)
	b = tagVarint(b, 3, changeset)
	b = tagVarint(b, 4, int64(uid))
	b = tagVarint(b, 5, int64(userSid))

	if visible != nil {
		v := int64(0)
		if *visible {
			v = 1
		}

		b = tagVarint(b, 6, v)
	}

	return b
}

// WaysGroup encodes a PrimitiveGroup holding the given ways. Each way's
// refs are supplied as wire-level deltas.
type WayFixture struct {
	ID       int64
	RefDelta []int64
	Keys     []int32
	Vals     []int32
	Info     []byte
}

func WaysGroup(ways ...WayFixture) []byte {
	var pg []byte

	for _, w := range ways {
		var wb []byte
		wb = tagVarint(wb, 1, w.ID)

		if len(w.Keys) > 0 {
			wb = append(wb, packedVarints32(2, w.Keys)...)
			wb = append(wb, packedVarints32(3, w.Vals)...)
		}

		wb = append(wb, packedVarints(4, w.RefDelta, true)...)

		if w.Info != nil {
			wb = tagBytes(wb, 8, w.Info)
		}

		pg = tagBytes(pg, 3, wb)
	}

	return pg
}

// RelationsGroup encodes a PrimitiveGroup holding the given relations.
type RelationFixture struct {
	ID       int64
	MemDelta []int64
	Types    []int32
	RolesSid []int32
	Keys     []int32
	Vals     []int32
}

func RelationsGroup(rels ...RelationFixture) []byte {
	var pg []byte

	for _, r := range rels {
		var rb []byte
		rb = tagVarint(rb, 1, r.ID)

		if len(r.Keys) > 0 {
			rb = append(rb, packedVarints32(2, r.Keys)...)
			rb = append(rb, packedVarints32(3, r.Vals)...)
		}

		rb = append(rb, packedVarints32(8, r.RolesSid)...)
		rb = append(rb, packedVarints(9, r.MemDelta, true)...)
		rb = append(rb, packedVarints32(10, r.Types)...)

		pg = tagBytes(pg, 4, rb)
	}

	return pg
}

// PrimitiveBlock encodes a PrimitiveBlock message from a pre-built string
// table and zero or more pre-built PrimitiveGroup byte strings (as
// returned by DenseNodesGroup, WaysGroup, RelationsGroup, or hand-built
// Node/changeset groups).
func PrimitiveBlock(stringTable []byte, granularity int32, latOffset, lonOffset int64, groups ...[]byte) []byte {
	var b []byte
	b = tagBytes(b, 1, stringTable)

	for _, g := range groups {
		b = tagBytes(b, 2, g)
	}

	if granularity != 0 {
		b = tagVarint(b, 17, int64(granularity))
	}

	if latOffset != 0 {
		b = tagVarint(b, 19, latOffset)
	}

	if lonOffset != 0 {
		b = tagVarint(b, 20, lonOffset)
	}

	return b
}

// Frame wraps a serialized HeaderBlock or PrimitiveBlock message as one
// complete, uncompressed (raw) frame: the 4-byte big-endian BlobHeader
// length, the BlobHeader itself, and the Blob.
func Frame(blobType string, payload []byte) []byte {
	var blob []byte
	blob = tagBytes(blob, 1, payload)
	blob = tagVarint(blob, 2, int64(len(payload)))

	var hdr []byte
	hdr = tagString(hdr, 1, blobType)
	hdr = tagVarint(hdr, 3, int64(len(blob)))

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(hdr)))

	out := make([]byte, 0, 4+len(hdr)+len(blob))
	out = append(out, lenPrefix[:]...)
	out = append(out, hdr...)
	out = append(out, blob...)

	return out
}
