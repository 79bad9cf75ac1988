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

package decoder

import (
	"fmt"

	"github.com/kvelaren/osmpbf/internal/pb"
	"github.com/kvelaren/osmpbf/model"
)

// parsePrimitiveBlock turns one inflated PrimitiveBlock payload into its
// ordered batch of entities: nodes, then dense nodes, then ways, then
// relations, groups concatenated in file order (§3).
func parsePrimitiveBlock(buf []byte, opts Options) ([]model.Entity, error) {
	blk, err := pb.DecodePrimitiveBlock(buf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode primitive block: %w", err)
	}

	c := newBlockContext(blk, opts)

	var entities []model.Entity

	for _, pg := range blk.Primitivegroup {
		if pg.HasChangesets {
			return nil, ErrChangesetsNotImplemented
		}

		nodes, err := c.decodeNodes(pg.Nodes)
		if err != nil {
			return nil, err
		}

		entities = append(entities, nodes...)

		dense, err := c.decodeDenseNodes(pg.Dense)
		if err != nil {
			return nil, err
		}

		entities = append(entities, dense...)

		ways, err := c.decodeWays(pg.Ways)
		if err != nil {
			return nil, err
		}

		entities = append(entities, ways...)

		relations, err := c.decodeRelations(pg.Relations)
		if err != nil {
			return nil, err
		}

		entities = append(entities, relations...)
	}

	return entities, nil
}

type blockContext struct {
	strings         [][]byte
	granularity     int32
	latOffset       int64
	lonOffset       int64
	dateGranularity int32
	opts            Options
}

func newBlockContext(blk *pb.PrimitiveBlock, opts Options) *blockContext {
	return &blockContext{
		strings:         blk.Stringtable.S,
		granularity:     blk.Granularity,
		latOffset:       blk.LatOffset,
		lonOffset:       blk.LonOffset,
		dateGranularity: blk.DateGranularity,
		opts:            opts,
	}
}

func (c *blockContext) str(idx int32) string {
	if idx < 0 || int(idx) >= len(c.strings) {
		return ""
	}

	return string(c.strings[idx])
}

func (c *blockContext) decodeNodes(nodes []*pb.Node) ([]model.Entity, error) {
	entities := make([]model.Entity, len(nodes))

	for i, node := range nodes {
		tags, err := c.decodeTags(node.Keys, node.Vals)
		if err != nil {
			return nil, err
		}

		entities[i] = model.Node{
			Type: "node",
			ID:   model.ID(node.Id),
			Tags: c.opts.Tags.Node.apply(tags),
			Info: c.decodeInfo(node.Info),
			Lat:  model.ToDegrees(c.latOffset, c.granularity, node.Lat),
			Lon:  model.ToDegrees(c.lonOffset, c.granularity, node.Lon),
		}
	}

	return entities, nil
}

func (c *blockContext) decodeDenseNodes(nodes *pb.DenseNodes) ([]model.Entity, error) {
	if nodes == nil {
		return nil, nil
	}

	ids, lats, lons := nodes.Id, nodes.Lat, nodes.Lon
	if len(lats) != len(ids) || len(lons) != len(ids) {
		return nil, fmt.Errorf("%w: dense nodes id/lat/lon", ErrParallelArrayMismatch)
	}

	entities := make([]model.Entity, len(ids))

	tic := newDenseTagsContext(c.strings, nodes.KeysVals)
	dic := newDenseInfoContext(c.dateGranularity, c.strings, nodes.Denseinfo, len(ids))

	for i := range ids {
		tags, err := tic.next()
		if err != nil {
			return nil, err
		}

		info, err := dic.next(i)
		if err != nil {
			return nil, err
		}

		entities[i] = model.Node{
			Type: "node",
			ID:   model.ID(ids[i]),
			Tags: c.opts.Tags.Node.apply(tags),
			Info: c.applyInfoPolicy(info),
			Lat:  model.ToDegrees(c.latOffset, c.granularity, lats[i]),
			Lon:  model.ToDegrees(c.lonOffset, c.granularity, lons[i]),
		}
	}

	return entities, nil
}

func (c *blockContext) decodeWays(ways []*pb.Way) ([]model.Entity, error) {
	entities := make([]model.Entity, len(ways))

	for i, way := range ways {
		refs := make([]model.ID, len(way.Refs))
		for j, ref := range way.Refs {
			refs[j] = model.ID(ref)
		}

		tags, err := c.decodeTags(way.Keys, way.Vals)
		if err != nil {
			return nil, err
		}

		entities[i] = model.Way{
			Type: "way",
			ID:   model.ID(way.Id),
			Refs: refs,
			Tags: c.opts.Tags.Way.apply(tags),
			Info: c.decodeInfo(way.Info),
		}
	}

	return entities, nil
}

func (c *blockContext) decodeRelations(relations []*pb.Relation) ([]model.Entity, error) {
	entities := make([]model.Entity, len(relations))

	for i, rel := range relations {
		members, err := c.decodeMembers(rel)
		if err != nil {
			return nil, err
		}

		tags, err := c.decodeTags(rel.Keys, rel.Vals)
		if err != nil {
			return nil, err
		}

		entities[i] = model.Relation{
			Type:    "relation",
			ID:      model.ID(rel.Id),
			Members: members,
			Tags:    c.opts.Tags.Relation.apply(tags),
			Info:    c.decodeInfo(rel.Info),
		}
	}

	return entities, nil
}

func (c *blockContext) decodeMembers(rel *pb.Relation) ([]model.Member, error) {
	n := len(rel.Memids)
	if len(rel.Types) != n || len(rel.RolesSid) != n {
		return nil, fmt.Errorf("%w: relation memids/types/roles_sid", ErrParallelArrayMismatch)
	}

	members := make([]model.Member, n)

	for i := range rel.Memids {
		members[i] = model.Member{
			Type: model.EntityType(rel.Types[i]),
			Ref:  model.ID(rel.Memids[i]),
			Role: c.str(rel.RolesSid[i]),
		}
	}

	return members, nil
}

func (c *blockContext) decodeTags(keyIDs, valIDs []int32) (map[string]string, error) {
	if len(keyIDs) != len(valIDs) {
		return nil, fmt.Errorf("%w: keys/vals", ErrParallelArrayMismatch)
	}

	if len(keyIDs) == 0 {
		return nil, nil
	}

	tags := make(map[string]string, len(keyIDs))

	for i, keyID := range keyIDs {
		tags[c.str(keyID)] = c.str(valIDs[i])
	}

	return tags, nil
}

// decodeInfo applies the tag-less, non-dense Info conversion and then the
// §4.5 omission policy, returning nil when withInfo is false.
func (c *blockContext) decodeInfo(info *pb.Info) *model.Info {
	if !c.opts.Info {
		return nil
	}

	if info == nil {
		return nil
	}

	mi := &model.Info{
		Version:   info.Version,
		Timestamp: info.Timestamp * int64(c.dateGranularity),
		Changeset: info.Changeset,
		UID:       model.UID(info.Uid),
		User:      c.str(info.UserSid),
	}

	if info.HasVisible && !info.Visible {
		f := false
		mi.Visible = &f
	}

	return mi
}

// applyInfoPolicy is denseInfoContext's counterpart: the dense
// pipeline already built a *model.Info (or nil), so there's nothing left to
// convert, only the withInfo gate to apply.
func (c *blockContext) applyInfoPolicy(info *model.Info) *model.Info {
	if !c.opts.Info {
		return nil
	}

	return info
}
