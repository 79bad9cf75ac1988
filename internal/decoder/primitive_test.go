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
	"github.com/kvelaren/osmpbf/model"
)

func mustOptions(t *testing.T, opts ...DecoderOption) Options {
	t.Helper()

	o, err := NewOptions(opts...)
	require.NoError(t, err)

	return o
}

// TestDenseNodesDeltaReversal is spec.md §8's literal dense-correctness and
// end-to-end scenario 3: ids delta [100,1,1] → 100,101,102, each at lat
// 10.0, lon 20.0 for granularity 100 and zero offsets.
func TestDenseNodesDeltaReversal(t *testing.T) {
	st := fixture.StringTable("")
	dense := fixture.DenseNodesGroup(
		[]int64{100, 1, 1},
		[]int64{100000000, 0, 0},
		[]int64{200000000, 0, 0},
		nil,
	)
	blk := fixture.PrimitiveBlock(st, 100, 0, 0, dense)

	entities, err := parsePrimitiveBlock(blk, mustOptions(t))
	require.NoError(t, err)
	require.Len(t, entities, 3)

	wantIDs := []model.ID{100, 101, 102}
	for i, e := range entities {
		n, ok := e.(model.Node)
		require.True(t, ok)
		assert.Equal(t, wantIDs[i], n.ID)
		assert.InDelta(t, 10.0, float64(n.Lat), 1e-9)
		assert.InDelta(t, 20.0, float64(n.Lon), 1e-9)
		assert.Nil(t, n.Tags)
		assert.Nil(t, n.Info)
	}
}

// TestCoordinateFormula is spec.md §8's literal coordinate-formula scenario.
func TestCoordinateFormula(t *testing.T) {
	assert.InDelta(t, 33.0, float64(model.ToDegrees(0, 100, 330000000)), 1e-9)
}

// TestDenseNodesTags exercises the keys_vals sentinel-terminated encoding:
// node 0 gets one tag, node 1 gets none, node 2 gets a different one.
func TestDenseNodesTags(t *testing.T) {
	st := fixture.StringTable("", "highway", "residential", "name", "Elm Street")
	keysVals := []int32{1, 2, 0, 0, 3, 4, 0}
	dense := fixture.DenseNodesGroup([]int64{1, 1, 1}, []int64{0, 0, 0}, []int64{0, 0, 0}, keysVals)
	blk := fixture.PrimitiveBlock(st, 100, 0, 0, dense)

	entities, err := parsePrimitiveBlock(blk, mustOptions(t))
	require.NoError(t, err)
	require.Len(t, entities, 3)

	n0 := entities[0].(model.Node)
	assert.Equal(t, map[string]string{"highway": "residential"}, n0.Tags)

	n1 := entities[1].(model.Node)
	assert.Nil(t, n1.Tags)

	n2 := entities[2].(model.Node)
	assert.Equal(t, map[string]string{"name": "Elm Street"}, n2.Tags)
}

// TestRelationMembers is spec.md §8's literal relation-member scenario.
func TestRelationMembers(t *testing.T) {
	st := fixture.StringTable("", "from", "to")
	group := fixture.RelationsGroup(fixture.RelationFixture{
		ID:       1,
		MemDelta: []int64{5, 10, -2},
		Types:    []int32{0, 1, 2},
		RolesSid: []int32{1, 2, 1},
	})
	blk := fixture.PrimitiveBlock(st, 100, 0, 0, group)

	entities, err := parsePrimitiveBlock(blk, mustOptions(t))
	require.NoError(t, err)
	require.Len(t, entities, 1)

	rel := entities[0].(model.Relation)
	assert.Equal(t, []model.Member{
		{Type: model.NODE, Ref: 5, Role: "from"},
		{Type: model.WAY, Ref: 15, Role: "to"},
		{Type: model.RELATION, Ref: 13, Role: "from"},
	}, rel.Members)
}

func TestRelationParallelArrayMismatch(t *testing.T) {
	st := fixture.StringTable("")
	group := fixture.RelationsGroup(fixture.RelationFixture{
		ID:       1,
		MemDelta: []int64{5, 10},
		Types:    []int32{0, 1, 2},
		RolesSid: []int32{0, 0, 0},
	})
	blk := fixture.PrimitiveBlock(st, 100, 0, 0, group)

	_, err := parsePrimitiveBlock(blk, mustOptions(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParallelArrayMismatch))
}

// TestWayRefsDeltaReversal mirrors the dense-node delta rule applied to a
// way's refs array.
func TestWayRefsDeltaReversal(t *testing.T) {
	st := fixture.StringTable("")
	group := fixture.WaysGroup(fixture.WayFixture{
		ID:       7,
		RefDelta: []int64{100, 1, 1},
	})
	blk := fixture.PrimitiveBlock(st, 100, 0, 0, group)

	entities, err := parsePrimitiveBlock(blk, mustOptions(t))
	require.NoError(t, err)
	require.Len(t, entities, 1)

	w := entities[0].(model.Way)
	assert.Equal(t, []model.ID{100, 101, 102}, w.Refs)
}

// TestTagFilterMonotonicity checks §8's filtering-monotonicity property:
// withTags=false admits nothing; a key set admits only its own keys.
func TestTagFilterMonotonicity(t *testing.T) {
	st := fixture.StringTable("", "highway", "residential", "surface", "paved")
	group := fixture.WaysGroup(fixture.WayFixture{
		ID:   1,
		Keys: []int32{1, 3},
		Vals: []int32{2, 4},
	})
	blk := fixture.PrimitiveBlock(st, 100, 0, 0, group)

	noTags, err := parsePrimitiveBlock(blk, mustOptions(t, WithTags(false)))
	require.NoError(t, err)
	assert.Nil(t, noTags[0].(model.Way).Tags)

	onlyHighway, err := parsePrimitiveBlock(blk, mustOptions(t, WithWayTags("highway")))
	require.NoError(t, err)

	tags := onlyHighway[0].(model.Way).Tags
	for k := range tags {
		assert.Equal(t, "highway", k)
	}
}

// TestInfoOmission checks §8's info-omission property for the non-dense
// path: withInfo=false never carries Info; withInfo=true carries every
// field the Info sets, and Visible when it is explicitly false.
func TestInfoOmission(t *testing.T) {
	st := fixture.StringTable("", "alice")
	visible := false
	info := fixture.Info(3, 1000, 42, 7, 1, &visible)
	group := fixture.WaysGroup(fixture.WayFixture{ID: 1, RefDelta: []int64{1}, Info: info})
	blk := fixture.PrimitiveBlock(st, 100, 0, 0, group)

	without, err := parsePrimitiveBlock(blk, mustOptions(t, WithInfo(false)))
	require.NoError(t, err)
	assert.Nil(t, without[0].(model.Way).Info)

	with, err := parsePrimitiveBlock(blk, mustOptions(t, WithInfo(true)))
	require.NoError(t, err)

	got := with[0].(model.Way).Info
	require.NotNil(t, got)
	assert.Equal(t, int32(3), got.Version)
	assert.Equal(t, int64(1000000), got.Timestamp) // date_granularity defaults to 1000
	assert.Equal(t, int64(42), got.Changeset)
	assert.Equal(t, model.UID(7), got.UID)
	assert.Equal(t, "alice", got.User)
	require.NotNil(t, got.Visible)
	assert.False(t, *got.Visible)
}

// TestDenseInfoPerElementValues is spec.md §8's dense-correctness property
// applied to DenseInfo: timestamp/changeset/uid deltas [10,5,-3] must
// reverse to cumulative values 10,15,12 per element, and user_sid deltas
// [1,1,1] to 1,2,3, the same rule id/lat/lon already follow. This is the multi-node DenseInfo case that
// TestInfoOmission's non-dense Way fixture never exercises.
func TestDenseInfoPerElementValues(t *testing.T) {
	st := fixture.StringTable("", "alice", "bob", "carol")
	dense := fixture.DenseNodesGroupWithInfo(
		[]int64{1, 1, 1},
		[]int64{0, 0, 0},
		[]int64{0, 0, 0},
		nil,
		[]int32{1, 1, 1},
		[]int64{10, 5, -3},
		[]int64{10, 5, -3},
		[]int64{10, 5, -3},
		[]int64{1, 1, 1},
		nil,
	)
	blk := fixture.PrimitiveBlock(st, 100, 0, 0, dense)

	entities, err := parsePrimitiveBlock(blk, mustOptions(t, WithInfo(true)))
	require.NoError(t, err)
	require.Len(t, entities, 3)

	wantTimestamps := []int64{10000, 15000, 12000} // date_granularity defaults to 1000
	wantChangesets := []int64{10, 15, 12}
	wantUIDs := []model.UID{10, 15, 12}
	wantUsers := []string{"alice", "bob", "carol"}

	for i, e := range entities {
		n, ok := e.(model.Node)
		require.True(t, ok)
		require.NotNil(t, n.Info)
		assert.Equal(t, wantTimestamps[i], n.Info.Timestamp)
		assert.Equal(t, wantChangesets[i], n.Info.Changeset)
		assert.Equal(t, wantUIDs[i], n.Info.UID)
		assert.Equal(t, wantUsers[i], n.Info.User)
	}
}

func TestChangesetsNotImplemented(t *testing.T) {
	st := fixture.StringTable("")

	var group []byte
	group = append(group, 0x2a, 0x01, 0x00) // field 5 (changesets), length 1, one byte payload

	blk := fixture.PrimitiveBlock(st, 100, 0, 0, group)

	_, err := parsePrimitiveBlock(blk, mustOptions(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChangesetsNotImplemented))
}
