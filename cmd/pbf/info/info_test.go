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

package info

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvelaren/osmpbf/internal/fixture"
)

func sampleFile() []byte {
	var out []byte
	out = append(out, fixture.Frame("OSMHeader", fixture.HeaderBlock(&fixture.BBox{
		Left: -511482000, Right: 335437000, Top: 51693440000, Bottom: 51285540000,
	}, "Osmium (http://wiki.openstreetmap.org/wiki/Osmium)"))...)

	st := fixture.StringTable("")
	dense := fixture.DenseNodesGroup([]int64{1, 1, 1}, []int64{0, 0, 0}, []int64{0, 0, 0}, nil)
	ways := fixture.WaysGroup(fixture.WayFixture{ID: 1, RefDelta: []int64{1, 1}})
	rels := fixture.RelationsGroup(fixture.RelationFixture{
		ID:       1,
		MemDelta: []int64{1},
		Types:    []int32{0},
		RolesSid: []int32{0},
	})
	out = append(out, fixture.Frame("OSMData", fixture.PrimitiveBlock(st, 100, 0, 0, dense, ways, rels))...)

	return out
}

func TestRunInfo(t *testing.T) {
	info, err := runInfo(bytes.NewReader(sampleFile()), false)
	require.NoError(t, err)

	require.NotNil(t, info.BoundingBox)
	assert.InDelta(t, -0.511482, float64(info.BoundingBox.Left), 1e-6)
	assert.InDelta(t, 0.335437, float64(info.BoundingBox.Right), 1e-6)
	assert.Equal(t, "Osmium (http://wiki.openstreetmap.org/wiki/Osmium)", info.WritingProgram)

	// The non-extended path only copies entity counts into the result when
	// extended is true, so the counts stay at zero.
	assert.Equal(t, int64(0), info.NodeCount)
	assert.Equal(t, int64(0), info.WayCount)
	assert.Equal(t, int64(0), info.RelationCount)
}

func TestRunInfoExtended(t *testing.T) {
	info, err := runInfo(bytes.NewReader(sampleFile()), true)
	require.NoError(t, err)

	require.NotNil(t, info.BoundingBox)
	assert.Equal(t, "Osmium (http://wiki.openstreetmap.org/wiki/Osmium)", info.WritingProgram)

	assert.Equal(t, int64(3), info.NodeCount)
	assert.Equal(t, int64(1), info.WayCount)
	assert.Equal(t, int64(1), info.RelationCount)
}

// sampleFileNoBBox is sampleFile's header with its bounding box omitted and
// three nodes at distinct, known coordinates, so an --extended scan has
// something to synthesize a bbox from.
func sampleFileNoBBox() []byte {
	var out []byte
	out = append(out, fixture.Frame("OSMHeader", fixture.HeaderBlock(nil, "test"))...)

	st := fixture.StringTable("")
	dense := fixture.DenseNodesGroup(
		[]int64{1, 1, 1},
		[]int64{100000000, 50000000, -30000000}, // lat: 10.0, 15.0, 12.0
		[]int64{100000000, 100000000, -150000000}, // lon: 10.0, 20.0, 5.0
		nil,
	)
	out = append(out, fixture.Frame("OSMData", fixture.PrimitiveBlock(st, 100, 0, 0, dense))...)

	return out
}

// TestRunInfoExtendedSynthesizesBBox checks that an --extended scan of a
// file whose header carries no bounding box expands one from the decoded
// nodes' own coordinates instead of leaving BoundingBox nil.
func TestRunInfoExtendedSynthesizesBBox(t *testing.T) {
	info, err := runInfo(bytes.NewReader(sampleFileNoBBox()), true)
	require.NoError(t, err)

	require.NotNil(t, info.BoundingBox)
	assert.InDelta(t, 10.0, float64(info.BoundingBox.Bottom), 1e-9)
	assert.InDelta(t, 15.0, float64(info.BoundingBox.Top), 1e-9)
	assert.InDelta(t, 5.0, float64(info.BoundingBox.Left), 1e-9)
	assert.InDelta(t, 20.0, float64(info.BoundingBox.Right), 1e-9)
}

// TestRunInfoNonExtendedLeavesMissingBBoxNil checks that the non-extended
// path does not synthesize a bbox from node coordinates.
func TestRunInfoNonExtendedLeavesMissingBBoxNil(t *testing.T) {
	info, err := runInfo(bytes.NewReader(sampleFileNoBBox()), false)
	require.NoError(t, err)

	assert.Nil(t, info.BoundingBox)
}
