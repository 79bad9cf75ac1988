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
)

func TestTagFilterApply(t *testing.T) {
	tags := map[string]string{"highway": "residential", "name": "Elm"}

	assert.Equal(t, tags, AllTags().apply(tags))
	assert.Nil(t, NoTags().apply(tags))
	assert.Equal(t, map[string]string{"highway": "residential"}, OnlyTags([]string{"highway"}).apply(tags))
	assert.Nil(t, OnlyTags(nil).apply(tags))
	assert.Nil(t, AllTags().apply(nil))
}

func TestWithTagsConfigBool(t *testing.T) {
	o, err := NewOptions(WithTagsConfig(true))
	require.NoError(t, err)
	assert.Equal(t, filterAll, o.Tags.Node.kind)

	o, err = NewOptions(WithTagsConfig(false))
	require.NoError(t, err)
	assert.Equal(t, filterNone, o.Tags.Node.kind)
}

func TestWithTagsConfigPerEntity(t *testing.T) {
	o, err := NewOptions(WithTagsConfig(map[string]any{
		"node": []string{"highway"},
		"way":  false,
	}))
	require.NoError(t, err)

	assert.Equal(t, filterOnly, o.Tags.Node.kind)
	assert.Equal(t, filterNone, o.Tags.Way.kind)
	assert.Equal(t, filterAll, o.Tags.Relation.kind) // missing key defaults to true
}

func TestWithTagsConfigRejectsGarbage(t *testing.T) {
	_, err := NewOptions(WithTagsConfig(42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))

	_, err = NewOptions(WithTagsConfig(map[string]any{"node": 42}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestWithBufferSizeRejectsNonPositive(t *testing.T) {
	_, err := NewOptions(WithBufferSize(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))

	_, err = NewOptions(WithBufferSize(-1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestDefaultOptions(t *testing.T) {
	o, err := NewOptions()
	require.NoError(t, err)

	assert.Equal(t, filterAll, o.Tags.Node.kind)
	assert.False(t, o.Info)
	assert.False(t, o.WriteRaw)
	assert.Equal(t, defaultBufferSize, o.BufferSize)
}
