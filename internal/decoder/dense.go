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
	"fmt"

	"github.com/kvelaren/osmpbf/internal/pb"
	"github.com/kvelaren/osmpbf/model"
)

// denseTagsContext walks the flat keys_vals array shared by all nodes in a
// DenseNodes group, peeling off one node's worth of (key, value) pairs per
// call to next, terminated by the 0 sentinel between nodes.
type denseTagsContext struct {
	strings [][]byte
	keyVals []int32
	i       int
}

func newDenseTagsContext(strings [][]byte, keyVals []int32) *denseTagsContext {
	return &denseTagsContext{strings: strings, keyVals: keyVals}
}

func (c *denseTagsContext) str(idx int32) string {
	if idx < 0 || int(idx) >= len(c.strings) {
		return ""
	}

	return string(c.strings[idx])
}

func (c *denseTagsContext) next() (map[string]string, error) {
	if len(c.keyVals) == 0 {
		return nil, nil
	}

	var tags map[string]string

	i := c.i

	for i < len(c.keyVals) && c.keyVals[i] != 0 {
		if i+1 >= len(c.keyVals) {
			return nil, fmt.Errorf("%w: dense keys_vals truncated mid-pair", ErrParallelArrayMismatch)
		}

		if tags == nil {
			tags = make(map[string]string)
		}

		tags[c.str(c.keyVals[i])] = c.str(c.keyVals[i+1])
		i += 2
	}

	c.i = i + 1

	return tags, nil
}

// denseInfoContext assembles a *model.Info per element of a DenseInfo,
// per §4.3's dense rules. pb.decodeDenseInfo has already reversed the
// delta encoding of Timestamp/Changeset/Uid/UserSid into cumulative
// values, so this context only indexes into them — it does not
// re-accumulate. When di is nil, every call to next returns nil.
type denseInfoContext struct {
	strings  [][]byte
	di       *pb.DenseInfo
	dateGran int32
}

func newDenseInfoContext(dateGran int32, strings [][]byte, di *pb.DenseInfo, n int) *denseInfoContext {
	return &denseInfoContext{strings: strings, di: di, dateGran: dateGran}
}

func (c *denseInfoContext) str(idx int32) string {
	if idx < 0 || int(idx) >= len(c.strings) {
		return ""
	}

	return string(c.strings[idx])
}

func (c *denseInfoContext) next(i int) (*model.Info, error) {
	if c.di == nil {
		return nil, nil
	}

	di := c.di

	if len(di.Timestamp) <= i || len(di.Changeset) <= i || len(di.Uid) <= i || len(di.UserSid) <= i {
		return nil, fmt.Errorf("%w: dense info arrays", ErrParallelArrayMismatch)
	}

	info := &model.Info{
		Timestamp: di.Timestamp[i] * int64(c.dateGran),
		Changeset: di.Changeset[i],
		UID:       model.UID(di.Uid[i]),
		User:      c.str(di.UserSid[i]),
	}

	if i < len(di.Version) {
		info.Version = di.Version[i]
	}

	if di.Visible != nil {
		if i >= len(di.Visible) {
			return nil, fmt.Errorf("%w: dense info visible array", ErrParallelArrayMismatch)
		}

		if !di.Visible[i] {
			f := false
			info.Visible = &f
		}
	}

	return info, nil
}
