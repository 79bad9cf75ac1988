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
	"time"

	"github.com/kvelaren/osmpbf/internal/core"
	"github.com/kvelaren/osmpbf/internal/pb"
	"github.com/kvelaren/osmpbf/model"
)

// decodeHeaderBlob inflates and decodes the one OSMHeader blob a file
// carries into the public model.Header shape.
func decodeHeaderBlob(blob *pb.Blob) (model.Header, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	unpacked, err := unpack(buf, blob)
	if err != nil {
		return model.Header{}, fmt.Errorf("unable to unpack header blob: %w", err)
	}

	hb, err := pb.DecodeHeaderBlock(unpacked)
	if err != nil {
		return model.Header{}, fmt.Errorf("unable to decode header block: %w", err)
	}

	h := model.Header{
		RequiredFeatures: hb.RequiredFeatures,
		OptionalFeatures: hb.OptionalFeatures,
		WritingProgram:   hb.Writingprogram,
		Source:           hb.Source,
		OsmosisReplicationBaseURL: hb.OsmosisReplicationBaseUrl,
	}

	if hb.Bbox != nil {
		h.BoundingBox = &model.BoundingBox{
			Left:   model.Degrees(hb.Bbox.Left) * 1e-9,
			Right:  model.Degrees(hb.Bbox.Right) * 1e-9,
			Top:    model.Degrees(hb.Bbox.Top) * 1e-9,
			Bottom: model.Degrees(hb.Bbox.Bottom) * 1e-9,
		}
	}

	if hb.OsmosisReplicationTimestamp != nil {
		h.OsmosisReplicationTimestamp = time.Unix(*hb.OsmosisReplicationTimestamp, 0).UTC()
	}

	if hb.OsmosisReplicationSequenceNumber != nil {
		h.OsmosisReplicationSequenceNumber = *hb.OsmosisReplicationSequenceNumber
	}

	return h, nil
}
