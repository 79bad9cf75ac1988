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

package osmpbf

import (
	"github.com/kvelaren/osmpbf/internal/decoder"
	"github.com/kvelaren/osmpbf/model"
)

// Entity is the common shape shared by Header, Node, Way, and Relation: an
// emitted item's identity, its tags, and its optional metadata.
type Entity = model.Entity

// ID is the primary key of a Node, Way, or Relation.
type ID = model.ID

// UID is the primary key of a user referenced from Info.
type UID = model.UID

// Header carries the bounding box and replication metadata of an OSM PBF
// file; it is always the first entity a Decoder or Open emits.
type Header = model.Header

// BoundingBox is a rectangular region expressed in decimal degrees.
type BoundingBox = model.BoundingBox

// Degrees is a decimal-degree latitude or longitude.
type Degrees = model.Degrees

// Node is a point on the earth's surface.
type Node = model.Node

// Way is an ordered sequence of node references describing a polyline.
type Way = model.Way

// Relation documents a relationship between two or more entities.
type Relation = model.Relation

// Member is one entity referenced by a Relation.
type Member = model.Member

// EntityType enumerates the kinds of entity a Member can reference.
type EntityType = model.EntityType

const (
	NODE     = model.NODE
	WAY      = model.WAY
	RELATION = model.RELATION
)

// Info carries a Node, Way, or Relation's optional version/author metadata.
type Info = model.Info

// Batch is one emitted unit: the header's single-element batch, the
// entities reconstructed from one OSMData blob, or — in raw-passthrough
// mode — the stored data bytes of one OSMData blob (still-compressed
// zlib_data, or raw bytes for an uncompressed blob).
type Batch = decoder.Batch
