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

package model

import (
	"fmt"

	"github.com/golang/geo/s2"
)

const (
	MaxLat Degrees = 90.0
	MaxLon Degrees = 180.0
	MinLat Degrees = -90.0
	MinLon Degrees = -180.0
)

// BoundingBox is a geographic rectangle.
type BoundingBox struct {
	West  Degrees `json:"west"`
	South Degrees `json:"south"`
	East  Degrees `json:"east"`
	North Degrees `json:"north"`
}

// InitialBoundingBox creates an inverted BoundingBox that is meant to be
// expanded.
func InitialBoundingBox() *BoundingBox {
	return &BoundingBox{
		West:  MaxLon,
		South: MaxLat,
		East:  MinLon,
		North: MinLat,
	}
}

// EqualWithin checks if two bounding boxes are within a specific epsilon.
func (b *BoundingBox) EqualWithin(o *BoundingBox, eps Epsilon) bool {
	return b.West.EqualWithin(o.West, eps) &&
		b.South.EqualWithin(o.South, eps) &&
		b.East.EqualWithin(o.East, eps) &&
		b.North.EqualWithin(o.North, eps)
}

// Contains checks if the bounding box contains ll.
func (b *BoundingBox) Contains(ll s2.LatLng) bool {
	lat, lng := DegreesOf(ll.Lat), DegreesOf(ll.Lng)

	return b.West <= lng && lng <= b.East && b.South <= lat && lat <= b.North
}

// ExpandWithLatLng grows the bounding box to include ll.
func (b *BoundingBox) ExpandWithLatLng(ll s2.LatLng) {
	lat, lng := DegreesOf(ll.Lat), DegreesOf(ll.Lng)

	b.North = max(b.North, lat)
	b.South = min(b.South, lat)
	b.West = min(b.West, lng)
	b.East = max(b.East, lng)
}

// ExpandWithBoundingBox grows the bounding box to include o.
func (b *BoundingBox) ExpandWithBoundingBox(o *BoundingBox) {
	b.North = max(b.North, o.North)
	b.South = min(b.South, o.South)
	b.West = min(b.West, o.West)
	b.East = max(b.East, o.East)
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("[%s, %s, %s, %s]", b.West, b.South, b.East, b.North)
}
