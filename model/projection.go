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
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

// Epsilon is an enumeration of precisions that can be used when comparing Degrees.
type Epsilon float64

const (
	E5 Epsilon = 1e-5
	E6 Epsilon = 1e-6
	E7 Epsilon = 1e-7
	E8 Epsilon = 1e-8
	E9 Epsilon = 1e-9

	half = 0.5
)

// DegreesOf converts an s1.Angle to Degrees.
func DegreesOf(a s1.Angle) Degrees {
	return Degrees(a.Degrees())
}

// Angle returns the equivalent s1.Angle.
func (d Degrees) Angle() s1.Angle { return s1.Angle(float64(d)) * s1.Degree }

// EqualWithin checks if two degrees are within a specific epsilon.
func (d Degrees) EqualWithin(o Degrees, eps Epsilon) bool {
	return round(float64(d)/float64(eps))-round(float64(o)/float64(eps)) == 0
}

func (d Degrees) String() string {
	return ftoa(float64(d))
}

// round returns the value rounded to nearest.
func round(val float64) int64 {
	if val < 0 {
		return int64(val - half)
	}

	return int64(val + half)
}

// TileID addresses a tile in the XYZ scheme used by web maps.
type TileID struct {
	Z uint32 `json:"z"`
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
}

// ParseTileID parses the "z/x/y" form produced by TileID.String.
func ParseTileID(s string) (TileID, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return TileID{}, fmt.Errorf("tile id %q must have the form z/x/y", s)
	}

	var zxy [3]uint32

	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return TileID{}, fmt.Errorf("invalid tile id component %q: %w", p, err)
		}

		zxy[i] = uint32(v)
	}

	t := TileID{Z: zxy[0], X: zxy[1], Y: zxy[2]}
	if !t.Valid() {
		return TileID{}, fmt.Errorf("tile id %s out of range", t)
	}

	return t, nil
}

// Valid reports whether X and Y lie within the zoom level.
func (t TileID) Valid() bool {
	return t.Z < 32 && t.X < (1<<t.Z) && t.Y < (1<<t.Z)
}

func (t TileID) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// LatLng projects a tile-local point onto WGS84 using spherical mercator.
// An extent of zero means DefaultExtent.
func (t TileID) LatLng(p Point, extent uint32) s2.LatLng {
	e := float64(extent)
	if e == 0 {
		e = DefaultExtent
	}

	n := math.Exp2(float64(t.Z))
	gx := (float64(t.X) + float64(p.X)/e) / n
	gy := (float64(t.Y) + float64(p.Y)/e) / n

	lng := gx*360 - 180
	lat := math.Atan(math.Sinh(math.Pi*(1-2*gy))) * 180 / math.Pi

	return s2.LatLngFromDegrees(lat, lng)
}

// Bounds returns the geographic area covered by the tile.
func (t TileID) Bounds() *BoundingBox {
	bbox := InitialBoundingBox()
	bbox.ExpandWithLatLng(t.LatLng(Point{}, DefaultExtent))
	bbox.ExpandWithLatLng(t.LatLng(Point{X: DefaultExtent, Y: DefaultExtent}, DefaultExtent))

	return bbox
}

// GeometryBounds returns the geographic extent of g, or nil if g is empty.
func (t TileID) GeometryBounds(g Geometry, extent uint32) *BoundingBox {
	if g.IsEmpty() {
		return nil
	}

	bbox := InitialBoundingBox()

	for _, part := range g.Parts {
		for _, p := range part.Points {
			bbox.ExpandWithLatLng(t.LatLng(p, extent))
		}
	}

	return bbox
}
