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

// Package model contains the decoded representation of vector tiles: layers,
// features, geometry and property values.
package model

// Point is a coordinate in tile-local space, before normalization by the
// layer extent.
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// GeometryType is the declared geometry of a feature.
type GeometryType uint8

const (
	// Unknown is the geometry type of features that do not declare one.
	Unknown GeometryType = iota

	// PointGeometry denotes one or more points.
	PointGeometry

	// LineStringGeometry denotes one or more line strings.
	LineStringGeometry

	// PolygonGeometry denotes one or more rings.
	PolygonGeometry
)

var geometryTypeNames = [...]string{
	Unknown:            "Unknown",
	PointGeometry:      "Point",
	LineStringGeometry: "LineString",
	PolygonGeometry:    "Polygon",
}

func (t GeometryType) String() string {
	if int(t) < len(geometryTypeNames) {
		return geometryTypeNames[t]
	}

	return "GeometryType(" + itoa(int64(t)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (t GeometryType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Part is a single point sequence of a geometry: the points of a
// multipoint, one line of a line string, or one ring of a polygon.
type Part struct {
	Points []Point `json:"points"`

	// Closed is set when the part was terminated by ClosePath; the last
	// point implicitly connects to the first.
	Closed bool `json:"closed,omitempty"`
}

// Geometry is the ordered list of parts of a feature. A Geometry without
// parts is legal and describes a feature with nothing to draw.
type Geometry struct {
	Type  GeometryType `json:"type"`
	Parts []Part       `json:"parts,omitempty"`
}

// IsEmpty reports whether the geometry has no parts.
func (g Geometry) IsEmpty() bool {
	return len(g.Parts) == 0
}

// NumPoints returns the number of points across all parts.
func (g Geometry) NumPoints() int {
	var n int
	for _, p := range g.Parts {
		n += len(p.Points)
	}

	return n
}
