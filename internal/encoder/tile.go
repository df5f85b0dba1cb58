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

// Package encoder writes model layers as vector tile bytes. It is the
// inverse of the decoder and is used to produce and re-compress tiles.
package encoder

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/mvt/internal/wire"
	"m4o.io/mvt/model"
)

const (
	tileLayers protowire.Number = 3

	layerName     protowire.Number = 1
	layerFeatures protowire.Number = 2
	layerKeys     protowire.Number = 3
	layerValues   protowire.Number = 4
	layerExtent   protowire.Number = 5
	layerVersion  protowire.Number = 15

	featureID       protowire.Number = 1
	featureTags     protowire.Number = 2
	featureType     protowire.Number = 3
	featureGeometry protowire.Number = 4

	valueString protowire.Number = 1
	valueDouble protowire.Number = 3
	valueUint   protowire.Number = 5
	valueSint   protowire.Number = 6
	valueBool   protowire.Number = 7

	cmdMoveTo    = 1
	cmdLineTo    = 2
	cmdClosePath = 7
)

// EncodeTile encodes layers as a tile message.
func EncodeTile(layers []model.Layer) ([]byte, error) {
	var b []byte

	for i := range layers {
		lb, err := EncodeLayer(&layers[i])
		if err != nil {
			return nil, fmt.Errorf("could not encode layer %q: %w", layers[i].Name, err)
		}

		b = protowire.AppendTag(b, tileLayers, protowire.BytesType)
		b = protowire.AppendBytes(b, lb)
	}

	return b, nil
}

// EncodeLayer encodes a single layer message. Keys and values are
// deduplicated again, so layers assembled by hand need not be.
func EncodeLayer(l *model.Layer) ([]byte, error) {
	keys := NewTable[string]()
	values := NewTable[model.Value]()

	var (
		b    []byte
		fb   []byte
		tags []uint32
		geom []uint32
	)

	b = protowire.AppendTag(b, layerVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(max(l.Version, model.DefaultVersion)))

	if l.Name != "" {
		b = protowire.AppendTag(b, layerName, protowire.BytesType)
		b = protowire.AppendString(b, l.Name)
	}

	for i := range l.Features {
		f := &l.Features[i]

		tags = tags[:0]
		for _, p := range f.Properties {
			if int(p.Key) >= len(l.Keys) || int(p.Value) >= len(l.Values) {
				return nil, fmt.Errorf("feature %d: property %v out of range", i, p)
			}

			if !l.Values[p.Value].Valid() {
				return nil, fmt.Errorf("feature %d: property %v has an invalid value", i, p)
			}

			tags = append(tags, keys.Add(l.Keys[p.Key]), values.Add(l.Values[p.Value]))
		}

		geom = EncodeGeometry(geom[:0], f.Geometry)

		fb = fb[:0]
		if f.HasID {
			fb = protowire.AppendTag(fb, featureID, protowire.VarintType)
			fb = protowire.AppendVarint(fb, f.ID)
		}

		fb = appendPacked(fb, featureTags, tags)

		if f.Type != model.Unknown {
			fb = protowire.AppendTag(fb, featureType, protowire.VarintType)
			fb = protowire.AppendVarint(fb, uint64(f.Type))
		}

		fb = appendPacked(fb, featureGeometry, geom)

		b = protowire.AppendTag(b, layerFeatures, protowire.BytesType)
		b = protowire.AppendBytes(b, fb)
	}

	for _, k := range keys.AsArray() {
		b = protowire.AppendTag(b, layerKeys, protowire.BytesType)
		b = protowire.AppendString(b, k)
	}

	for _, v := range values.AsArray() {
		b = protowire.AppendTag(b, layerValues, protowire.BytesType)
		b = protowire.AppendBytes(b, AppendValue(nil, v))
	}

	extent := l.Extent
	if extent == 0 {
		extent = model.DefaultExtent
	}

	b = protowire.AppendTag(b, layerExtent, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(extent))

	return b, nil
}

// AppendValue appends the fields of a value message for v. Signed integers
// are written zigzag encoded and floats as doubles.
func AppendValue(b []byte, v model.Value) []byte {
	switch v.Kind() {
	case model.KindString:
		s, _ := v.AsString()
		b = protowire.AppendTag(b, valueString, protowire.BytesType)
		b = protowire.AppendString(b, s)
	case model.KindFloat:
		f, _ := v.AsFloat()
		b = protowire.AppendTag(b, valueDouble, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(f))
	case model.KindInt:
		i, _ := v.AsInt()
		b = protowire.AppendTag(b, valueSint, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(i))
	case model.KindUint:
		u, _ := v.AsUint()
		b = protowire.AppendTag(b, valueUint, protowire.VarintType)
		b = protowire.AppendVarint(b, u)
	case model.KindBool:
		t, _ := v.AsBool()
		b = protowire.AppendTag(b, valueBool, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(t))
	}

	return b
}

// EncodeGeometry appends the command stream of g to dst. Each part becomes
// a MoveTo followed by a single LineTo covering the remaining points, and a
// ClosePath for closed parts. A point geometry is written as one MoveTo
// carrying every point.
func EncodeGeometry(dst []uint32, g model.Geometry) []uint32 {
	var cursor model.Point

	for _, part := range g.Parts {
		pts := part.Points
		if len(pts) == 0 {
			continue
		}

		if g.Type == model.PointGeometry {
			dst = append(dst, Command(cmdMoveTo, len(pts)))
			dst = appendDeltas(dst, pts, &cursor)

			continue
		}

		dst = append(dst, Command(cmdMoveTo, 1))
		dst = appendDeltas(dst, pts[:1], &cursor)

		if len(pts) > 1 {
			dst = append(dst, Command(cmdLineTo, len(pts)-1))
			dst = appendDeltas(dst, pts[1:], &cursor)
		}

		if part.Closed {
			dst = append(dst, Command(cmdClosePath, 1))
		}
	}

	return dst
}

// Command packs an operation and its repeat count into a command integer.
func Command(op, count int) uint32 {
	return uint32(op&0x7) | uint32(count)<<3
}

func appendDeltas(dst []uint32, pts []model.Point, cursor *model.Point) []uint32 {
	for _, p := range pts {
		dst = append(dst, wire.Zigzag32(p.X-cursor.X), wire.Zigzag32(p.Y-cursor.Y))
		*cursor = p
	}

	return dst
}

// appendPacked appends vs as a packed repeated field. Nothing is written
// for an empty slice.
func appendPacked[T constraints.Unsigned](b []byte, num protowire.Number, vs []T) []byte {
	if len(vs) == 0 {
		return b
	}

	size := 0
	for _, v := range vs {
		size += protowire.SizeVarint(uint64(v))
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(size))

	for _, v := range vs {
		b = protowire.AppendVarint(b, uint64(v))
	}

	return b
}
