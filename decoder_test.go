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

package mvt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/mvt/model"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func roads(n int) model.Layer {
	l := model.Layer{
		Name:    "roads",
		Version: 2,
		Extent:  model.DefaultExtent,
		Keys:    []string{"kind", "lanes"},
		Values:  []model.Value{model.StringValue("major"), model.UintValue(2)},
	}

	for i := range n {
		l.Features = append(l.Features, model.Feature{
			ID:         uint64(i + 1),
			HasID:      true,
			Type:       model.LineStringGeometry,
			Properties: []model.Property{{Key: 0, Value: 0}, {Key: 1, Value: 1}},
			Geometry: model.Geometry{
				Type: model.LineStringGeometry,
				Parts: []model.Part{{Points: []model.Point{
					{X: int32(i), Y: 0}, {X: int32(i), Y: 100}, {X: int32(i) + 50, Y: 100},
				}}},
			},
		})
	}

	return l
}

func encode(t testing.TB, c model.Compression, layers ...model.Layer) []byte {
	t.Helper()

	b, err := NewEncoder(WithCompression(c)).Encode(layers)
	require.NoError(t, err)

	return b
}

func TestDecode(t *testing.T) {
	layers := []model.Layer{roads(3)}

	for _, c := range []model.Compression{model.RAW, model.GZIP, model.ZLIB, model.ZSTD, model.LZ4, model.XZ} {
		t.Run(c.String(), func(t *testing.T) {
			d := NewDecoder(WithLogger(quiet))

			got, err := d.Decode(encode(t, c, layers...))
			require.NoError(t, err)
			assert.Equal(t, layers, got)

			stats := d.Stats()
			assert.Equal(t, uint64(1), stats.Tiles)
			assert.Equal(t, uint64(1), stats.Layers)
			assert.Zero(t, stats.Total())
		})
	}
}

func TestDecodeWithoutUnpack(t *testing.T) {
	d := NewDecoder(WithLogger(quiet), WithUnpack(false))

	_, err := d.Decode(encode(t, model.RAW, roads(1)))
	require.NoError(t, err)

	_, err = d.Decode(encode(t, model.GZIP, roads(1)))
	assert.ErrorIs(t, err, ErrTileLevelFailure)
}

func TestDecodeCorruptCompression(t *testing.T) {
	d := NewDecoder(WithLogger(quiet))

	b := encode(t, model.ZSTD, roads(5))

	_, err := d.Decode(b[:len(b)/2])
	assert.ErrorIs(t, err, ErrTileLevelFailure)
	assert.ErrorIs(t, err, ErrUnpack)

	stats := d.Stats()
	assert.Equal(t, uint64(1), stats.Tiles)
	assert.Equal(t, uint64(1), stats.Count(model.TileLevelFailure))
}

func TestDecodeTruncated(t *testing.T) {
	d := NewDecoder(WithLogger(quiet))

	first := encode(t, model.RAW, roads(1))
	b := encode(t, model.RAW, roads(1), roads(4))

	got, err := d.Decode(b[:len(first)+8])
	require.ErrorIs(t, err, ErrTileLevelFailure)
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.Len(t, got, 1)
}

func TestDecodeSinglePoint(t *testing.T) {
	l := model.Layer{
		Name: "pois",
		Features: []model.Feature{{
			Type: model.PointGeometry,
			Geometry: model.Geometry{
				Type:  model.PointGeometry,
				Parts: []model.Part{{Points: []model.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}}},
			},
		}},
	}

	d := NewDecoder(WithLogger(quiet), WithMultiPoint(false))

	got, err := d.Decode(encode(t, model.RAW, l))
	require.NoError(t, err)
	require.Len(t, got[0].Features, 1)
	assert.True(t, got[0].Features[0].Geometry.IsEmpty())
	st := d.Stats()
	assert.Equal(t, uint64(1), st.Count(model.MalformedGeometry))
}

func TestDecodeDefaultGeometryType(t *testing.T) {
	l := roads(1)
	l.Features[0].Type = model.Unknown

	d := NewDecoder(WithLogger(quiet), WithDefaultGeometryType(model.LineStringGeometry))

	got, err := d.Decode(encode(t, model.RAW, l))
	require.NoError(t, err)
	assert.Equal(t, model.LineStringGeometry, got[0].Features[0].Type)
	assert.Equal(t, model.LineStringGeometry, got[0].Features[0].Geometry.Type)
}

func tiles(t testing.TB, n int) []Tile {
	t.Helper()

	out := make([]Tile, n)
	for i := range out {
		out[i] = Tile{
			ID:   model.TileID{Z: 14, X: uint32(i), Y: 7},
			Data: encode(t, model.GZIP, roads(i%7+1)),
		}
	}

	return out
}

func TestDecodeAll(t *testing.T) {
	in := tiles(t, 40)
	in[13].Data = []byte{0xff}

	d := NewDecoder(WithLogger(quiet), WithNCpus(4))

	results, err := d.DecodeAll(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, results, len(in))

	for i, r := range results {
		assert.Equal(t, in[i].ID, r.ID)

		if i == 13 {
			assert.ErrorIs(t, r.Err, ErrTileLevelFailure, fmt.Sprint(i))

			continue
		}

		require.NoError(t, r.Err)
		assert.Equal(t, model.GZIP, r.Compression)
		require.Len(t, r.Layers, 1)
		assert.Len(t, r.Layers[0].Features, i%7+1)
	}

	stats := d.Stats()
	assert.Equal(t, uint64(40), stats.Tiles)
	assert.Equal(t, uint64(39), stats.Layers)
	assert.Equal(t, uint64(1), stats.Count(model.TileLevelFailure))
}

func TestDecodeAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDecoder(WithLogger(quiet))

	_, err := d.DecodeAll(ctx, tiles(t, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithNCpus(t *testing.T) {
	d := NewDecoder(WithNCpus(0))
	assert.Equal(t, uint16(1), d.cfg.nCPU)
}
