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

package info

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/mvt"
	"m4o.io/mvt/cmd/mvt/cli"
	"m4o.io/mvt/model"
)

func sampleLayers() []model.Layer {
	point := model.Geometry{
		Type:  model.PointGeometry,
		Parts: []model.Part{{Points: []model.Point{{X: 2048, Y: 2048}}}},
	}
	line := model.Geometry{
		Type:  model.LineStringGeometry,
		Parts: []model.Part{{Points: []model.Point{{X: 0, Y: 0}, {X: 4096, Y: 4096}}}},
	}

	return []model.Layer{
		{
			Name:   "pois",
			Keys:   []string{"name"},
			Values: []model.Value{model.StringValue("a"), model.StringValue("b")},
			Features: []model.Feature{
				{Type: model.PointGeometry, Geometry: point, Properties: []model.Property{{Key: 0, Value: 0}}},
				{Type: model.PointGeometry, Geometry: point, Properties: []model.Property{{Key: 0, Value: 1}}},
			},
		},
		{
			Name:     "roads",
			Features: []model.Feature{{Type: model.LineStringGeometry, Geometry: line}},
		},
	}
}

func sampleTiles(t *testing.T) []namedTile {
	t.Helper()

	data, err := mvt.NewEncoder(mvt.WithCompression(model.GZIP)).Encode(sampleLayers())
	require.NoError(t, err)

	return []namedTile{
		{name: "tiles/1/0/0.mvt", tile: mvt.Tile{ID: tileID("tiles/1/0/0.mvt"), Data: data}},
		{name: "broken.mvt", tile: mvt.Tile{Data: []byte{0x1a, 0x7f, 0x0a}}},
	}
}

func TestTileID(t *testing.T) {
	assert.Equal(t, model.TileID{Z: 14, X: 8190, Y: 5448}, tileID("cache/14/8190/5448.mvt"))
	assert.Equal(t, model.TileID{Z: 3, X: 2, Y: 1}, tileID("3-2-1.pbf"))
	assert.Equal(t, model.TileID{}, tileID("tile.mvt"))
	assert.Equal(t, model.TileID{}, tileID("-"))
	assert.Equal(t, model.TileID{}, tileID("1/5/5.mvt"))
}

func TestRunInfo(t *testing.T) {
	ticks := 0

	r, err := runInfo(context.Background(), sampleTiles(t), cli.DefaultConfig(), func() { ticks++ })
	require.NoError(t, err)

	assert.Equal(t, 2, ticks)
	require.Len(t, r.Tiles, 2)
	assert.Equal(t, uint64(2), r.Layers)
	assert.Equal(t, uint64(1), r.Issues["TileLevelFailure"])

	tile := r.Tiles[0]
	assert.Equal(t, "gzip", tile.Compression)
	assert.Empty(t, tile.Error)
	require.NotNil(t, tile.ID)
	assert.Equal(t, model.TileID{Z: 1, X: 0, Y: 0}, *tile.ID)

	require.NotNil(t, tile.Bounds)
	assert.InDelta(t, -180, float64(tile.Bounds.West), 1e-9)
	assert.InDelta(t, 0, float64(tile.Bounds.East), 1e-9)
	assert.InDelta(t, 0, float64(tile.Bounds.South), 1e-9)

	assert.Equal(t, []layerInfo{
		{Name: "pois", Version: 1, Extent: 4096, Features: 2, Points: 2, Keys: 1, Values: 2},
		{Name: "roads", Version: 1, Extent: 4096, Features: 1, LineStrings: 1},
	}, tile.Layers)

	broken := r.Tiles[1]
	assert.Nil(t, broken.ID)
	assert.Contains(t, broken.Error, "tile level failure")
	assert.Empty(t, broken.Layers)
}

func TestRenderJSON(t *testing.T) {
	r, err := runInfo(context.Background(), sampleTiles(t), cli.DefaultConfig(), func() {})
	require.NoError(t, err)

	// mock out to collect JSON output
	buf := new(bytes.Buffer)

	saved := out

	defer func() { out = saved }()

	out = buf

	renderJSON(r)

	var got report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Len(t, got.Tiles, 2)
	assert.Equal(t, r.Tiles[0].Layers, got.Tiles[0].Layers)
	assert.Equal(t, r.Issues, got.Issues)
}

func TestRenderText(t *testing.T) {
	r := &report{
		Tiles: []tileInfo{{
			Name:        "0.mvt",
			Size:        123000,
			Compression: "zstd",
			Layers: []layerInfo{
				{Name: "water", Version: 2, Extent: 4096, Features: 12345, Polygons: 12000, Untyped: 345, Keys: 3, Values: 1200},
			},
		}},
		Layers: 1,
		Issues: map[string]uint64{"StrayClosePath": 2, "CorruptProperties": 1500},
	}

	// mock out to collect text output
	buf := new(bytes.Buffer)

	saved := out

	defer func() { out = saved }()

	out = buf

	renderTxt(r)

	assert.Equal(t, `Tile: 0.mvt
Size: 123 kB (zstd)
Layer: water (version 2, extent 4096)
  Features: 12,345 (points 0, lines 0, polygons 12,000, untyped 345)
  Keys: 3, Values: 1,200
Tiles: 1, Layers: 1
Issue CorruptProperties: 1,500
Issue StrayClosePath: 2
`, buf.String())
}

func TestRenderTextIssueOrder(t *testing.T) {
	r := &report{
		Issues: map[string]uint64{"DroppedPart": 4, "TruncatedInput": 1, "MalformedGeometry": 0},
	}

	buf := new(bytes.Buffer)

	saved := out

	defer func() { out = saved }()

	out = buf

	renderTxt(r)

	assert.Equal(t, `Tiles: 0, Layers: 0
Issue TruncatedInput: 1
Issue DroppedPart: 4
`, buf.String())
}
