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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/destel/rill"
	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/mvt"
	"m4o.io/mvt/cmd/mvt/cli"
	"m4o.io/mvt/model"
)

var out io.Writer = os.Stdout

type layerInfo struct {
	Name        string `json:"name"`
	Version     uint32 `json:"version"`
	Extent      uint32 `json:"extent"`
	Features    int    `json:"features"`
	Points      int    `json:"points"`
	LineStrings int    `json:"linestrings"`
	Polygons    int    `json:"polygons"`
	Untyped     int    `json:"untyped"`
	Keys        int    `json:"keys"`
	Values      int    `json:"values"`
}

type tileInfo struct {
	Name        string             `json:"name"`
	ID          *model.TileID      `json:"id,omitempty"`
	Size        int                `json:"size"`
	Compression string             `json:"compression"`
	Bounds      *model.BoundingBox `json:"bounds,omitempty"`
	Layers      []layerInfo        `json:"layers"`
	Error       string             `json:"error,omitempty"`
}

type report struct {
	Tiles  []tileInfo        `json:"tiles"`
	Layers uint64            `json:"layers"`
	Issues map[string]uint64 `json:"issues"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.Uint16P("cpu", "c", mvt.DefaultNCpu(), "number of CPUs to use for decoding")
	flags.Bool("multipoint", true, "allow a point MoveTo to carry several points")
	flags.Bool("unpack", true, "decompress compressed tiles")
	flags.BoolP("progress", "p", false, "show progress while decoding many tiles")
}

var infoCmd = &cobra.Command{
	Use:   "info [<tile file>...]",
	Short: "Print information about vector tiles",
	Long: "Print information about vector tiles. Files named z/x/y.mvt or z-x-y.mvt " +
		"are located on the map; standard input is read when no file is given.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := cli.ResolveConfig(cmd)
		if err != nil {
			log.Fatal(err)
		}

		if len(args) == 0 {
			args = []string{"-"}
		}

		var (
			tiles  []namedTile
			inputs []*cli.Input
		)

		for _, name := range args {
			in, err := cli.Open(name)
			if err != nil {
				log.Fatal(err)
			}

			inputs = append(inputs, in)
			tiles = append(tiles, namedTile{name: name, tile: mvt.Tile{ID: tileID(name), Data: in.Data}})
		}

		flags := cmd.Flags()

		progress, err := flags.GetBool("progress")
		if err != nil {
			log.Fatal(err)
		}

		bar := cli.NewProgress(len(tiles), progress)

		r, err := runInfo(cmd.Context(), tiles, cfg, bar.Increment)
		bar.Finish()

		if err != nil {
			log.Fatal(err)
		}

		for _, in := range inputs {
			if err := in.Close(); err != nil {
				log.Fatal(err)
			}
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(r)
		} else {
			renderTxt(r)
		}
	},
}

type namedTile struct {
	name string
	tile mvt.Tile
}

// tileID derives the tile address from paths ending in z/x/y or z-x-y.
func tileID(name string) model.TileID {
	name = filepath.ToSlash(strings.TrimSuffix(name, filepath.Ext(name)))

	parts := strings.Split(name, "/")
	if len(parts) >= 3 {
		if id, err := model.ParseTileID(strings.Join(parts[len(parts)-3:], "/")); err == nil {
			return id
		}
	}

	if id, err := model.ParseTileID(strings.ReplaceAll(parts[len(parts)-1], "-", "/")); err == nil {
		return id
	}

	return model.TileID{}
}

func runInfo(ctx context.Context, tiles []namedTile, cfg cli.Config, tick func()) (*report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	d := mvt.NewDecoder(cfg.DecoderOptions(cfg.Logger())...)

	in := make([]mvt.Tile, len(tiles))
	for i, t := range tiles {
		in[i] = t.tile
	}

	r := &report{}

	i := 0
	err := rill.ForEach(d.DecodeStream(ctx, rill.FromSlice(in, nil)), 1, func(res mvt.Result) error {
		r.Tiles = append(r.Tiles, describeTile(tiles[i], res))
		i++

		tick()

		return nil
	})
	if err != nil {
		return nil, err
	}

	stats := d.Stats()
	r.Layers = stats.Layers
	r.Issues = stats.Issues()

	return r, nil
}

func describeTile(t namedTile, res mvt.Result) tileInfo {
	ti := tileInfo{
		Name:        t.name,
		Size:        len(t.tile.Data),
		Compression: res.Compression.String(),
	}

	if res.Err != nil {
		ti.Error = res.Err.Error()
	}

	located := t.tile.ID != model.TileID{}
	if located {
		id := t.tile.ID
		ti.ID = &id
	}

	for i := range res.Layers {
		l := &res.Layers[i]
		counts := l.CountByType()

		ti.Layers = append(ti.Layers, layerInfo{
			Name:        l.Name,
			Version:     l.Version,
			Extent:      l.Extent,
			Features:    len(l.Features),
			Points:      counts[model.PointGeometry],
			LineStrings: counts[model.LineStringGeometry],
			Polygons:    counts[model.PolygonGeometry],
			Untyped:     counts[model.Unknown],
			Keys:        len(l.Keys),
			Values:      len(l.Values),
		})

		if !located {
			continue
		}

		for j := range l.Features {
			b := t.tile.ID.GeometryBounds(l.Features[j].Geometry, l.Extent)
			if b == nil {
				continue
			}

			if ti.Bounds == nil {
				ti.Bounds = b
			} else {
				ti.Bounds.ExpandWithBoundingBox(b)
			}
		}
	}

	return ti
}

func renderJSON(r *report) {
	b, err := json.Marshal(r)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprint(out, string(b))
}

func renderTxt(r *report) {
	for _, t := range r.Tiles {
		fmt.Fprintf(out, "Tile: %s\n", t.Name)

		if t.ID != nil {
			fmt.Fprintf(out, "ID: %s\n", t.ID)
		}

		fmt.Fprintf(out, "Size: %s (%s)\n", humanize.Bytes(uint64(t.Size)), t.Compression)

		if t.Bounds != nil {
			fmt.Fprintf(out, "Bounds: %s\n", t.Bounds)
		}

		if t.Error != "" {
			fmt.Fprintf(out, "Error: %s\n", t.Error)
		}

		for _, l := range t.Layers {
			fmt.Fprintf(out, "Layer: %s (version %d, extent %d)\n", l.Name, l.Version, l.Extent)
			fmt.Fprintf(out, "  Features: %s (points %s, lines %s, polygons %s, untyped %s)\n",
				humanize.Comma(int64(l.Features)), humanize.Comma(int64(l.Points)),
				humanize.Comma(int64(l.LineStrings)), humanize.Comma(int64(l.Polygons)),
				humanize.Comma(int64(l.Untyped)))
			fmt.Fprintf(out, "  Keys: %s, Values: %s\n", humanize.Comma(int64(l.Keys)), humanize.Comma(int64(l.Values)))
		}
	}

	fmt.Fprintf(out, "Tiles: %s, Layers: %s\n",
		humanize.Comma(int64(len(r.Tiles))), humanize.Comma(int64(r.Layers)))

	for _, k := range model.IssueKinds() {
		if n := r.Issues[k.String()]; n > 0 {
			fmt.Fprintf(out, "Issue %s: %s\n", k, humanize.Comma(int64(n)))
		}
	}
}
