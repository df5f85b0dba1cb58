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

package convert

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/mvt"
	"m4o.io/mvt/cmd/mvt/cli"
	"m4o.io/mvt/model"
)

var (
	compression model.Compression
	status      io.Writer = os.Stderr
)

func init() {
	cli.RootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.VarP(cli.NewCompressionValue(model.GZIP, &compression), "compression", "z",
		"compression of the written tile (raw, gzip, zlib, zstd, lz4, xz)")
	flags.Bool("multipoint", true, "allow a point MoveTo to carry several points")
	flags.Bool("strict", false, "fail when the input tile is only partially decoded")
}

var convertCmd = &cobra.Command{
	Use:   "convert <input tile> <output tile>",
	Short: "Decode a vector tile and write it again",
	Long: "Decode a vector tile and write it again with the requested compression. " +
		"Use - for standard input or output.",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := cli.ResolveConfig(cmd)
		if err != nil {
			log.Fatal(err)
		}

		strict, err := cmd.Flags().GetBool("strict")
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}

		var w io.Writer = os.Stdout

		if args[1] != "-" {
			f, err := os.Create(args[1])
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()

			w = f
		}

		res, err := runConvert(in.Data, w, cfg, strict)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		fmt.Fprintf(status, "%s (%s) -> %s (%s), %s layers, %s features\n",
			humanize.Bytes(uint64(res.inSize)), res.from,
			humanize.Bytes(uint64(res.outSize)), res.to,
			humanize.Comma(int64(res.layers)), humanize.Comma(int64(res.features)))
	},
}

type result struct {
	from, to        model.Compression
	inSize, outSize int
	layers          int
	features        int
}

func runConvert(data []byte, w io.Writer, cfg cli.Config, strict bool) (*result, error) {
	logger := cfg.Logger()
	d := mvt.NewDecoder(cfg.DecoderOptions(logger)...)

	decoded, err := d.DecodeAll(context.Background(), []mvt.Tile{{Data: data}})
	if err != nil {
		return nil, err
	}

	tile := decoded[0]
	if tile.Err != nil {
		if strict {
			return nil, tile.Err
		}

		logger.Warn("writing partially decoded tile", "error", tile.Err)
	}

	e := mvt.NewEncoder(mvt.WithCompression(cfg.Codec()))

	n, err := e.EncodeTo(w, tile.Layers)
	if err != nil {
		return nil, fmt.Errorf("could not write tile: %w", err)
	}

	r := &result{
		from:    tile.Compression,
		to:      e.Compression(),
		inSize:  len(data),
		outSize: n,
		layers:  len(tile.Layers),
	}

	for _, l := range tile.Layers {
		r.features += len(l.Features)
	}

	return r, nil
}
