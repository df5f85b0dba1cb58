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

// Package mvt decodes vector tiles into layers of features with decoded
// geometry and deduplicated properties.
package mvt

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/destel/rill"

	"m4o.io/mvt/internal/decoder"
	"m4o.io/mvt/internal/wire"
	"m4o.io/mvt/model"
)

var (
	// ErrTileLevelFailure is wrapped by the error of a tile that could not
	// be decoded to the end. Layers decoded before the failure are still
	// returned.
	ErrTileLevelFailure = decoder.ErrTileLevelFailure

	ErrTruncatedInput  = wire.ErrTruncatedInput
	ErrMalformedVarint = wire.ErrMalformedVarint
	ErrUnknownWireType = wire.ErrUnknownWireType
	ErrUnpack          = decoder.ErrUnpack
)

// Tile is an encoded tile, optionally compressed, and its address.
type Tile struct {
	ID   model.TileID
	Data []byte
}

// Result is the outcome of decoding a Tile. Err is set when the tile failed
// at tile level, in which case Layers holds what was decoded before.
type Result struct {
	ID          model.TileID
	Layers      []model.Layer
	Compression model.Compression
	Err         error
}

// Decoder decodes vector tiles. It is safe for concurrent use; the issues
// found across all tiles are accumulated and reported by Stats.
type Decoder struct {
	cfg decoderOptions
	log *slog.Logger

	mu    sync.Mutex
	stats model.Stats
}

// NewDecoder returns a new decoder configured with opts.
func NewDecoder(opts ...DecoderOption) *Decoder {
	cfg := defaultDecoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	log := cfg.logger
	if log == nil {
		log = slog.Default()
	}

	return &Decoder{cfg: cfg, log: log}
}

// Decode decodes a single tile.
func (d *Decoder) Decode(buf []byte) ([]model.Layer, error) {
	r := d.decode(Tile{Data: buf})

	return r.Layers, r.Err
}

// DecodeStream decodes the tiles read from in using the configured number of
// CPUs. Results are emitted in input order. A tile that fails is reported in
// its Result; the stream only carries an error when ctx is done or in
// carries one. Cancellation is observed between tiles.
func (d *Decoder) DecodeStream(ctx context.Context, in <-chan rill.Try[Tile]) <-chan rill.Try[Result] {
	return rill.OrderedMap(in, int(d.cfg.nCPU), func(t Tile) (Result, error) {
		if err := ctx.Err(); err != nil {
			return Result{ID: t.ID}, err
		}

		return d.decode(t), nil
	})
}

// DecodeAll decodes tiles concurrently and returns their results in order.
func (d *Decoder) DecodeAll(ctx context.Context, tiles []Tile) ([]Result, error) {
	return rill.ToSlice(d.DecodeStream(ctx, rill.FromSlice(tiles, nil)))
}

// Stats returns the counters accumulated so far.
func (d *Decoder) Stats() model.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.stats
}

func (d *Decoder) decode(t Tile) (r Result) {
	var stats model.Stats
	defer d.merge(&stats)

	r.ID = t.ID

	data := t.Data
	if d.cfg.unpack {
		var err error
		if data, r.Compression, err = decoder.Unpack(t.Data); err != nil {
			stats.Tiles++
			stats.Record(model.TileLevelFailure)
			d.log.Warn("unable to unpack tile", "tile", t.ID, "compression", r.Compression, "error", err)
			r.Err = fmt.Errorf("%w: %w", ErrTileLevelFailure, err)

			return r
		}
	}

	r.Layers, r.Err = decoder.Decode(data, d.options(t.ID), &stats)

	return r
}

func (d *Decoder) options(id model.TileID) decoder.Options {
	return decoder.Options{
		MultiPoint:  d.cfg.multiPoint,
		DefaultType: d.cfg.defaultType,
		Logger:      d.log.With("tile", id),
	}
}

func (d *Decoder) merge(stats *model.Stats) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.Add(stats)
}
