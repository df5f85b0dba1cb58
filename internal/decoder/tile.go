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

// Package decoder turns the bytes of a vector tile into model layers.
package decoder

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/mvt/internal/wire"
	"m4o.io/mvt/model"
)

// tileLayers is the only field of the tile message.
const tileLayers protowire.Number = 3

// ErrTileLevelFailure is returned when the tile message itself is
// truncated. The layers decoded before the failure are still returned.
var ErrTileLevelFailure = errors.New("tile level failure")

// Decode decodes the layers of an uncompressed tile, recording every issue
// found into stats.
//
// A layer whose content cannot be read is dropped and decoding continues
// with the next layer. Truncation of the tile message itself stops decoding;
// the layers decoded so far are returned together with an error wrapping
// ErrTileLevelFailure.
func Decode(buf []byte, opts Options, stats *model.Stats) ([]model.Layer, error) {
	c := acquireContext(opts, stats)
	defer c.release()

	stats.Tiles++

	var layers []model.Layer

	rd := wire.NewReader(buf)
	for rd.HasNext() {
		num, wt, err := rd.Tag()
		if err != nil {
			return layers, c.fail(err, len(layers), rd.Offset())
		}

		if num != tileLayers || wt != protowire.BytesType {
			if err := rd.Skip(wt); err != nil {
				return layers, c.fail(err, len(layers), rd.Offset())
			}

			continue
		}

		rg, err := rd.Range()
		if err != nil {
			return layers, c.fail(err, len(layers), rd.Offset())
		}

		l, err := c.extractLayer(&rd, rg)
		if err != nil {
			c.recordErr(err, "dropping layer", "index", len(layers), "offset", rd.Offset())

			continue
		}

		stats.Layers++
		layers = append(layers, l)
	}

	return layers, nil
}

// fail records a tile level failure after decoded layers.
func (c *parseContext) fail(err error, decoded, offset int) error {
	c.reset()
	c.stats.Record(model.TileLevelFailure)
	c.log.Warn("aborting tile", "issue", model.TileLevelFailure, "layers", decoded, "offset", offset, "error", err)

	return fmt.Errorf("%w: %w", ErrTileLevelFailure, err)
}
