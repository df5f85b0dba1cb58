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
	"fmt"
	"io"

	"m4o.io/mvt/internal/encoder"
	"m4o.io/mvt/model"
)

// Encoder writes layers as vector tiles.
type Encoder struct {
	cfg encoderOptions
}

// NewEncoder returns a new encoder configured with opts.
func NewEncoder(opts ...EncoderOption) *Encoder {
	cfg := defaultEncoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Encoder{cfg: cfg}
}

// Encode encodes layers as a tile, compressed as configured.
func (e *Encoder) Encode(layers []model.Layer) ([]byte, error) {
	raw, err := encoder.EncodeTile(layers)
	if err != nil {
		return nil, err
	}

	packed, err := encoder.Pack(raw, e.cfg.compression)
	if err != nil {
		return nil, fmt.Errorf("could not pack tile: %w", err)
	}

	return packed, nil
}

// EncodeTo encodes layers and writes the tile to w.
func (e *Encoder) EncodeTo(w io.Writer, layers []model.Layer) (int, error) {
	b, err := e.Encode(layers)
	if err != nil {
		return 0, err
	}

	return w.Write(b)
}

// Compression returns the compression the encoder applies.
func (e *Encoder) Compression() model.Compression {
	return e.cfg.compression
}
