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

package encoder

import (
	"fmt"
	"io"

	"m4o.io/mvt/internal/encoder/packers"
	"m4o.io/mvt/model"
)

// Packer is the interface that groups methods for compressing an encoded
// tile and retrieving the compressed bytes.
type Packer interface {
	// WriteCloser is used to write the tile to be packed. Be sure to call
	// the Close method so that all the contents are flushed.
	io.WriteCloser

	// Bytes returns the packed contents once the packer is closed.
	Bytes() []byte
}

// Pack compresses an encoded tile.
func Pack(raw []byte, c model.Compression) ([]byte, error) {
	p, err := newPacker(c)
	if err != nil {
		return nil, err
	}

	if _, err = p.Write(raw); err != nil {
		return nil, fmt.Errorf("could not compress tile: %w", err)
	}

	if err = p.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	return p.Bytes(), nil
}

// newPacker creates the appropriate Packer for the compression.
func newPacker(c model.Compression) (Packer, error) {
	switch c {
	case model.RAW:
		return packers.NewRawPacker(), nil
	case model.GZIP:
		return packers.NewGzipPacker(), nil
	case model.ZLIB:
		return packers.NewZlibPacker(), nil
	case model.ZSTD:
		return packers.NewZstdPacker()
	case model.LZ4:
		return packers.NewLz4Packer(), nil
	case model.XZ:
		return packers.NewXzPacker()
	default:
		return nil, fmt.Errorf("unknown compression type: %v", c)
	}
}
