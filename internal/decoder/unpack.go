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

package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"

	"m4o.io/mvt/model"
)

const (
	// MaxUnpackedSize bounds the size of a decompressed tile.
	MaxUnpackedSize = 64 << 20

	zlibDeflate = 0x78
)

var (
	ErrUnpack           = errors.New("unable to unpack tile")
	ErrUnpackedTooLarge = fmt.Errorf("unpacked tile exceeds %d bytes", MaxUnpackedSize)

	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Sniff guesses the compression of buf from its leading bytes.
func Sniff(buf []byte) model.Compression {
	switch {
	case bytes.HasPrefix(buf, gzipMagic):
		return model.GZIP
	case bytes.HasPrefix(buf, zstdMagic):
		return model.ZSTD
	case bytes.HasPrefix(buf, lz4Magic):
		return model.LZ4
	case bytes.HasPrefix(buf, xzMagic):
		return model.XZ
	case len(buf) > 1 && buf[0] == zlibDeflate && (uint16(buf[0])<<8|uint16(buf[1]))%31 == 0:
		return model.ZLIB
	default:
		return model.RAW
	}
}

// Unpack decompresses buf if it carries a known compression header and
// returns it unchanged otherwise. The zlib header is only two bytes and can
// occur at the start of an uncompressed tile, so a zlib payload that fails
// to inflate is returned as is.
func Unpack(buf []byte) ([]byte, model.Compression, error) {
	var factory func(r io.Reader) (io.ReadCloser, error)

	c := Sniff(buf)
	switch c {
	case model.RAW:
		return buf, c, nil
	case model.GZIP:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		}
	case model.ZLIB:
		factory = zlib.NewReader
	case model.ZSTD:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	case model.LZ4:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(r)), nil
		}
	case model.XZ:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			x, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}

			return io.NopCloser(x), nil
		}
	}

	out, err := inflate(buf, factory)
	if err != nil {
		if c == model.ZLIB && !errors.Is(err, ErrUnpackedTooLarge) {
			return buf, model.RAW, nil
		}

		return nil, c, fmt.Errorf("%w (%s): %w", ErrUnpack, c, err)
	}

	return out, c, nil
}

func inflate(buf []byte, factory func(r io.Reader) (io.ReadCloser, error)) ([]byte, error) {
	rdr, err := factory(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}
	defer rdr.Close()

	var out bytes.Buffer
	out.Grow(4 * len(buf))

	if n, err := out.ReadFrom(io.LimitReader(rdr, MaxUnpackedSize+1)); err != nil {
		return nil, fmt.Errorf("unpacker read error: %w", err)
	} else if n > MaxUnpackedSize {
		return nil, ErrUnpackedTooLarge
	}

	return out.Bytes(), nil
}
