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
	"log/slog"
	"runtime"

	"m4o.io/mvt/model"
)

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// decoderOptions provides optional configuration parameters for Decoder construction.
type decoderOptions struct {
	nCPU        uint16             // the number of CPUs to use for stream decoding
	multiPoint  bool               // allow a point MoveTo to carry several points
	defaultType model.GeometryType // type of features that do not declare one
	logger      *slog.Logger       // receives issue records, slog.Default if nil
	unpack      bool               // detect and decompress compressed tiles
}

// DecoderOption configures how we set up the decoder.
type DecoderOption func(*decoderOptions)

// WithNCpus lets you set the number of CPUs to use for stream decoding.
func WithNCpus(n uint16) DecoderOption {
	return func(o *decoderOptions) {
		o.nCPU = max(n, 1)
	}
}

// WithMultiPoint controls whether a point geometry may hold more than one
// point in its MoveTo. It is enabled by default.
func WithMultiPoint(enabled bool) DecoderOption {
	return func(o *decoderOptions) {
		o.multiPoint = enabled
	}
}

// WithDefaultGeometryType sets the geometry type of features that do not
// declare one.
func WithDefaultGeometryType(t model.GeometryType) DecoderOption {
	return func(o *decoderOptions) {
		o.defaultType = t
	}
}

// WithLogger lets you set the logger that receives decoding issues.
func WithLogger(l *slog.Logger) DecoderOption {
	return func(o *decoderOptions) {
		o.logger = l
	}
}

// WithUnpack controls whether compressed tiles are detected and decompressed
// before decoding. It is enabled by default.
func WithUnpack(enabled bool) DecoderOption {
	return func(o *decoderOptions) {
		o.unpack = enabled
	}
}

// defaultDecoderConfig provides a default configuration for decoders.
var defaultDecoderConfig = decoderOptions{
	nCPU:        DefaultNCpu(),
	multiPoint:  true,
	defaultType: model.Unknown,
	unpack:      true,
}
