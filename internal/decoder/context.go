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
	"errors"
	"log/slog"
	"sync"

	"m4o.io/mvt/internal/wire"
	"m4o.io/mvt/model"
)

// Options controls how tiles are interpreted.
type Options struct {
	// MultiPoint allows a Point geometry's single MoveTo to carry more than
	// one coordinate pair.
	MultiPoint bool

	// DefaultType is used for features that do not declare a geometry type.
	DefaultType model.GeometryType

	// Logger receives a debug record for every recoverable issue.
	Logger *slog.Logger
}

// parseContext is the per-tile state shared by the layer, feature and
// geometry extractors. It is owned by a single goroutine for the duration of
// one tile.
type parseContext struct {
	interner

	opts  Options
	log   *slog.Logger
	stats *model.Stats

	// scratch
	coords   []model.Point
	partLens []int
	closed   []bool
	tags     []uint32
	commands []uint32
	features []wire.Range

	layer   string
	feature int
}

var contextPool = sync.Pool{
	New: func() any {
		return &parseContext{interner: newInterner()}
	},
}

// acquireContext returns a reset context configured with opts that records
// issues into stats. Call release when the tile is done.
func acquireContext(opts Options, stats *model.Stats) *parseContext {
	c := contextPool.Get().(*parseContext)
	c.opts = opts
	c.stats = stats

	c.log = opts.Logger
	if c.log == nil {
		c.log = slog.Default()
	}

	c.reset()

	return c
}

func (c *parseContext) release() {
	c.stats = nil
	c.log = nil
	contextPool.Put(c)
}

// reset prepares the context for the next layer. Keys and values are layer
// scoped, so the interner is emptied here.
func (c *parseContext) reset() {
	c.interner.reset()
	c.features = c.features[:0]
	c.layer = ""
	c.feature = -1
}

// record counts one issue of kind and logs it.
func (c *parseContext) record(kind model.IssueKind, msg string, args ...any) {
	c.stats.Record(kind)
	c.log.Debug(msg, append([]any{"issue", kind, "layer", c.layer, "feature", c.feature}, args...)...)
}

// recordErr counts a wire level error under its matching kind.
func (c *parseContext) recordErr(err error, msg string, args ...any) {
	c.record(issueKindOf(err), msg, append(args, "error", err)...)
}

// issueKindOf classifies a wire error. A tag with an invalid field number
// cannot be skipped any more than an unknown wire type can, so both are
// counted together.
func issueKindOf(err error) model.IssueKind {
	switch {
	case errors.Is(err, wire.ErrMalformedVarint):
		return model.MalformedVarint
	case errors.Is(err, wire.ErrUnknownWireType), errors.Is(err, wire.ErrInvalidFieldNumber):
		return model.UnknownWireType
	default:
		return model.TruncatedInput
	}
}
