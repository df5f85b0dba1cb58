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
	"io"
	"log/slog"

	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/mvt/model"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func testOptions() Options {
	return Options{MultiPoint: true, Logger: quiet}
}

func newTestContext(opts Options) (*parseContext, *model.Stats) {
	stats := &model.Stats{}
	c := &parseContext{interner: newInterner()}
	c.opts = opts
	c.stats = stats
	c.log = opts.Logger
	c.reset()

	return c, stats
}

// msg builds protobuf messages field by field.
type msg []byte

func (m msg) varint(num protowire.Number, v uint64) msg {
	m = protowire.AppendTag(m, num, protowire.VarintType)

	return protowire.AppendVarint(m, v)
}

func (m msg) bytes(num protowire.Number, b []byte) msg {
	m = protowire.AppendTag(m, num, protowire.BytesType)

	return protowire.AppendBytes(m, b)
}

func (m msg) str(num protowire.Number, s string) msg {
	return m.bytes(num, []byte(s))
}

func (m msg) packed(num protowire.Number, vs ...uint32) msg {
	var body []byte
	for _, v := range vs {
		body = protowire.AppendVarint(body, uint64(v))
	}

	return m.bytes(num, body)
}

func (m msg) raw(b ...byte) msg {
	return append(m, b...)
}

func stringValue(s string) []byte {
	return msg{}.str(valueString, s)
}

func uintValue(u uint64) []byte {
	return msg{}.varint(valueUint, u)
}
