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

package renderstate

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name  string
	value any
}

type recorder struct {
	calls []call
}

func (r *recorder) SetBlending(enabled bool)       { r.calls = append(r.calls, call{"blending", enabled}) }
func (r *recorder) SetDepthWrite(enabled bool)     { r.calls = append(r.calls, call{"depthWrite", enabled}) }
func (r *recorder) SetCulling(c Culling)           { r.calls = append(r.calls, call{"culling", c}) }
func (r *recorder) SetBlendingFunc(f BlendingFunc) { r.calls = append(r.calls, call{"blendingFunc", f}) }
func (r *recorder) SetDepthTest(enabled bool)      { r.calls = append(r.calls, call{"depthTest", enabled}) }
func (r *recorder) Configure(c Context)            { r.calls = append(r.calls, call{"configure", c}) }

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

var defaults = []call{
	{"blending", false},
	{"culling", Culling{Enabled: true, Winding: CCW, Face: Back}},
	{"depthTest", true},
	{"depthWrite", true},
	{"configure", DefaultContext},
}

func TestNewCache(t *testing.T) {
	r := &recorder{}
	c := NewCache(r, WithLogger(quiet))

	assert.Equal(t, defaults, r.calls)

	v, ok := c.Blending.Get()
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = c.BlendingFunc.Get()
	assert.False(t, ok)
}

func TestSetOnlyWhenChanged(t *testing.T) {
	r := &recorder{}
	c := NewCache(r, WithLogger(quiet))
	r.calls = nil

	assert.False(t, c.DepthTest.Set(true))
	assert.False(t, c.Culling.Set(Culling{Enabled: true, Winding: CCW, Face: Back}))
	assert.Empty(t, r.calls)

	assert.True(t, c.Blending.Set(true))
	assert.False(t, c.Blending.Set(true))
	assert.True(t, c.Culling.Set(Culling{Enabled: true, Winding: CW, Face: Back}))

	fn := BlendingFunc{Src: SrcAlpha, Dst: OneMinusSrcAlpha}
	assert.True(t, c.BlendingFunc.Set(fn))
	assert.False(t, c.BlendingFunc.Set(fn))

	assert.Equal(t, []call{
		{"blending", true},
		{"culling", Culling{Enabled: true, Winding: CW, Face: Back}},
		{"blendingFunc", fn},
	}, r.calls)

	counts := c.Counts()
	assert.Equal(t, uint64(4+3), counts.Applied)
	assert.Equal(t, uint64(4), counts.Skipped)
}

func TestInitAlwaysApplies(t *testing.T) {
	r := &recorder{}
	c := NewCache(r, WithLogger(quiet))
	r.calls = nil

	c.DepthWrite.Init(true)
	c.DepthWrite.Init(true)

	assert.Equal(t, []call{{"depthWrite", true}, {"depthWrite", true}}, r.calls)
}

func TestReset(t *testing.T) {
	r := &recorder{}
	c := NewCache(r, WithLogger(quiet))

	require.True(t, c.Blending.Set(true))
	require.True(t, c.BlendingFunc.Set(BlendingFunc{Src: One, Dst: One}))

	r.calls = nil
	c.Reset()

	assert.Equal(t, defaults, r.calls)

	_, ok := c.BlendingFunc.Get()
	assert.False(t, ok)

	r.calls = nil
	assert.True(t, c.BlendingFunc.Set(BlendingFunc{Src: One, Dst: One}))
	assert.Len(t, r.calls, 1)
}

func TestWithContext(t *testing.T) {
	ctx := DefaultContext
	ctx.ClearColor = [4]float32{0, 0, 0, 1}

	r := &recorder{}
	NewCache(r, WithContext(ctx), WithLogger(quiet))

	assert.Equal(t, call{"configure", ctx}, r.calls[len(r.calls)-1])
}
