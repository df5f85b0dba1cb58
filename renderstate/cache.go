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
	"log/slog"
)

// Cache tracks the state of one graphics context. It is not safe for
// concurrent use; a context is driven from a single goroutine.
type Cache struct {
	Blending     *State[bool]
	DepthWrite   *State[bool]
	Culling      *State[Culling]
	BlendingFunc *State[BlendingFunc]
	DepthTest    *State[bool]

	driver Driver
	cfg    cacheOptions
}

// Counts reports how many driver calls the cache issued and avoided.
type Counts struct {
	Applied uint64
	Skipped uint64
}

type cacheOptions struct {
	context Context
	logger  *slog.Logger
}

// Option configures a Cache.
type Option func(*cacheOptions)

// WithContext lets you set the settings applied when the context is
// configured.
func WithContext(c Context) Option {
	return func(o *cacheOptions) {
		o.context = c
	}
}

// WithLogger lets you set the logger that records context resets.
func WithLogger(l *slog.Logger) Option {
	return func(o *cacheOptions) {
		o.logger = l
	}
}

// NewCache creates the cache of a freshly created context and applies the
// default state through d.
func NewCache(d Driver, opts ...Option) *Cache {
	cfg := cacheOptions{context: DefaultContext}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	c := &Cache{
		Blending:     newState(d.SetBlending),
		DepthWrite:   newState(d.SetDepthWrite),
		Culling:      newState(d.SetCulling),
		BlendingFunc: newState(d.SetBlendingFunc),
		DepthTest:    newState(d.SetDepthTest),
		driver:       d,
		cfg:          cfg,
	}

	c.configure()

	return c
}

// Reset forgets all applied state and configures the defaults again. It is
// called after the context was lost and recreated.
func (c *Cache) Reset() {
	counts := c.Counts()
	c.cfg.logger.Debug("resetting render state", "applied", counts.Applied, "skipped", counts.Skipped)

	c.Blending.invalidate()
	c.DepthWrite.invalidate()
	c.Culling.invalidate()
	c.BlendingFunc.invalidate()
	c.DepthTest.invalidate()

	c.configure()
}

// Counts sums the driver calls issued and avoided over all states.
func (c *Cache) Counts() Counts {
	var n Counts

	add := func(applied, skipped uint64) {
		n.Applied += applied
		n.Skipped += skipped
	}

	add(c.Blending.applied, c.Blending.skipped)
	add(c.DepthWrite.applied, c.DepthWrite.skipped)
	add(c.Culling.applied, c.Culling.skipped)
	add(c.BlendingFunc.applied, c.BlendingFunc.skipped)
	add(c.DepthTest.applied, c.DepthTest.skipped)

	return n
}

// configure applies the default state. The blending function stays unset
// until the first draw that blends.
func (c *Cache) configure() {
	c.Blending.Init(false)
	c.Culling.Init(Culling{Enabled: true, Winding: CCW, Face: Back})
	c.DepthTest.Init(true)
	c.DepthWrite.Init(true)

	c.driver.Configure(c.cfg.context)
}
