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

// Package renderstate caches graphics context state so that a driver call
// is only issued when the requested value differs from the applied one.
package renderstate

// State holds the last value applied to one piece of context state.
type State[T comparable] struct {
	apply func(T)
	value T
	valid bool

	applied, skipped uint64
}

func newState[T comparable](apply func(T)) *State[T] {
	return &State[T]{apply: apply}
}

// Init applies v unconditionally.
func (s *State[T]) Init(v T) {
	s.apply(v)
	s.value = v
	s.valid = true
	s.applied++
}

// Set applies v unless it is the value last applied. It reports whether the
// driver was called.
func (s *State[T]) Set(v T) bool {
	if s.valid && s.value == v {
		s.skipped++

		return false
	}

	s.Init(v)

	return true
}

// Get returns the value last applied, if any.
func (s *State[T]) Get() (T, bool) {
	return s.value, s.valid
}

// invalidate forgets the applied value so the next Set reaches the driver.
func (s *State[T]) invalidate() {
	var zero T

	s.value = zero
	s.valid = false
}
