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

// Table assigns dense indices to values in the order they are first added.
type Table[T comparable] struct {
	ids    map[T]uint32
	values []T
}

// NewTable creates an empty Table.
func NewTable[T comparable]() *Table[T] {
	return &Table[T]{ids: make(map[T]uint32)}
}

// Add returns the index of v, adding it if it is new.
func (t *Table[T]) Add(v T) uint32 {
	if id, ok := t.ids[v]; ok {
		return id
	}

	id := uint32(len(t.values))
	t.ids[v] = id
	t.values = append(t.values, v)

	return id
}

// AsArray returns the values in index order.
func (t *Table[T]) AsArray() []T {
	return t.values
}
