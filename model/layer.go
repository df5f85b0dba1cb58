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

package model

const (
	// DefaultExtent is the extent of layers that do not declare one.
	DefaultExtent = 4096

	// DefaultVersion is the version of layers that do not declare one.
	DefaultVersion = 1
)

// Property is a key/value pair of indices into the Keys and Values of the
// Layer that owns the feature.
type Property struct {
	Key   uint32 `json:"key"`
	Value uint32 `json:"value"`
}

// Feature is a single map entity.
type Feature struct {
	ID         uint64       `json:"id,omitempty"`
	HasID      bool         `json:"-"`
	Type       GeometryType `json:"type"`
	Geometry   Geometry     `json:"geometry"`
	Properties []Property   `json:"properties,omitempty"`
}

// Layer is a named group of features sharing a coordinate extent. Keys and
// Values are the layer's deduplicated property tables; every Property of
// every Feature indexes into them.
type Layer struct {
	Name     string    `json:"name"`
	Version  uint32    `json:"version"`
	Extent   uint32    `json:"extent"`
	Keys     []string  `json:"keys,omitempty"`
	Values   []Value   `json:"values,omitempty"`
	Features []Feature `json:"features,omitempty"`
}

// Key returns the key of p.
func (l *Layer) Key(p Property) string {
	return l.Keys[p.Key]
}

// Value returns the value of p.
func (l *Layer) Value(p Property) Value {
	return l.Values[p.Value]
}

// Tags resolves the properties of f into a map. Later duplicates of a key
// override earlier ones.
func (l *Layer) Tags(f *Feature) map[string]Value {
	tags := make(map[string]Value, len(f.Properties))

	for _, p := range f.Properties {
		tags[l.Key(p)] = l.Value(p)
	}

	return tags
}

// CountByType returns the number of features per declared geometry type.
func (l *Layer) CountByType() map[GeometryType]int {
	counts := make(map[GeometryType]int)
	for i := range l.Features {
		counts[l.Features[i].Type]++
	}

	return counts
}
