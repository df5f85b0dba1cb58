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
	"math"
	"slices"

	"m4o.io/mvt/model"
)

// invalidIndex marks a wire index whose key or value could not be decoded.
const invalidIndex = math.MaxUint32

// interner deduplicates the keys and values of one layer. Features refer to
// keys and values by their position in the layer message; the remap tables
// translate those wire indices into indices of the deduplicated tables.
type interner struct {
	keys     []string
	values   []model.Value
	keyIDs   map[string]uint32
	valueIDs map[model.Value]uint32

	keyRemap   []uint32
	valueRemap []uint32
}

func newInterner() interner {
	return interner{
		keyIDs:   make(map[string]uint32),
		valueIDs: make(map[model.Value]uint32),
	}
}

// addKey interns the key at the next wire index.
func (in *interner) addKey(k string) {
	id, ok := in.keyIDs[k]
	if !ok {
		id = uint32(len(in.keys))
		in.keys = append(in.keys, k)
		in.keyIDs[k] = id
	}

	in.keyRemap = append(in.keyRemap, id)
}

// addValue interns the value at the next wire index. Invalid values still
// occupy their index so that later indices keep their meaning.
func (in *interner) addValue(v model.Value) {
	if !v.Valid() {
		in.valueRemap = append(in.valueRemap, invalidIndex)

		return
	}

	id, ok := in.valueIDs[v]
	if !ok {
		id = uint32(len(in.values))
		in.values = append(in.values, v)
		in.valueIDs[v] = id
	}

	in.valueRemap = append(in.valueRemap, id)
}

// resolve translates a wire key/value index pair.
func (in *interner) resolve(key, val uint32) (model.Property, bool) {
	if uint64(key) >= uint64(len(in.keyRemap)) || uint64(val) >= uint64(len(in.valueRemap)) {
		return model.Property{}, false
	}

	k, v := in.keyRemap[key], in.valueRemap[val]
	if k == invalidIndex || v == invalidIndex {
		return model.Property{}, false
	}

	return model.Property{Key: k, Value: v}, true
}

// snapshot copies the deduplicated tables out of the interner so that they
// survive the next reset.
func (in *interner) snapshot() ([]string, []model.Value) {
	return slices.Clone(in.keys), slices.Clone(in.values)
}

// reset empties the tables while keeping their storage.
func (in *interner) reset() {
	in.keys = in.keys[:0]
	in.values = in.values[:0]
	in.keyRemap = in.keyRemap[:0]
	in.valueRemap = in.valueRemap[:0]

	clear(in.keyIDs)
	clear(in.valueIDs)
}
