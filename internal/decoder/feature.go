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
	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/mvt/internal/wire"
	"m4o.io/mvt/model"
)

// Feature message fields.
const (
	featureID       protowire.Number = 1
	featureTags     protowire.Number = 2
	featureType     protowire.Number = 3
	featureGeometry protowire.Number = 4
)

// extractFeature decodes the feature message at rg. A wire error is
// returned as is and the caller drops the feature; property and geometry
// problems are recorded and recovered here.
func (c *parseContext) extractFeature(rd *wire.Reader, rg wire.Range) (model.Feature, error) {
	var f model.Feature

	typ, typed := c.opts.DefaultType, false

	c.tags = c.tags[:0]
	c.commands = c.commands[:0]

	fr := rd.Sub(rg)
	for fr.HasNext() {
		num, wt, err := fr.Tag()
		if err != nil {
			return f, err
		}

		switch {
		case num == featureID && wt == protowire.VarintType:
			f.ID, err = fr.Varint()
			f.HasID = err == nil
		case num == featureTags && isRepeatedVarint(wt):
			c.tags, err = fr.Uint32s(c.tags, wt)
		case num == featureType && wt == protowire.VarintType:
			var v uint64
			if v, err = fr.Varint(); err == nil {
				typ, typed = geometryType(v), true
			}
		case num == featureGeometry && isRepeatedVarint(wt):
			c.commands, err = fr.Uint32s(c.commands, wt)
		default:
			err = fr.Skip(wt)
		}

		if err != nil {
			return f, err
		}
	}

	if !typed && len(c.commands) > 0 && typ == model.Unknown {
		c.log.Debug("feature without geometry type", "layer", c.layer, "feature", c.feature)
	}

	f.Type = typ
	f.Properties = c.resolveTags(c.tags)
	f.Geometry = c.decodeGeometry(c.commands, typ)

	return f, nil
}

// resolveTags pairs up key and value indices. Pairs that do not resolve are
// dropped, as is a trailing key without a value.
func (c *parseContext) resolveTags(tags []uint32) []model.Property {
	if len(tags) == 0 {
		return nil
	}

	if len(tags)%2 != 0 {
		c.record(model.CorruptProperties, "dropping dangling property key", "key", tags[len(tags)-1])
	}

	props := make([]model.Property, 0, len(tags)/2)

	for i := 0; i+1 < len(tags); i += 2 {
		p, ok := c.resolve(tags[i], tags[i+1])
		if !ok {
			c.record(model.CorruptProperties, "dropping unresolvable property",
				"key", tags[i], "value", tags[i+1], "keys", len(c.keyRemap), "values", len(c.valueRemap))

			continue
		}

		props = append(props, p)
	}

	return props
}

// geometryType maps the wire enum. Values outside the enum are treated as
// Unknown rather than guessed at.
func geometryType(v uint64) model.GeometryType {
	switch model.GeometryType(v) {
	case model.PointGeometry, model.LineStringGeometry, model.PolygonGeometry:
		return model.GeometryType(v)
	default:
		return model.Unknown
	}
}

func isRepeatedVarint(wt protowire.Type) bool {
	return wt == protowire.BytesType || wt == protowire.VarintType
}
