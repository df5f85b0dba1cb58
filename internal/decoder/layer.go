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

	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/mvt/internal/wire"
	"m4o.io/mvt/model"
)

// Layer message fields.
const (
	layerName     protowire.Number = 1
	layerFeatures protowire.Number = 2
	layerKeys     protowire.Number = 3
	layerValues   protowire.Number = 4
	layerExtent   protowire.Number = 5
	layerVersion  protowire.Number = 15
)

// Value message fields.
const (
	valueString protowire.Number = 1 + iota
	valueFloat
	valueDouble
	valueInt
	valueUint
	valueSint
	valueBool
)

// extractLayer decodes the layer message at rg in two passes. The first
// pass interns keys and values and records where each feature lies; the
// second decodes the features, which may then refer to any key or value
// regardless of where it appeared in the message.
//
// A wire error aborts the layer and is returned; nothing of the layer is
// kept in that case.
func (c *parseContext) extractLayer(rd *wire.Reader, rg wire.Range) (model.Layer, error) {
	c.reset()

	l := model.Layer{
		Version: model.DefaultVersion,
		Extent:  model.DefaultExtent,
	}

	lr := rd.Sub(rg)
	for lr.HasNext() {
		num, wt, err := lr.Tag()
		if err != nil {
			return model.Layer{}, err
		}

		switch {
		case num == layerName && wt == protowire.BytesType:
			l.Name, err = lr.String()
		case num == layerFeatures && wt == protowire.BytesType:
			var frg wire.Range
			if frg, err = lr.Range(); err == nil {
				c.features = append(c.features, frg)
			}
		case num == layerKeys && wt == protowire.BytesType:
			var k string
			if k, err = lr.String(); err == nil {
				c.addKey(k)
			}
		case num == layerValues && wt == protowire.BytesType:
			var vrg wire.Range
			if vrg, err = lr.Range(); err == nil {
				c.addValue(c.parseValue(&lr, vrg))
			}
		case num == layerExtent && wt == protowire.VarintType:
			var v uint64
			if v, err = lr.Varint(); err == nil {
				l.Extent = uint32(v)
			}
		case num == layerVersion && wt == protowire.VarintType:
			var v uint64
			if v, err = lr.Varint(); err == nil {
				l.Version = uint32(v)
			}
		default:
			err = lr.Skip(wt)
		}

		if err != nil {
			return model.Layer{}, err
		}
	}

	c.layer = l.Name
	if l.Name == "" {
		c.record(model.MissingLayerName, "layer without name")
	}

	l.Features = make([]model.Feature, 0, len(c.features))

	for i, frg := range c.features {
		c.feature = i

		f, err := c.extractFeature(&lr, frg)
		if err != nil {
			c.recordErr(err, "dropping feature")

			continue
		}

		l.Features = append(l.Features, f)
	}

	c.feature = -1
	l.Keys, l.Values = c.snapshot()

	return l, nil
}

// parseValue decodes a value message. When more than one field is present
// the last one wins. A message without any known field, or one that cannot
// be read, yields an invalid Value.
func (c *parseContext) parseValue(rd *wire.Reader, rg wire.Range) model.Value {
	var v model.Value

	vr := rd.Sub(rg)
	for vr.HasNext() {
		num, wt, err := vr.Tag()
		if err != nil {
			c.recordErr(err, "unreadable property value")

			return model.Value{}
		}

		switch {
		case num == valueString && wt == protowire.BytesType:
			var s string
			if s, err = vr.String(); err == nil {
				v = model.StringValue(s)
			}
		case num == valueFloat && wt == protowire.Fixed32Type:
			var bits uint32
			if bits, err = vr.Fixed32(); err == nil {
				v = model.FloatValue(float64(math.Float32frombits(bits)))
			}
		case num == valueDouble && wt == protowire.Fixed64Type:
			var bits uint64
			if bits, err = vr.Fixed64(); err == nil {
				v = model.FloatValue(math.Float64frombits(bits))
			}
		case num == valueInt && wt == protowire.VarintType:
			var u uint64
			if u, err = vr.Varint(); err == nil {
				v = model.IntValue(int64(u))
			}
		case num == valueUint && wt == protowire.VarintType:
			var u uint64
			if u, err = vr.Varint(); err == nil {
				v = model.UintValue(u)
			}
		case num == valueSint && wt == protowire.VarintType:
			var u uint64
			if u, err = vr.Varint(); err == nil {
				v = model.IntValue(wire.Unzigzag64(u))
			}
		case num == valueBool && wt == protowire.VarintType:
			var u uint64
			if u, err = vr.Varint(); err == nil {
				v = model.BoolValue(u != 0)
			}
		default:
			err = vr.Skip(wt)
		}

		if err != nil {
			c.recordErr(err, "unreadable property value")

			return model.Value{}
		}
	}

	return v
}
