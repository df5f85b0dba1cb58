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

import (
	"encoding/json"
	"math"
	"strconv"
)

// ValueKind is the variant tag of a Value.
type ValueKind uint8

const (
	// KindInvalid marks the zero Value and values that could not be decoded.
	KindInvalid ValueKind = iota
	KindString
	KindFloat
	KindInt
	KindUint
	KindBool
)

var valueKindNames = [...]string{
	KindInvalid: "invalid",
	KindString:  "string",
	KindFloat:   "float",
	KindInt:     "int",
	KindUint:    "uint",
	KindBool:    "bool",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}

	return "ValueKind(" + itoa(int64(k)) + ")"
}

// Value is an immutable property value. Values are comparable: two values
// are equal exactly when their kind and content are equal, which makes them
// usable as map keys.
type Value struct {
	kind ValueKind
	str  string
	bits uint64
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// FloatValue returns a floating point Value.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, bits: math.Float64bits(f)}
}

// IntValue returns a signed integer Value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, bits: uint64(i)}
}

// UintValue returns an unsigned integer Value.
func UintValue(u uint64) Value {
	return Value{kind: KindUint, bits: u}
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.bits = 1
	}

	return v
}

// Kind returns the variant of v.
func (v Value) Kind() ValueKind { return v.kind }

// Valid reports whether v holds one of the known variants.
func (v Value) Valid() bool { return v.kind != KindInvalid }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsFloat returns the float held by v.
func (v Value) AsFloat() (float64, bool) { return math.Float64frombits(v.bits), v.kind == KindFloat }

// AsInt returns the signed integer held by v.
func (v Value) AsInt() (int64, bool) { return int64(v.bits), v.kind == KindInt }

// AsUint returns the unsigned integer held by v.
func (v Value) AsUint() (uint64, bool) { return v.bits, v.kind == KindUint }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.bits != 0, v.kind == KindBool }

// Interface returns the content of v as a plain Go value, or nil for an
// invalid Value.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindFloat:
		return math.Float64frombits(v.bits)
	case KindInt:
		return int64(v.bits)
	case KindUint:
		return v.bits
	case KindBool:
		return v.bits != 0
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindFloat:
		return ftoa(math.Float64frombits(v.bits))
	case KindInt:
		return itoa(int64(v.bits))
	case KindUint:
		return strconv.FormatUint(v.bits, 10)
	case KindBool:
		return strconv.FormatBool(v.bits != 0)
	default:
		return "<invalid>"
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindFloat {
		f := math.Float64frombits(v.bits)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return json.Marshal(ftoa(f))
		}
	}

	return json.Marshal(v.Interface())
}

func itoa(i int64) string {
	return strconv.FormatInt(i, 10)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
