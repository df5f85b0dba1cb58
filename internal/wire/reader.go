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

// Package wire provides a bounds-checked cursor over protobuf encoded bytes.
// Readers never copy the underlying buffer; length-delimited fields are
// returned as ranges or sub-slices of it.
package wire

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrTruncatedInput is returned when fewer bytes remain than an encoding
	// requires.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrMalformedVarint is returned when a varint runs past ten bytes or
	// overflows 64 bits.
	ErrMalformedVarint = errors.New("malformed varint")

	// ErrUnknownWireType is returned for wire types that cannot be skipped:
	// groups and the reserved types.
	ErrUnknownWireType = errors.New("unknown wire type")

	// ErrInvalidFieldNumber is returned for a tag carrying field number zero
	// or a number beyond the protobuf range.
	ErrInvalidFieldNumber = errors.New("invalid field number")
)

// Error records the offset, relative to the start of the outermost buffer,
// at which a read failed.
type Error struct {
	Offset int
	Err    error
}

// Error implements [error].
func (e *Error) Error() string {
	return fmt.Sprintf("wire: %v at offset %d/%#x", e.Err, e.Offset, e.Offset)
}

// Unwrap implements error unwrapping viz [errors.Unwrap].
func (e *Error) Unwrap() error {
	return e.Err
}

// Range is a half-open byte range [Start, End) within a Reader's buffer.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (rg Range) Len() int {
	return rg.End - rg.Start
}

// Reader is a cursor over buf[pos:end).
type Reader struct {
	buf []byte
	pos int
	end int
}

// NewReader creates a Reader over the whole of buf.
func NewReader(buf []byte) Reader {
	return Reader{buf: buf, end: len(buf)}
}

// Sub returns a Reader limited to rg. The returned Reader shares the
// buffer, so offsets reported in errors stay absolute.
func (r *Reader) Sub(rg Range) Reader {
	return Reader{buf: r.buf, pos: rg.Start, end: rg.End}
}

// Slice returns the bytes covered by rg without copying.
func (r *Reader) Slice(rg Range) []byte {
	return r.buf[rg.Start:rg.End:rg.End]
}

// HasNext reports whether unread bytes remain.
func (r *Reader) HasNext() bool {
	return r.pos < r.end
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return r.end - r.pos
}

// Varint reads a base 128 varint.
func (r *Reader) Varint() (uint64, error) {
	v, n := protowire.ConsumeVarint(r.buf[r.pos:r.end])
	if n < 0 {
		return 0, r.fail(n, ErrMalformedVarint)
	}

	r.pos += n

	return v, nil
}

// Tag reads a field tag and splits it into its field number and wire type.
func (r *Reader) Tag() (protowire.Number, protowire.Type, error) {
	start := r.pos

	v, err := r.Varint()
	if err != nil {
		return 0, 0, err
	}

	num, typ := protowire.DecodeTag(v)
	if num < protowire.MinValidNumber {
		return 0, 0, &Error{Offset: start, Err: ErrInvalidFieldNumber}
	}

	return num, typ, nil
}

// Fixed32 reads a little-endian 32-bit value.
func (r *Reader) Fixed32() (uint32, error) {
	v, n := protowire.ConsumeFixed32(r.buf[r.pos:r.end])
	if n < 0 {
		return 0, r.fail(n, ErrTruncatedInput)
	}

	r.pos += n

	return v, nil
}

// Fixed64 reads a little-endian 64-bit value.
func (r *Reader) Fixed64() (uint64, error) {
	v, n := protowire.ConsumeFixed64(r.buf[r.pos:r.end])
	if n < 0 {
		return 0, r.fail(n, ErrTruncatedInput)
	}

	r.pos += n

	return v, nil
}

// Range reads a length-delimited field and returns the range of its
// payload. The cursor is left just past the payload.
func (r *Reader) Range() (Range, error) {
	start := r.pos

	n, err := r.Varint()
	if err != nil {
		return Range{}, err
	}

	if n > uint64(r.end-r.pos) {
		return Range{}, &Error{Offset: start, Err: ErrTruncatedInput}
	}

	rg := Range{Start: r.pos, End: r.pos + int(n)}
	r.pos = rg.End

	return rg, nil
}

// Bytes reads a length-delimited field and returns its payload as a
// sub-slice of the buffer.
func (r *Reader) Bytes() ([]byte, error) {
	rg, err := r.Range()
	if err != nil {
		return nil, err
	}

	return r.Slice(rg), nil
}

// String reads a length-delimited field as a string. This copies.
func (r *Reader) String() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Skip discards the value of a field with wire type typ.
func (r *Reader) Skip(typ protowire.Type) error {
	var err error

	switch typ {
	case protowire.VarintType:
		_, err = r.Varint()
	case protowire.Fixed32Type:
		_, err = r.Fixed32()
	case protowire.Fixed64Type:
		_, err = r.Fixed64()
	case protowire.BytesType:
		_, err = r.Range()
	default:
		err = &Error{Offset: r.pos, Err: fmt.Errorf("%w %d", ErrUnknownWireType, typ)}
	}

	return err
}

// Uint32s appends the elements of a repeated uint32 field to dst. Packed
// encoding (typ == BytesType) is the norm; a single unpacked varint element
// is accepted as well.
func (r *Reader) Uint32s(dst []uint32, typ protowire.Type) ([]uint32, error) {
	switch typ {
	case protowire.VarintType:
		v, err := r.Varint()
		if err != nil {
			return dst, err
		}

		return append(dst, uint32(v)), nil
	case protowire.BytesType:
		rg, err := r.Range()
		if err != nil {
			return dst, err
		}

		sub := r.Sub(rg)
		dst = slices.Grow(dst, sub.Remaining())

		for sub.HasNext() {
			v, err := sub.Varint()
			if err != nil {
				return dst, err
			}

			dst = append(dst, uint32(v))
		}

		return dst, nil
	default:
		return dst, &Error{Offset: r.pos, Err: fmt.Errorf("%w %d", ErrUnknownWireType, typ)}
	}
}

// fail converts a negative protowire length into an *Error. Truncation is
// always reported as ErrTruncatedInput; any other failure as otherwise.
func (r *Reader) fail(n int, otherwise error) error {
	err := otherwise
	if errors.Is(protowire.ParseError(n), io.ErrUnexpectedEOF) {
		err = ErrTruncatedInput
	}

	return &Error{Offset: r.pos, Err: err}
}
