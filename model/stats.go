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

// IssueKind classifies a problem found while decoding a tile.
type IssueKind uint8

const (
	// TruncatedInput is a read that needed more bytes than remained.
	TruncatedInput IssueKind = iota

	// MalformedVarint is a varint longer than ten bytes.
	MalformedVarint

	// UnknownWireType is a field whose wire type cannot be skipped.
	UnknownWireType

	// CorruptProperties is a property pair that could not be resolved; the
	// pair is dropped.
	CorruptProperties

	// MalformedGeometry is a command stream that cannot be interpreted; the
	// geometry of the feature is dropped.
	MalformedGeometry

	// MissingLayerName is a layer without a name; the layer is kept.
	MissingLayerName

	// TileLevelFailure is truncation at the tile structure itself; decoding
	// stops and the layers already decoded are returned.
	TileLevelFailure

	// DroppedPart is a line with fewer than two points.
	DroppedPart

	// StrayClosePath is a ClosePath on a point or line string geometry.
	StrayClosePath

	numIssueKinds
)

var issueKindNames = [numIssueKinds]string{
	TruncatedInput:    "TruncatedInput",
	MalformedVarint:   "MalformedVarint",
	UnknownWireType:   "UnknownWireType",
	CorruptProperties: "CorruptProperties",
	MalformedGeometry: "MalformedGeometry",
	MissingLayerName:  "MissingLayerName",
	TileLevelFailure:  "TileLevelFailure",
	DroppedPart:       "DroppedPart",
	StrayClosePath:    "StrayClosePath",
}

func (k IssueKind) String() string {
	if k < numIssueKinds {
		return issueKindNames[k]
	}

	return "IssueKind(" + itoa(int64(k)) + ")"
}

// IssueKinds returns every IssueKind in declaration order.
func IssueKinds() []IssueKind {
	kinds := make([]IssueKind, numIssueKinds)
	for i := range kinds {
		kinds[i] = IssueKind(i)
	}

	return kinds
}

// Stats counts the issues found while decoding. The zero value is ready
// for use.
type Stats struct {
	Tiles  uint64
	Layers uint64
	counts [numIssueKinds]uint64
}

// Record counts one occurrence of k.
func (s *Stats) Record(k IssueKind) {
	s.counts[k]++
}

// Count returns the occurrences of k.
func (s *Stats) Count(k IssueKind) uint64 {
	return s.counts[k]
}

// Total returns the occurrences of all kinds.
func (s *Stats) Total() uint64 {
	var n uint64
	for _, c := range s.counts {
		n += c
	}

	return n
}

// Add accumulates o into s.
func (s *Stats) Add(o *Stats) {
	s.Tiles += o.Tiles
	s.Layers += o.Layers

	for i, c := range o.counts {
		s.counts[i] += c
	}
}

// Issues returns the non-zero counters keyed by kind name.
func (s *Stats) Issues() map[string]uint64 {
	issues := make(map[string]uint64)

	for i, c := range s.counts {
		if c > 0 {
			issues[IssueKind(i).String()] = c
		}
	}

	return issues
}
