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

package model_test

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"

	"m4o.io/mvt/model"
)

func TestInitialBoundingBox(t *testing.T) {
	initial := model.InitialBoundingBox()
	assert.Equal(t, model.MinLat, initial.North)
	assert.Equal(t, model.MaxLat, initial.South)
	assert.Equal(t, model.MinLon, initial.East)
	assert.Equal(t, model.MaxLon, initial.West)
}

func TestBoundingBox_EqualWithin(t *testing.T) {
	bbox1 := &model.BoundingBox{North: 51.69344, West: -0.511482, South: 51.28554, East: 0.335437}
	bbox2 := &model.BoundingBox{
		North: bbox1.North + model.Degrees(model.E6),
		West:  bbox1.West + model.Degrees(model.E6),
		South: bbox1.South + model.Degrees(model.E6),
		East:  bbox1.East + model.Degrees(model.E6),
	}

	assert.True(t, bbox1.EqualWithin(bbox2, model.E5))
	assert.False(t, bbox1.EqualWithin(bbox2, model.E7))
	assert.True(t, bbox1.EqualWithin(bbox1, model.E9))
}

func TestBoundingBox_Contains(t *testing.T) {
	bbox := &model.BoundingBox{North: 51.69344, West: -0.511482, South: 51.28554, East: 0.335437}

	tests := []struct {
		name     string
		lat      float64
		lng      float64
		expected bool
	}{
		{"center", 51.5, 0, true},
		{"west of", 51.5, -0.6, false},
		{"east of", 51.5, 0.4, false},
		{"north of", 51.7, 0, false},
		{"south of", 51.2, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, bbox.Contains(s2.LatLngFromDegrees(tc.lat, tc.lng)))
		})
	}
}

func TestBoundingBox_ExpandWithLatLng(t *testing.T) {
	a := s2.LatLngFromDegrees(-45, 90)
	b := s2.LatLngFromDegrees(45, -90)

	bbox := model.InitialBoundingBox()
	bbox.ExpandWithLatLng(a)
	bbox.ExpandWithLatLng(b)

	assert.True(t, bbox.Contains(a))
	assert.True(t, bbox.Contains(b))
	assert.True(t, bbox.Contains(s2.LatLngFromDegrees(0, 0)))
	assert.False(t, bbox.Contains(s2.LatLngFromDegrees(60, 0)))
}

func TestBoundingBox_ExpandWithBoundingBox(t *testing.T) {
	bbox := model.InitialBoundingBox()
	bbox.ExpandWithBoundingBox(&model.BoundingBox{North: 45.0, West: 70.0, South: 20.0, East: 90.0})
	bbox.ExpandWithBoundingBox(&model.BoundingBox{North: -25.0, West: -90.0, South: -45.0, East: -70.0})

	assert.Equal(t, &model.BoundingBox{North: 45, West: -90, South: -45, East: 90}, bbox)
}

func TestBoundingBoxString(t *testing.T) {
	bbox := &model.BoundingBox{North: 51.69344, West: -0.511482, South: 51.28554, East: 0.335437}
	assert.Equal(t, "[-0.511482, 51.28554, 0.335437, 51.69344]", bbox.String())
}
