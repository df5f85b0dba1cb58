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
	"errors"
	"fmt"

	"m4o.io/mvt/internal/wire"
	"m4o.io/mvt/model"
)

// Geometry commands. The low three bits of a command integer select the
// operation, the remaining bits are its repeat count.
const (
	cmdMoveTo    = 1
	cmdLineTo    = 2
	cmdClosePath = 7
)

var (
	errNoMoveTo          = errors.New("command before MoveTo")
	errUnknownCommand    = errors.New("unknown command")
	errBadCount          = errors.New("invalid command count")
	errMissingParameters = errors.New("missing command parameters")
	errSecondMoveTo      = errors.New("point geometry with more than one MoveTo")
)

// decodeGeometry interprets a command stream as geometry of type typ. A
// stream that cannot be interpreted yields an empty geometry and a
// MalformedGeometry record.
func (c *parseContext) decodeGeometry(cmds []uint32, typ model.GeometryType) model.Geometry {
	if len(cmds) == 0 {
		return model.Geometry{Type: typ}
	}

	if err := c.runCommands(cmds, typ); err != nil {
		c.record(model.MalformedGeometry, "dropping malformed geometry", "type", typ, "error", err)

		return model.Geometry{Type: typ}
	}

	return c.buildGeometry(typ)
}

// runCommands replays cmds into the coordinate and part scratch buffers.
func (c *parseContext) runCommands(cmds []uint32, typ model.GeometryType) error {
	c.coords = c.coords[:0]
	c.partLens = c.partLens[:0]
	c.closed = c.closed[:0]

	var cursor model.Point

	// drawing is set while LineTo may extend the current part
	drawing := false

	for i := 0; i < len(cmds); {
		op, count := cmds[i]&0x7, int(cmds[i]>>3)
		i++

		switch op {
		case cmdMoveTo:
			if count == 0 || (count > 1 && !(typ == model.PointGeometry && c.opts.MultiPoint)) {
				return fmt.Errorf("%w: MoveTo with count %d", errBadCount, count)
			}

			if typ == model.PointGeometry && len(c.partLens) > 0 {
				return errSecondMoveTo
			}

			c.partLens = append(c.partLens, 0)
			c.closed = append(c.closed, false)

			var err error
			if i, err = c.appendPoints(cmds, i, count, &cursor); err != nil {
				return err
			}

			drawing = typ != model.PointGeometry

		case cmdLineTo:
			if !drawing {
				return fmt.Errorf("%w: LineTo at command %d", errNoMoveTo, i-1)
			}

			var err error
			if i, err = c.appendPoints(cmds, i, count, &cursor); err != nil {
				return err
			}

		case cmdClosePath:
			if len(c.partLens) == 0 {
				return fmt.Errorf("%w: ClosePath at command %d", errNoMoveTo, i-1)
			}

			if count != 1 {
				return fmt.Errorf("%w: ClosePath with count %d", errBadCount, count)
			}

			if typ == model.PointGeometry || typ == model.LineStringGeometry {
				c.record(model.StrayClosePath, "ignoring ClosePath", "type", typ)

				continue
			}

			c.closed[len(c.closed)-1] = true
			drawing = false

		default:
			return fmt.Errorf("%w %d at command %d", errUnknownCommand, op, i-1)
		}
	}

	return nil
}

// appendPoints reads count zigzag encoded (dx, dy) pairs starting at
// cmds[i], moving the cursor by each and appending it to the current part.
// It returns the index following the last pair.
func (c *parseContext) appendPoints(cmds []uint32, i, count int, cursor *model.Point) (int, error) {
	if len(cmds)-i < 2*count {
		return i, fmt.Errorf("%w: need %d, have %d", errMissingParameters, 2*count, len(cmds)-i)
	}

	for range count {
		cursor.X += wire.Unzigzag32(cmds[i])
		cursor.Y += wire.Unzigzag32(cmds[i+1])
		i += 2

		c.coords = append(c.coords, *cursor)
	}

	c.partLens[len(c.partLens)-1] += count

	return i, nil
}

// buildGeometry copies the scratch buffers into a Geometry. All points share
// one backing array. Lines with fewer than two points are dropped.
func (c *parseContext) buildGeometry(typ model.GeometryType) model.Geometry {
	g := model.Geometry{Type: typ}

	total, kept := 0, 0

	for _, n := range c.partLens {
		if typ == model.LineStringGeometry && n < 2 {
			c.record(model.DroppedPart, "dropping short line", "points", n)

			continue
		}

		total += n
		kept++
	}

	if kept == 0 {
		return g
	}

	points := make([]model.Point, 0, total)
	g.Parts = make([]model.Part, 0, kept)

	off := 0

	for i, n := range c.partLens {
		src := c.coords[off : off+n]
		off += n

		if typ == model.LineStringGeometry && n < 2 {
			continue
		}

		start := len(points)
		points = append(points, src...)
		g.Parts = append(g.Parts, model.Part{
			Points: points[start:len(points):len(points)],
			Closed: c.closed[i],
		})
	}

	return g
}
