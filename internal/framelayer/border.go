/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package framelayer

import (
	"math"

	"gocomicframes/internal/frame"
	"gocomicframes/internal/gesture"
	"gocomicframes/internal/vector"
)

// Balance maps p onto the span from the start of the cell before b to the end
// of the cell after it: 0 at the start, 1 at the end.
func Balance(b *frame.Border, p vector.Pt) float64 {
	c0, c1 := b.Cells()
	axis := b.Axis()
	start := c0.Origin.Axis(axis)
	end := c1.Origin.Axis(axis) + c1.Size.Axis(axis)
	if end == start {
		return 0.5
	}
	return (p.Axis(axis) - start) / (end - start)
}

// SplitSizes divides rawSum, which includes one spacing gap, so the middle of
// the gap sits at fraction t. With clamp neither size goes below zero.
func SplitSizes(t, rawSum, spacing float64, clamp bool) (float64, float64) {
	at := t * rawSum
	c0 := at - spacing/2
	c1 := rawSum - at - spacing/2
	if clamp {
		inner := math.Max(0, rawSum-spacing)
		c0 = math.Min(math.Max(0, c0), inner)
		c1 = inner - c0
	}
	return c0, c1
}

// moveBorder drags b, trading raw size between its two neighbours.
func (l *Layer) moveBorder(p vector.Pt, b *frame.Border) gesture.Routine {
	parent := b.Layout.Node
	n0, n1 := parent.Children[b.Index-1], parent.Children[b.Index]
	spacing := parent.Spacing
	rawSum := n0.RawSize + spacing + n1.RawSize
	return gesture.Loop(func(q vector.Pt) error {
		c0, c1 := SplitSizes(Balance(b, q), rawSum, spacing, l.opts.ClampBorders)
		n0.RawSize, n1.RawSize = floorContainers(n0, n1, c0, c1)
		l.structureStep(parent, n0, n1)
		return nil
	}, l.commit("move border"))
}

// floorContainers keeps container neighbours at frame.MinRawSize or above so
// their breadth never collapses. The other neighbour gives up the difference.
func floorContainers(n0, n1 *frame.Node, c0, c1 float64) (float64, float64) {
	if !n0.IsLeaf() && c0 < frame.MinRawSize {
		c1 -= frame.MinRawSize - c0
		c0 = frame.MinRawSize
	}
	if !n1.IsLeaf() && c1 < frame.MinRawSize {
		c0 -= frame.MinRawSize - c1
		c1 = frame.MinRawSize
	}
	if !n0.IsLeaf() {
		c0 = math.Max(c0, frame.MinRawSize)
	}
	return c0, c1
}

// expandBorder grows or shrinks the spacing of b's container with pointer
// travel along its split axis.
func (l *Layer) expandBorder(p vector.Pt, b *frame.Border) gesture.Routine {
	parent := b.Layout.Node
	axis := b.Axis()
	spacing0 := parent.Spacing
	factor := 0.0
	if ext := l.size.Axis(axis); ext > 0 {
		factor = b.Layout.Size.Axis(axis) / ext
	}
	return gesture.Loop(func(q vector.Pt) error {
		d := q.Axis(axis) - p.Axis(axis)
		parent.Spacing = math.Max(0, spacing0+d*factor*l.opts.ExpandDamping)
		l.structureStep(parent)
		return nil
	}, l.commit("expand border"))
}

// structureStep refreshes the nodes touched by a raw change and brings images
// back in line with the new cell rectangles.
func (l *Layer) structureStep(nodes ...*frame.Node) {
	for _, n := range nodes {
		n.CalculateLengthAndBreadth()
	}
	l.constrainAll()
	l.Redraw()
}
