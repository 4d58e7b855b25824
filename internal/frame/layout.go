/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package frame

import (
	"fmt"

	"gocomicframes/internal/vector"
)

// Layout is the absolute placement of one Node for a given target rectangle.
// Layout trees mirror the frame tree, are rebuilt for every render and hit test,
// and only reference their nodes; they never own them.
type Layout struct {
	Origin   vector.Pt
	Size     vector.Size
	Node     *Node
	Children []*Layout
}

// Rect returns the absolute rectangle covered by l.
func (l *Layout) Rect() vector.Rect { return vector.FromOriginSize(l.Origin, l.Size) }

// Leaf reports whether l places a leaf node.
func (l *Layout) Leaf() bool { return l.Node.IsLeaf() }

// Walk visits l and its descendants depth-first.
func (l *Layout) Walk(fn func(*Layout)) {
	fn(l)
	for _, c := range l.Children {
		c.Walk(fn)
	}
}

// Solve maps n onto the rectangle (origin, size). Containers scale their raw
// footprint independently per axis; children span the full inner cross extent.
// A container with a zero footprint is an invariant violation and panics.
func Solve(n *Node, size vector.Size, origin vector.Pt) *Layout {
	if n.IsLeaf() {
		return &Layout{Origin: origin, Size: size, Node: n}
	}
	psize, ssize := n.LocalLength, n.LocalBreadth
	if psize == 0 || ssize == 0 {
		panic(fmt.Sprintf("frame: degenerate container %v (length=%g, breadth=%g)", n, psize, ssize))
	}
	var xf, yf float64
	if n.Direction == Row {
		xf, yf = size.W/psize, size.H/ssize
	} else {
		xf, yf = size.W/ssize, size.H/psize
	}
	m := n.Margin
	innerW := (ssize - m.Left - m.Right) * xf
	innerH := (ssize - m.Top - m.Bottom) * yf

	out := &Layout{Origin: origin, Size: size, Node: n, Children: make([]*Layout, 0, len(n.Children))}
	x, y := m.Left, m.Top
	for _, c := range n.Children {
		co := vector.Pt{X: origin.X + x*xf, Y: origin.Y + y*yf}
		var cs vector.Size
		if n.Direction == Row {
			cs = vector.Size{W: c.RawSize * xf, H: innerH}
			x += c.RawSize + n.Spacing
		} else {
			cs = vector.Size{W: innerW, H: c.RawSize * yf}
			y += c.RawSize + n.Spacing
		}
		out.Children = append(out.Children, Solve(c, cs, co))
	}
	return out
}

// FindLayoutAt returns the deepest leaf layout containing p, or nil when p lies
// outside l or in a margin or gap.
func FindLayoutAt(l *Layout, p vector.Pt) *Layout {
	if !l.Rect().Contains(p) {
		return nil
	}
	if l.Leaf() {
		return l
	}
	for _, c := range l.Children {
		if found := FindLayoutAt(c, p); found != nil {
			return found
		}
	}
	return nil
}

// Border names the gap between Layout.Children[Index-1] and Layout.Children[Index].
type Border struct {
	Layout *Layout
	Index  int
}

// Cells returns the two layouts on either side of the border.
func (b *Border) Cells() (*Layout, *Layout) {
	return b.Layout.Children[b.Index-1], b.Layout.Children[b.Index]
}

// Axis is the split axis of the border's container (0 = x, 1 = y).
func (b *Border) Axis() int { return b.Layout.Node.Direction.Axis() }

// FindBorderAt returns the border whose gap contains p. Gaps thinner than
// minThickness are widened symmetrically for the test. Outer containers win.
func FindBorderAt(l *Layout, p vector.Pt, minThickness float64) *Border {
	if l.Leaf() || !l.Rect().Contains(p) {
		return nil
	}
	for i := 1; i < len(l.Children); i++ {
		if gapRect(l, i, minThickness).Contains(p) {
			return &Border{Layout: l, Index: i}
		}
	}
	for _, c := range l.Children {
		if !c.Leaf() && c.Rect().Contains(p) {
			if b := FindBorderAt(c, p, minThickness); b != nil {
				return b
			}
		}
	}
	return nil
}

// BorderRect returns the gap rectangle between children index-1 and index of l.
func BorderRect(l *Layout, index int) vector.Rect {
	return gapRect(l, index, 0)
}

func gapRect(l *Layout, index int, minThickness float64) vector.Rect {
	c0, c1 := l.Children[index-1], l.Children[index]
	if l.Node.Direction == Row {
		x0 := c0.Origin.X + c0.Size.W
		x1 := c1.Origin.X
		x0, x1 = widen(x0, x1, minThickness)
		return vector.R(x0, c0.Origin.Y, x1-x0, c0.Size.H)
	}
	y0 := c0.Origin.Y + c0.Size.H
	y1 := c1.Origin.Y
	y0, y1 = widen(y0, y1, minThickness)
	return vector.R(c0.Origin.X, y0, c0.Size.W, y1-y0)
}

func widen(a, b, minThickness float64) (float64, float64) {
	if b-a >= minThickness {
		return a, b
	}
	mid := (a + b) / 2
	return mid - minThickness/2, mid + minThickness/2
}
