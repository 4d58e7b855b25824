/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package frame implements the panel layout model of a page: a recursive tree of
// proportionally sized boxes, the solver that turns it into absolute rectangles,
// and the structural edits (split, erase) that keep cached aggregates consistent.
//
// Sizes stored in the tree are only meaningful between siblings. Absolute
// coordinates exist only in the transient Layout trees produced by Solve.
package frame

import (
	"fmt"
	"image"
)

// Direction is the split axis of a container. None marks a leaf.
type Direction int

const (
	None   Direction = iota
	Row              // children side by side, split along x
	Column           // children stacked, split along y
)

func (d Direction) String() string {
	switch d {
	case Row:
		return "row"
	case Column:
		return "column"
	default:
		return "none"
	}
}

// Axis returns 0 for Row, 1 for Column and -1 for None.
func (d Direction) Axis() int {
	switch d {
	case Row:
		return 0
	case Column:
		return 1
	default:
		return -1
	}
}

// Margin is the container padding in raw units.
type Margin struct {
	Top, Bottom, Left, Right float64
}

// along returns the two margins on the given axis (start, end).
func (m Margin) along(axis int) (float64, float64) {
	if axis == 0 {
		return m.Left, m.Right
	}
	return m.Top, m.Bottom
}

// Node is either a container (Direction Row/Column, at least one child) or a leaf
// (Direction None, no children) that may hold an image.
type Node struct {
	RawSize   float64
	Direction Direction
	Children  []*Node
	Spacing   float64
	Margin    Margin

	// Cached footprint along and across the node's own split axis.
	// Recomputed by CalculateLengthAndBreadth; never set by hand.
	LocalLength  float64
	LocalBreadth float64

	// Leaf content.
	Image       image.Image
	Translation [2]float64
	Scale       [2]float64
}

// NewLeaf returns an empty leaf with identity transform.
func NewLeaf(size float64) *Node {
	return &Node{RawSize: size, Scale: [2]float64{1, 1}}
}

// NewContainer returns a container with the given children and fresh aggregates.
func NewContainer(size float64, dir Direction, children ...*Node) *Node {
	n := &Node{RawSize: size, Direction: dir, Children: children}
	n.CalculateLengthAndBreadth()
	return n
}

func (n *Node) IsLeaf() bool { return n.Direction == None }

// CalculateLengthAndBreadth refreshes LocalLength and LocalBreadth from children,
// margin and spacing. Must run after every structural, RawSize or Spacing change.
func (n *Node) CalculateLengthAndBreadth() {
	axis := n.Direction.Axis()
	if axis < 0 {
		n.LocalLength, n.LocalBreadth = 0, 0
		return
	}
	a0, a1 := n.Margin.along(axis)
	c0, c1 := n.Margin.along(1 - axis)
	length := a0 + a1
	for i, c := range n.Children {
		if i > 0 {
			length += n.Spacing
		}
		length += c.RawSize
	}
	n.LocalLength = length
	n.LocalBreadth = c0 + n.RawSize + c1
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Leaves returns the leaves under n in document order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(x *Node) {
		if x.IsLeaf() {
			out = append(out, x)
		}
	})
	return out
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("leaf(%g)", n.RawSize)
	}
	return fmt.Sprintf("%s(%g, %d children)", n.Direction, n.RawSize, len(n.Children))
}
