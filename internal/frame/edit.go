/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package frame

// FindParent returns the container that owns target, or nil when target is the
// root or not part of the tree.
func FindParent(root, target *Node) *Node {
	for _, c := range root.Children {
		if c == target {
			return root
		}
		if p := FindParent(c, target); p != nil {
			return p
		}
	}
	return nil
}

// Erase removes target from the tree. A target that is the only child of its
// parent takes the parent with it, repeatedly, so no empty container survives.
// The root itself is never removed.
func Erase(root, target *Node) bool {
	parent := FindParent(root, target)
	if parent == nil {
		return false
	}
	if len(parent.Children) == 1 {
		return Erase(root, parent)
	}
	idx := indexOf(parent, target)
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	parent.CalculateLengthAndBreadth()
	return true
}

// SplitHorizontal splits target into two cells side by side.
func SplitHorizontal(root, target *Node) bool { return Split(root, target, Row) }

// SplitVertical splits target into two stacked cells.
func SplitVertical(root, target *Node) bool { return Split(root, target, Column) }

// Split divides target along dir. When the parent already splits along dir a new
// sibling is inserted after target and both share target's former size. Otherwise
// target is replaced by a dir-container holding two fresh leaves; target's image
// and transform do not survive that path.
func Split(root, target *Node, dir Direction) bool {
	if dir == None {
		return false
	}
	parent := FindParent(root, target)
	if parent == nil {
		return false
	}
	half := halve(target.RawSize, parent.Spacing)

	if parent.Direction == dir {
		idx := indexOf(parent, target)
		target.RawSize = half
		target.CalculateLengthAndBreadth()
		sibling := NewLeaf(half)
		parent.Children = append(parent.Children, nil)
		copy(parent.Children[idx+2:], parent.Children[idx+1:])
		parent.Children[idx+1] = sibling
		parent.CalculateLengthAndBreadth()
		return true
	}

	spacing := parent.Spacing
	if target.RawSize <= spacing {
		spacing = 0
	}
	c := &Node{RawSize: target.RawSize, Direction: dir, Spacing: spacing,
		Children: []*Node{NewLeaf(half), NewLeaf(half)}}
	c.CalculateLengthAndBreadth()
	parent.Children[indexOf(parent, target)] = c
	parent.CalculateLengthAndBreadth()
	return true
}

// halve splits size into two equal parts leaving room for one spacing gap.
func halve(size, spacing float64) float64 {
	if size <= spacing {
		return size / 2
	}
	return (size - spacing) / 2
}

func indexOf(parent, child *Node) int {
	for i, c := range parent.Children {
		if c == child {
			return i
		}
	}
	return -1
}
