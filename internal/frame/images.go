/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package frame

import "image"

// ImageSlot is the content of one leaf, detached from its tree.
type ImageSlot struct {
	Image       image.Image
	Scale       [2]float64
	Translation [2]float64
}

// CollectImages returns one slot per leaf in document order, empty leaves included,
// so that DealImages on a recompiled tree puts content back into the same positions.
func CollectImages(root *Node) []ImageSlot {
	leaves := root.Leaves()
	slots := make([]ImageSlot, 0, len(leaves))
	for _, l := range leaves {
		slots = append(slots, ImageSlot{Image: l.Image, Scale: l.Scale, Translation: l.Translation})
	}
	return slots
}

// DealImages hands slots to the leaves of root in document order. Extra slots are
// dropped; leaves beyond the last slot keep their content.
func DealImages(root *Node, slots []ImageSlot) {
	for i, l := range root.Leaves() {
		if i >= len(slots) {
			return
		}
		s := slots[i]
		l.Image, l.Scale, l.Translation = s.Image, s.Scale, s.Translation
	}
}
