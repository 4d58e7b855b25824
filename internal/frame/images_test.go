/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package frame

import (
	"image"
	"testing"
)

func TestCollectAndDealImages(t *testing.T) {
	root := mustCompile(t, pageYAML)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	leaves := root.Leaves()
	leaves[2].Image = img
	leaves[2].Scale = [2]float64{2, 2}
	leaves[2].Translation = [2]float64{1, -1}

	slots := CollectImages(root)
	if len(slots) != 4 {
		t.Fatalf("expected one slot per leaf, got %d", len(slots))
	}
	if slots[0].Image != nil || slots[2].Image != img {
		t.Fatalf("slots out of document order")
	}

	fresh := mustCompile(t, `{"row":[{},{},{}]}`)
	DealImages(fresh, slots)
	got := fresh.Leaves()
	if got[2].Image != img || got[2].Scale != [2]float64{2, 2} || got[2].Translation != [2]float64{1, -1} {
		t.Fatalf("content not dealt to third leaf: %+v", got[2])
	}
	if got[0].Image != nil || got[0].Scale != [2]float64{1, 1} {
		t.Fatalf("empty slot must reset leaf: %+v", got[0])
	}
}

func TestDealImagesKeepsContentBeyondSlots(t *testing.T) {
	root := mustCompile(t, `{"column":[{},{}]}`)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	root.Children[1].Image = img
	DealImages(root, []ImageSlot{{Scale: [2]float64{1, 1}}})
	if root.Children[1].Image != img {
		t.Fatalf("leaf beyond the last slot lost its content")
	}
}
