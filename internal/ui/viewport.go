/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import "gocomicframes/internal/vector"

// Viewport places a page of fixed size centered in a view, scaled to fit.
type Viewport struct {
	Page   vector.Size
	Scale  float64
	Offset vector.Pt
}

// Fit returns the viewport showing page inside view with a uniform scale.
func Fit(page, view vector.Size) Viewport {
	v := Viewport{Page: page, Scale: 1}
	if page.W <= 0 || page.H <= 0 || view.W <= 0 || view.H <= 0 {
		return v
	}
	v.Scale = min(view.W/page.W, view.H/page.H)
	v.Offset = vector.Pt{X: (view.W - page.W*v.Scale) / 2, Y: (view.H - page.H*v.Scale) / 2}
	return v
}

// ToPage maps a view position to page coordinates.
func (v Viewport) ToPage(p vector.Pt) vector.Pt {
	return vector.RectToRect(v.Rect(), vector.FromOriginSize(vector.Pt{}, v.Page)).Apply(p)
}

// ToView maps a page position into the view.
func (v Viewport) ToView(p vector.Pt) vector.Pt {
	return vector.Translate(v.Offset.X, v.Offset.Y).Mul(vector.Scale(v.Scale, v.Scale)).Apply(p)
}

// Rect is the page's rectangle in view coordinates.
func (v Viewport) Rect() vector.Rect {
	return vector.R(v.Offset.X, v.Offset.Y, v.Page.W*v.Scale, v.Page.H*v.Scale)
}
