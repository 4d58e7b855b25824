/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package picture keeps a leaf's image covering its cell and maps pointer drags
// onto image translation and scale.
package picture

import (
	"image"
	"math"

	"gocomicframes/internal/frame"
	"gocomicframes/internal/vector"
)

// ImageSize returns the pixel size of img, or the zero size for nil.
func ImageSize(img image.Image) vector.Size {
	if img == nil {
		return vector.Size{}
	}
	b := img.Bounds()
	return vector.Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

// CoverScale is the smallest uniform scale at which an image of imgSize covers cell.
func CoverScale(imgSize, cell vector.Size) float64 {
	if imgSize.W <= 0 || imgSize.H <= 0 {
		return 1
	}
	return math.Max(cell.W/imgSize.W, cell.H/imgSize.H)
}

// Constrain returns a scale and translation for which the image covers cell
// without exposing any of its edges. The scale is uniform: both components
// carry the larger of the requested and the covering scale.
func Constrain(imgSize vector.Size, cell vector.Rect, scale, translation [2]float64) ([2]float64, [2]float64) {
	if imgSize.W <= 0 || imgSize.H <= 0 {
		return scale, translation
	}
	s := math.Max(scale[0], scale[1])
	s = math.Max(s, CoverScale(imgSize, cell.Size()))
	return [2]float64{s, s}, [2]float64{
		clamp(translation[0], (imgSize.W*s-cell.W)/2),
		clamp(translation[1], (imgSize.H*s-cell.H)/2),
	}
}

func clamp(v, limit float64) float64 {
	if limit < 0 {
		limit = 0
	}
	return math.Max(-limit, math.Min(limit, v))
}

// Placement returns the absolute rectangle the leaf's image is drawn into.
func Placement(l *frame.Layout) vector.Rect {
	n := l.Node
	is := ImageSize(n.Image)
	w, h := is.W*n.Scale[0], is.H*n.Scale[1]
	return vector.Rect{
		X: l.Origin.X + (l.Size.W-w)/2 + n.Translation[0],
		Y: l.Origin.Y + (l.Size.H-h)/2 + n.Translation[1],
		W: w,
		H: h,
	}
}

// ConstrainLeaf applies Constrain to a solved leaf that holds an image.
func ConstrainLeaf(l *frame.Layout) {
	n := l.Node
	if !n.IsLeaf() || n.Image == nil {
		return
	}
	n.Scale, n.Translation = Constrain(ImageSize(n.Image), l.Rect(), n.Scale, n.Translation)
}

// ConstrainAll constrains every image leaf under l.
func ConstrainAll(l *frame.Layout) {
	l.Walk(ConstrainLeaf)
}
