/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render is the painting boundary: layers describe a page as filled and
// stroked rectangles plus clipped images, and a Canvas turns that into pixels or PDF.
package render

import (
	"image"
	"image/color"

	"gocomicframes/internal/vector"
)

// Canvas receives drawing commands in surface coordinates (origin top-left).
type Canvas interface {
	Size() vector.Size
	FillRect(r vector.Rect, c color.Color)
	StrokeRect(r vector.Rect, c color.Color, width float64)
	// DrawImage draws img scaled into dst; nothing outside clip is touched.
	DrawImage(img image.Image, dst, clip vector.Rect)
}

var (
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.NRGBA{A: 255}
	// Highlight marks the border under the pointer.
	Highlight = color.NRGBA{G: 200, B: 200, A: 178}
)

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
