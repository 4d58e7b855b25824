/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"gocomicframes/internal/vector"
)

// Raster paints into an in-memory RGBA image.
type Raster struct {
	img    *image.RGBA
	scaler draw.Transformer
}

// NewRaster returns a w x h raster canvas. Images are resampled bilinearly.
func NewRaster(w, h int) *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, w, h)), scaler: draw.BiLinear}
}

// Image exposes the painted pixels.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() vector.Size {
	b := r.img.Bounds()
	return vector.Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

func (r *Raster) FillRect(rect vector.Rect, c color.Color) {
	pr := pixelRect(rect).Intersect(r.img.Bounds())
	if pr.Empty() {
		return
	}
	draw.Draw(r.img, pr, image.NewUniform(c), image.Point{}, draw.Over)
}

// StrokeRect draws the outline inside rect, at least one pixel wide.
func (r *Raster) StrokeRect(rect vector.Rect, c color.Color, width float64) {
	w := math.Max(1, width)
	r.FillRect(vector.R(rect.X, rect.Y, rect.W, w), c)
	r.FillRect(vector.R(rect.X, rect.Y+rect.H-w, rect.W, w), c)
	r.FillRect(vector.R(rect.X, rect.Y+w, w, rect.H-2*w), c)
	r.FillRect(vector.R(rect.X+rect.W-w, rect.Y+w, w, rect.H-2*w), c)
}

func (r *Raster) DrawImage(img image.Image, dst, clip vector.Rect) {
	if img == nil || dst.Empty() {
		return
	}
	pr := pixelRect(clip).Intersect(r.img.Bounds())
	if pr.Empty() {
		return
	}
	sb := img.Bounds()
	if sb.Empty() {
		return
	}
	sx := dst.W / float64(sb.Dx())
	sy := dst.H / float64(sb.Dy())
	s2d := f64.Aff3{
		sx, 0, dst.X - float64(sb.Min.X)*sx,
		0, sy, dst.Y - float64(sb.Min.Y)*sy,
	}
	target := r.img.SubImage(pr).(*image.RGBA)
	r.scaler.Transform(target, s2d, img, sb, draw.Over, nil)
}

// WritePNG encodes the raster as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNGFile writes the raster to path.
func (r *Raster) WritePNGFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := r.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

func pixelRect(r vector.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	)
}
