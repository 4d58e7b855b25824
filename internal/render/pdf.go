/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"gocomicframes/internal/vector"
)

// PDF paints onto a single gofpdf page measured in points.
type PDF struct {
	pdf    *gofpdf.Fpdf
	size   vector.Size
	images int
	err    error
}

// NewPDF starts a one-page document of w x h points.
func NewPDF(w, h float64, title string) *PDF {
	sz := gofpdf.SizeType{Wd: w, Ht: h}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: sz})
	pdf.SetTitle(title, true)
	pdf.SetCreator("gocomicframes", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPageFormat("P", sz)
	return &PDF{pdf: pdf, size: vector.Size{W: w, H: h}}
}

func (p *PDF) Size() vector.Size { return p.size }

func (p *PDF) FillRect(r vector.Rect, c color.Color) {
	n := nrgba(c)
	p.withAlpha(n.A, func() {
		p.pdf.SetFillColor(int(n.R), int(n.G), int(n.B))
		p.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
	})
}

func (p *PDF) StrokeRect(r vector.Rect, c color.Color, width float64) {
	n := nrgba(c)
	p.withAlpha(n.A, func() {
		p.pdf.SetDrawColor(int(n.R), int(n.G), int(n.B))
		p.pdf.SetLineWidth(width)
		p.pdf.Rect(r.X, r.Y, r.W, r.H, "D")
	})
}

func (p *PDF) DrawImage(img image.Image, dst, clip vector.Rect) {
	if img == nil || dst.Empty() || p.err != nil {
		return
	}
	p.images++
	name := fmt.Sprintf("cell-image-%d", p.images)
	var buf bytes.Buffer
	if err := png.Encode(&buf, toNRGBA(img)); err != nil {
		p.err = fmt.Errorf("encode image: %w", err)
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader(name, opts, &buf)
	p.pdf.ClipRect(clip.X, clip.Y, clip.W, clip.H, false)
	p.pdf.ImageOptions(name, dst.X, dst.Y, dst.W, dst.H, false, opts, 0, "")
	p.pdf.ClipEnd()
}

// Write finishes the document and writes it to w.
func (p *PDF) Write(w io.Writer) error {
	if p.err != nil {
		return p.err
	}
	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WriteFile finishes the document and writes it to path.
func (p *PDF) WriteFile(path string) error {
	if p.err != nil {
		return p.err
	}
	if err := p.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (p *PDF) withAlpha(a uint8, fn func()) {
	if a == 255 {
		fn()
		return
	}
	p.pdf.SetAlpha(float64(a)/255, "Normal")
	fn()
	p.pdf.SetAlpha(1, "Normal")
}

// toNRGBA flattens img to 8-bit NRGBA so the PNG encoder never emits 16-bit data.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
