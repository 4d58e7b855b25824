/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package framelayer is the interactive layer that owns a page's frame tree:
// it hit-tests cells and borders, runs the edit, border and image gestures,
// and paints the page.
package framelayer

import (
	"fmt"
	"image"
	"log/slog"

	"gocomicframes/internal/frame"
	"gocomicframes/internal/gesture"
	"gocomicframes/internal/keys"
	applog "gocomicframes/internal/log"
	"gocomicframes/internal/picture"
	"gocomicframes/internal/render"
	"gocomicframes/internal/surface"
	"gocomicframes/internal/vector"
)

// Kind tells which gesture a payload belongs to.
type Kind int

const (
	// Edit payloads come from an erase or split that already happened on press.
	Edit Kind = iota
	Border
	Image
)

func (k Kind) String() string {
	switch k {
	case Edit:
		return "edit"
	case Border:
		return "border"
	case Image:
		return "image"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Payload is what Accepts hands to the surface for the duration of a drag.
type Payload struct {
	Kind   Kind
	Border *frame.Border // Border payloads
	Cell   *frame.Layout // Image payloads
}

// hover identifies a border independently of any solved layout.
type hover struct {
	container *frame.Node
	index     int
}

// Layer renders and edits one frame tree.
type Layer struct {
	surface.Base
	*gesture.Sequencer

	root *frame.Node
	size vector.Size
	mods keys.Modifiers
	opts Options

	hovered *hover

	// OnModify is called after every change to the tree structure or raw sizes,
	// once per gesture.
	OnModify func()

	log *slog.Logger
}

// New returns a layer for root drawn onto a surface of the given size.
// A nil mods means no key is ever held.
func New(root *frame.Node, size vector.Size, mods keys.Modifiers, opts Options) *Layer {
	l := &Layer{root: root, size: size, mods: mods, opts: opts, log: applog.WithComponent("framelayer")}
	l.Sequencer = gesture.NewSequencer(l.pointer, l.log)
	l.constrainAll()
	return l
}

// Root exposes the current tree. Callers that mutate it must call Refresh.
func (l *Layer) Root() *frame.Node { return l.root }

func (l *Layer) Size() vector.Size { return l.size }

// Resize changes the page size; cells change shape, so images are re-constrained.
func (l *Layer) Resize(size vector.Size) {
	l.size = size
	l.constrainAll()
	l.Redraw()
}

// Refresh re-constrains every image and schedules a redraw.
func (l *Layer) Refresh() {
	l.constrainAll()
	l.Redraw()
}

func (l *Layer) solve() *frame.Layout {
	return frame.Solve(l.root, l.size, vector.Pt{})
}

func (l *Layer) constrainAll() {
	picture.ConstrainAll(l.solve())
}

func (l *Layer) held(codes []string) bool { return keys.AnyDown(l.mods, codes...) }

func (l *Layer) modified(op string) {
	l.log.Info("frame tree modified", slog.String("op", op), slog.Int("cells", len(l.root.Leaves())))
	if l.OnModify != nil {
		l.OnModify()
	}
}

// commit returns a gesture finish func reporting op once.
func (l *Layer) commit(op string) func() error {
	return func() error {
		l.modified(op)
		return nil
	}
}

// Accepts claims a press. A held edit key over a cell edits the tree right
// away. Otherwise borders are tested before image cells so a thin gap stays
// grabbable next to a picture. Empty cells are not claimed.
func (l *Layer) Accepts(p vector.Pt) (any, bool) {
	lay := l.solve()
	cell := frame.FindLayoutAt(lay, p)
	if cell != nil {
		if op, ok := l.edit(cell.Node); ok {
			if op != "" {
				l.hovered = nil
				l.constrainAll()
				l.Redraw()
				l.modified(op)
			}
			return &Payload{Kind: Edit}, true
		}
	}
	if b := frame.FindBorderAt(lay, p, l.opts.BorderHit); b != nil {
		return &Payload{Kind: Border, Border: b}, true
	}
	if cell != nil && cell.Node.Image != nil {
		return &Payload{Kind: Image, Cell: cell}, true
	}
	return nil, false
}

// edit applies the edit whose key is held. ok reports whether an edit key was
// held at all; op is empty when the edit did not change the tree.
func (l *Layer) edit(n *frame.Node) (op string, ok bool) {
	var changed bool
	switch {
	case l.held(l.opts.Bindings.Erase):
		op, changed = "erase", frame.Erase(l.root, n)
	case l.held(l.opts.Bindings.SplitHorizontal):
		op, changed = "split horizontal", frame.SplitHorizontal(l.root, n)
	case l.held(l.opts.Bindings.SplitVertical):
		op, changed = "split vertical", frame.SplitVertical(l.root, n)
	default:
		return "", false
	}
	if !changed {
		l.log.Debug("edit had no effect", slog.String("op", op))
		return "", true
	}
	return op, true
}

// pointer starts the routine for an accepted payload.
func (l *Layer) pointer(p vector.Pt, payload any) gesture.Routine {
	pl, ok := payload.(*Payload)
	if !ok {
		panic(fmt.Sprintf("framelayer: foreign payload %T", payload))
	}
	l.log.Debug("gesture", slog.String("kind", pl.Kind.String()), applog.Point("at", p))
	switch pl.Kind {
	case Border:
		if l.held(l.opts.Bindings.Expand) {
			return l.expandBorder(p, pl.Border)
		}
		return l.moveBorder(p, pl.Border)
	case Image:
		switch {
		case l.held(l.opts.Bindings.Translate):
			return l.translateImage(p, pl.Cell)
		case l.held(l.opts.Bindings.Scale):
			return l.scaleImage(p, pl.Cell)
		}
	}
	return nil
}

func (l *Layer) translateImage(p vector.Pt, cell *frame.Layout) gesture.Routine {
	n := cell.Node
	origin := n.Translation
	return picture.Translate(p, func(d vector.Pt) {
		n.Translation = [2]float64{origin[0] + d.X, origin[1] + d.Y}
		picture.ConstrainLeaf(cell)
		l.Redraw()
	})
}

func (l *Layer) scaleImage(p vector.Pt, cell *frame.Layout) gesture.Routine {
	n := cell.Node
	origin := n.Scale[0]
	return picture.Scale(p, l.opts.ScaleUnit, func(qx, qy float64) {
		s := origin * max(qx, qy)
		n.Scale = [2]float64{s, s}
		picture.ConstrainLeaf(cell)
		l.Redraw()
	})
}

// PointerHover tracks the border under p for highlighting.
func (l *Layer) PointerHover(p vector.Pt) {
	var h *hover
	if b := frame.FindBorderAt(l.solve(), p, l.opts.BorderHit); b != nil {
		h = &hover{container: b.Layout.Node, index: b.Index}
	}
	if sameHover(h, l.hovered) {
		return
	}
	l.hovered = h
	l.Redraw()
}

func sameHover(a, b *hover) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Dropped places img into the cell under p, scaled to cover it.
func (l *Layer) Dropped(img image.Image, p vector.Pt) bool {
	if img == nil {
		return false
	}
	cell := frame.FindLayoutAt(l.solve(), p)
	if cell == nil {
		return false
	}
	n := cell.Node
	s := picture.CoverScale(picture.ImageSize(img), cell.Size)
	n.Image = img
	n.Scale = [2]float64{s, s}
	n.Translation = [2]float64{}
	picture.ConstrainLeaf(cell)
	l.Redraw()
	l.log.Info("image dropped", applog.Point("at", p), applog.Size("cell", cell.Size), slog.Float64("scale", s))
	return true
}

// Render paints the page, every cell with its image, and the hovered border.
func (l *Layer) Render(c render.Canvas) {
	lay := l.solve()
	c.FillRect(vector.FromOriginSize(vector.Pt{}, l.size), render.White)
	var hoverRect *vector.Rect
	lay.Walk(func(x *frame.Layout) {
		if x.Leaf() {
			renderCell(c, x)
			return
		}
		if h := l.hovered; h != nil && h.container == x.Node && h.index < len(x.Children) {
			r := frame.BorderRect(x, h.index)
			hoverRect = &r
		}
	})
	if hoverRect != nil {
		c.FillRect(*hoverRect, render.Highlight)
	}
}

func renderCell(c render.Canvas, cell *frame.Layout) {
	r := cell.Rect()
	c.FillRect(r, render.White)
	if cell.Node.Image != nil {
		c.DrawImage(cell.Node.Image, picture.Placement(cell), r)
	}
	c.StrokeRect(r, render.Black, 1)
}

// Markup decompiles the current tree.
func (l *Layer) Markup() frame.Markup { return frame.Decompile(l.root) }

// SetMarkup replaces the tree with one compiled from m. Images move over to the
// new tree leaf by leaf in document order. On error the current tree stays.
func (l *Layer) SetMarkup(m frame.Markup) error {
	root, err := frame.Compile(m)
	if err != nil {
		return err
	}
	l.replace(root)
	return nil
}

// SetMarkupText is SetMarkup for JSON or YAML text.
func (l *Layer) SetMarkupText(data []byte) error {
	root, err := frame.CompileText(data)
	if err != nil {
		return err
	}
	l.replace(root)
	return nil
}

func (l *Layer) replace(root *frame.Node) {
	frame.DealImages(root, frame.CollectImages(l.root))
	l.root = root
	l.hovered = nil
	l.constrainAll()
	l.Redraw()
	l.log.Info("frame tree replaced", slog.Int("cells", len(root.Leaves())))
}
