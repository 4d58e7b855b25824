/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package surface composes interactive layers over one drawing area. It routes
// pointer events to the layer that owns the current drag and coalesces
// repaints to at most one per input event.
package surface

import (
	"image"
	"log/slog"

	applog "gocomicframes/internal/log"
	"gocomicframes/internal/render"
	"gocomicframes/internal/vector"
)

// Layer is one stacked participant of a Surface.
type Layer interface {
	// Accepts reports whether the layer claims a drag starting at p. The
	// payload is handed back on every pointer call of that drag.
	Accepts(p vector.Pt) (payload any, ok bool)
	PointerDown(p vector.Pt, payload any)
	PointerMove(p vector.Pt, payload any)
	PointerUp(p vector.Pt, payload any)
	PointerHover(p vector.Pt)
	Render(c render.Canvas)
	// Dropped offers an externally dropped image; true consumes it.
	Dropped(img image.Image, p vector.Pt) bool
	RedrawRequired() bool
	ClearRedraw()
}

// Base carries the redraw flag and no-op hover and drop handling for layers.
type Base struct {
	dirty bool
}

// Redraw requests a repaint on the next RedrawIfRequired.
func (b *Base) Redraw() { b.dirty = true }

func (b *Base) RedrawRequired() bool { return b.dirty }

func (b *Base) ClearRedraw() { b.dirty = false }

func (b *Base) PointerHover(vector.Pt) {}

func (b *Base) Dropped(image.Image, vector.Pt) bool { return false }

// Surface stacks layers, bottom first.
type Surface struct {
	size     vector.Size
	layers   []Layer
	dragging Layer
	payload  any

	// Outside is true while the pointer is not over the surface.
	Outside bool

	// OnRepaint is called at most once per input event when a layer is dirty.
	OnRepaint func()

	log *slog.Logger
}

func New(size vector.Size) *Surface {
	return &Surface{size: size, Outside: true, log: applog.WithComponent("surface")}
}

func (s *Surface) Size() vector.Size { return s.size }

// SetSize changes the drawing area and schedules a repaint.
func (s *Surface) SetSize(size vector.Size) {
	if size == s.size {
		return
	}
	s.size = size
	for _, l := range s.layers {
		if r, ok := l.(interface{ Resize(vector.Size) }); ok {
			r.Resize(size)
		}
	}
	s.RedrawIfRequired()
}

// AddLayer pushes l on top of the stack.
func (s *Surface) AddLayer(l Layer) {
	s.layers = append(s.layers, l)
}

// Dragging reports whether a layer currently owns a drag.
func (s *Surface) Dragging() bool { return s.dragging != nil }

// PointerDown offers p to the layers from the top down; the first acceptor
// owns the drag until PointerUp or PointerLeave.
func (s *Surface) PointerDown(p vector.Pt) {
	s.Outside = false
	if s.dragging != nil {
		s.release(p)
	}
	for i := len(s.layers) - 1; i >= 0; i-- {
		l := s.layers[i]
		payload, ok := l.Accepts(p)
		if !ok {
			continue
		}
		s.dragging, s.payload = l, payload
		s.log.Debug("drag started", slog.Int("layer", i), applog.Point("at", p))
		l.PointerDown(p, payload)
		break
	}
	s.RedrawIfRequired()
}

// PointerMove steps the active drag, or lets every layer track the hover.
func (s *Surface) PointerMove(p vector.Pt) {
	s.Outside = false
	if s.dragging != nil {
		s.dragging.PointerMove(p, s.payload)
	} else {
		for _, l := range s.layers {
			l.PointerHover(p)
		}
	}
	s.RedrawIfRequired()
}

func (s *Surface) PointerUp(p vector.Pt) {
	if s.dragging != nil {
		s.release(p)
	}
	s.RedrawIfRequired()
}

// PointerLeave finishes any drag as if the pointer had been released at p.
func (s *Surface) PointerLeave(p vector.Pt) {
	if s.dragging != nil {
		s.release(p)
	}
	s.Outside = true
	s.RedrawIfRequired()
}

func (s *Surface) release(p vector.Pt) {
	l, payload := s.dragging, s.payload
	s.dragging, s.payload = nil, nil
	l.PointerUp(p, payload)
	s.log.Debug("drag finished")
}

// Drop offers img to the layers from the top down.
func (s *Surface) Drop(img image.Image, p vector.Pt) bool {
	consumed := false
	for i := len(s.layers) - 1; i >= 0; i-- {
		if s.layers[i].Dropped(img, p) {
			consumed = true
			break
		}
	}
	s.RedrawIfRequired()
	return consumed
}

// Render paints every layer bottom-up and clears their redraw flags.
func (s *Surface) Render(c render.Canvas) {
	for _, l := range s.layers {
		l.Render(c)
		l.ClearRedraw()
	}
}

// RedrawIfRequired calls OnRepaint once when any layer asked for a redraw.
func (s *Surface) RedrawIfRequired() bool {
	dirty := false
	for _, l := range s.layers {
		if l.RedrawRequired() {
			dirty = true
			l.ClearRedraw()
		}
	}
	if dirty && s.OnRepaint != nil {
		s.OnRepaint()
	}
	return dirty
}
