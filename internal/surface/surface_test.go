/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package surface

import (
	"image"
	"testing"

	"gocomicframes/internal/render"
	"gocomicframes/internal/vector"
)

type fakeLayer struct {
	Base
	name    string
	accept  bool
	consume bool
	log     *[]string

	accepts, hovers int
	moves           []vector.Pt
	ups             int
	payloads        []any
}

func (f *fakeLayer) note(s string) { *f.log = append(*f.log, f.name+":"+s) }

func (f *fakeLayer) Accepts(vector.Pt) (any, bool) {
	f.accepts++
	if !f.accept {
		return nil, false
	}
	return f.name + "-payload", true
}

func (f *fakeLayer) PointerDown(_ vector.Pt, payload any) {
	f.payloads = append(f.payloads, payload)
	f.note("down")
	f.Redraw()
}

func (f *fakeLayer) PointerMove(p vector.Pt, payload any) {
	f.moves = append(f.moves, p)
	f.payloads = append(f.payloads, payload)
	f.Redraw()
}

func (f *fakeLayer) PointerUp(_ vector.Pt, payload any) {
	f.ups++
	f.payloads = append(f.payloads, payload)
	f.note("up")
	f.Redraw()
}

func (f *fakeLayer) PointerHover(vector.Pt) {
	f.hovers++
	f.Redraw()
}

func (f *fakeLayer) Render(render.Canvas) { f.note("render") }

func (f *fakeLayer) Dropped(image.Image, vector.Pt) bool {
	f.note("drop")
	return f.consume
}

func newStack(t *testing.T) (*Surface, *fakeLayer, *fakeLayer, *[]string, *int) {
	t.Helper()
	var log []string
	repaints := 0
	s := New(vector.Size{W: 100, H: 100})
	s.OnRepaint = func() { repaints++ }
	bottom := &fakeLayer{name: "bottom", accept: true, consume: true, log: &log}
	top := &fakeLayer{name: "top", accept: true, log: &log}
	s.AddLayer(bottom)
	s.AddLayer(top)
	return s, bottom, top, &log, &repaints
}

func TestTopmostAcceptorOwnsDrag(t *testing.T) {
	s, bottom, top, _, _ := newStack(t)
	s.PointerDown(vector.Pt{X: 1, Y: 1})
	if bottom.accepts != 0 {
		t.Fatalf("lower layer was asked after the top one accepted")
	}
	s.PointerMove(vector.Pt{X: 2, Y: 2})
	s.PointerUp(vector.Pt{X: 2, Y: 2})
	if len(top.moves) != 1 || top.ups != 1 || len(bottom.moves) != 0 {
		t.Fatalf("events not routed to the owner: top=%+v bottom=%+v", top.moves, bottom.moves)
	}
	for _, p := range top.payloads {
		if p != "top-payload" {
			t.Fatalf("payload not handed back: %v", top.payloads)
		}
	}
	if s.Dragging() {
		t.Fatalf("still dragging after up")
	}
}

func TestFallsThroughToLowerLayer(t *testing.T) {
	s, bottom, top, _, _ := newStack(t)
	top.accept = false
	s.PointerDown(vector.Pt{})
	if top.accepts != 1 || bottom.accepts != 1 || !s.Dragging() {
		t.Fatalf("accept order wrong: top=%d bottom=%d", top.accepts, bottom.accepts)
	}
	top.accept, bottom.accept = false, false
	s.PointerUp(vector.Pt{})
	s.PointerDown(vector.Pt{})
	if s.Dragging() {
		t.Fatalf("no layer accepted, nothing should drag")
	}
}

func TestHoverGoesToEveryLayerWhenIdle(t *testing.T) {
	s, bottom, top, _, _ := newStack(t)
	s.PointerMove(vector.Pt{X: 5})
	if bottom.hovers != 1 || top.hovers != 1 {
		t.Fatalf("hover not broadcast: %d %d", bottom.hovers, top.hovers)
	}
	s.PointerDown(vector.Pt{})
	s.PointerMove(vector.Pt{X: 6})
	if bottom.hovers != 1 || top.hovers != 1 {
		t.Fatalf("hover delivered during a drag")
	}
}

func TestOneRepaintPerEvent(t *testing.T) {
	s, _, _, _, repaints := newStack(t)
	// Both layers turn dirty on hover; only one repaint may follow.
	s.PointerMove(vector.Pt{})
	if *repaints != 1 {
		t.Fatalf("repaints = %d, want 1", *repaints)
	}
	if s.RedrawIfRequired() || *repaints != 1 {
		t.Fatalf("flags not cleared after repaint")
	}
	s.PointerDown(vector.Pt{})
	s.PointerMove(vector.Pt{X: 1})
	s.PointerUp(vector.Pt{X: 1})
	if *repaints != 4 {
		t.Fatalf("repaints = %d, want 4", *repaints)
	}
}

func TestPointerLeaveFinishesDrag(t *testing.T) {
	s, _, top, _, _ := newStack(t)
	s.PointerDown(vector.Pt{})
	s.PointerMove(vector.Pt{X: 3})
	s.PointerLeave(vector.Pt{X: 3})
	if top.ups != 1 || s.Dragging() || !s.Outside {
		t.Fatalf("leave did not finish the drag: ups=%d dragging=%v outside=%v", top.ups, s.Dragging(), s.Outside)
	}
	s.PointerDown(vector.Pt{})
	if !s.Dragging() || s.Outside {
		t.Fatalf("new drag refused after leave")
	}
}

func TestDropTopDownFirstConsumerWins(t *testing.T) {
	s, _, _, log, _ := newStack(t)
	if !s.Drop(image.NewRGBA(image.Rect(0, 0, 1, 1)), vector.Pt{}) {
		t.Fatalf("drop not consumed")
	}
	want := []string{"top:drop", "bottom:drop"}
	if len(*log) != 2 || (*log)[0] != want[0] || (*log)[1] != want[1] {
		t.Fatalf("drop order = %v", *log)
	}
}

func TestRenderBottomUp(t *testing.T) {
	s, bottom, _, log, _ := newStack(t)
	bottom.Redraw()
	s.Render(render.NewRaster(1, 1))
	if len(*log) != 2 || (*log)[0] != "bottom:render" || (*log)[1] != "top:render" {
		t.Fatalf("render order = %v", *log)
	}
	if bottom.RedrawRequired() {
		t.Fatalf("render must clear the redraw flag")
	}
}
