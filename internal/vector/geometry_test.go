/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestRectContains(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	if r.Contains(Pt{9.5, 20}) {
		t.Fatalf("point left of rect should not be contained")
	}
}

func TestRectIntersect(t *testing.T) {
	a := R(0, 0, 10, 10)
	b := R(5, -5, 10, 10)
	if i := a.Intersect(b); i != R(5, 0, 5, 5) {
		t.Fatalf("unexpected intersection: %+v", i)
	}
	if i := a.Intersect(R(20, 20, 1, 1)); !i.Empty() {
		t.Fatalf("disjoint rects should intersect empty, got %+v", i)
	}
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
}

func TestRectToRect(t *testing.T) {
	m := RectToRect(R(0, 0, 100, 50), R(10, 20, 200, 25))
	if p := m.Apply(Pt{0, 0}); p != (Pt{10, 20}) {
		t.Fatalf("origin maps to %+v", p)
	}
	if p := m.Apply(Pt{100, 50}); p != (Pt{210, 45}) {
		t.Fatalf("far corner maps to %+v", p)
	}
}

func TestAxisAccessors(t *testing.T) {
	p := Pt{3, 4}
	s := Size{5, 6}
	if p.Axis(0) != 3 || p.Axis(1) != 4 || s.Axis(0) != 5 || s.Axis(1) != 6 {
		t.Fatalf("axis accessors wrong")
	}
}
