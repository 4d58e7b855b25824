/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package picture

import (
	"math"

	"gocomicframes/internal/gesture"
	"gocomicframes/internal/vector"
)

// MinScaleRatio floors the per-axis ratio reported by Scale.
const MinScaleRatio = 0.01

// Translate reports the pointer displacement from start on every step.
func Translate(start vector.Pt, apply func(delta vector.Pt)) gesture.Routine {
	return gesture.Loop(func(p vector.Pt) error {
		apply(p.Sub(start))
		return nil
	}, nil)
}

// Scale reports a per-axis ratio on every step: moving right grows x, moving
// up grows y, one unit of pointer travel doubles (or empties) the axis.
func Scale(start vector.Pt, unit float64, apply func(qx, qy float64)) gesture.Routine {
	if unit <= 0 {
		unit = 1
	}
	return gesture.Loop(func(p vector.Pt) error {
		d := p.Sub(start)
		apply(math.Max(MinScaleRatio, 1+d.X/unit), math.Max(MinScaleRatio, 1-d.Y/unit))
		return nil
	}, nil)
}
