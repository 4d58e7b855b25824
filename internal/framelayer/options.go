/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package framelayer

import (
	"gocomicframes/internal/config"
	"gocomicframes/internal/keys"
)

// Bindings lists the key codes that select each gesture or edit. Any listed
// key being held activates the binding.
type Bindings struct {
	Translate       []string
	Scale           []string
	Expand          []string
	Erase           []string
	SplitHorizontal []string
	SplitVertical   []string
}

func DefaultBindings() Bindings {
	return Bindings{
		Translate:       []string{keys.AltLeft, keys.AltRight},
		Scale:           []string{keys.ControlLeft, keys.ControlRight},
		Expand:          []string{keys.ControlLeft, keys.ControlRight},
		Erase:           []string{keys.KeyQ},
		SplitHorizontal: []string{keys.KeyW},
		SplitVertical:   []string{keys.KeyS},
	}
}

// Options tunes the layer's gestures.
type Options struct {
	// ExpandDamping scales pointer travel into spacing growth.
	ExpandDamping float64
	// ScaleUnit is the pointer travel in pixels that doubles an image.
	ScaleUnit float64
	// BorderHit is the minimum thickness of a border's hit area in pixels.
	BorderHit float64
	// ClampBorders keeps border moves from producing negative cell sizes.
	ClampBorders bool
	Bindings     Bindings
}

func DefaultOptions() Options {
	return Options{ExpandDamping: 0.1, ScaleUnit: 200, BorderHit: 6, Bindings: DefaultBindings()}
}

// OptionsFromConfig maps the interaction and keys sections of cfg.
func OptionsFromConfig(cfg config.AppConfig) Options {
	in, k := cfg.Interaction, cfg.Keys
	return Options{
		ExpandDamping: in.ExpandDamping,
		ScaleUnit:     in.ScaleUnitPx,
		BorderHit:     in.BorderHitPx,
		ClampBorders:  in.ClampBorderSizes,
		Bindings: Bindings{
			Translate:       k.Translate,
			Scale:           k.Scale,
			Expand:          k.Expand,
			Erase:           k.Erase,
			SplitHorizontal: k.SplitHorizontal,
			SplitVertical:   k.SplitVertical,
		},
	}
}
