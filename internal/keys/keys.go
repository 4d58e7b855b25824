/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package keys tracks which keyboard keys are held. Codes follow the DOM
// KeyboardEvent.code names (AltLeft, ControlRight, KeyQ, ...).
package keys

import "sync"

const (
	AltLeft      = "AltLeft"
	AltRight     = "AltRight"
	ControlLeft  = "ControlLeft"
	ControlRight = "ControlRight"
	ShiftLeft    = "ShiftLeft"
	ShiftRight   = "ShiftRight"
	KeyQ         = "KeyQ"
	KeyS         = "KeyS"
	KeyW         = "KeyW"
)

// Modifiers answers whether a key is currently held.
type Modifiers interface {
	IsDown(code string) bool
}

// AnyDown reports whether any of codes is held.
func AnyDown(m Modifiers, codes ...string) bool {
	if m == nil {
		return false
	}
	for _, c := range codes {
		if m.IsDown(c) {
			return true
		}
	}
	return false
}

// Cache is a Modifiers fed by key press and release events.
type Cache struct {
	mu   sync.Mutex
	down map[string]struct{}
}

func NewCache() *Cache { return &Cache{down: map[string]struct{}{}} }

func (c *Cache) Press(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down == nil {
		c.down = map[string]struct{}{}
	}
	c.down[code] = struct{}{}
}

func (c *Cache) Release(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.down, code)
}

// Reset forgets every held key, e.g. when the window loses focus.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.down = map[string]struct{}{}
}

func (c *Cache) IsDown(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.down[code]
	return ok
}
