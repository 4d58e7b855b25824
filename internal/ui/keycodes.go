/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import "strings"

var namedCodes = map[string]string{
	"LeftAlt":      "AltLeft",
	"RightAlt":     "AltRight",
	"LeftControl":  "ControlLeft",
	"RightControl": "ControlRight",
	"LeftShift":    "ShiftLeft",
	"RightShift":   "ShiftRight",
	"LeftSuper":    "MetaLeft",
	"RightSuper":   "MetaRight",
	"Return":       "Enter",
	"BackSpace":    "Backspace",
	"Space":        "Space",
}

// DOMCode converts a fyne key name to the DOM KeyboardEvent.code the key
// bindings are written in. Unknown names pass through unchanged.
func DOMCode(name string) string {
	if code, ok := namedCodes[name]; ok {
		return code
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return "Key" + name
		case c >= 'a' && c <= 'z':
			return "Key" + strings.ToUpper(name)
		case c >= '0' && c <= '9':
			return "Digit" + name
		}
	}
	return name
}
