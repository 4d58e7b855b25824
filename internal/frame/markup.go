/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package frame

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMalformedMarkup is wrapped by every compile and parse failure.
var ErrMalformedMarkup = errors.New("malformed frame markup")

// Markup is the declarative, human-authored form of a frame tree.
// A node with Row or Column is a container; a node with neither is a leaf.
// Width/Height carry the raw size (first non-zero wins, default 1).
type Markup struct {
	Width   float64       `json:"width,omitempty" yaml:"width,omitempty"`
	Height  float64       `json:"height,omitempty" yaml:"height,omitempty"`
	Spacing float64       `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	Margin  *MarginMarkup `json:"margin,omitempty" yaml:"margin,omitempty"`
	Row     []Markup      `json:"row,omitempty" yaml:"row,omitempty"`
	Column  []Markup      `json:"column,omitempty" yaml:"column,omitempty"`
}

// MarginMarkup overrides individual margin sides; omitted sides are zero.
type MarginMarkup struct {
	Top    float64 `json:"top,omitempty" yaml:"top,omitempty"`
	Bottom float64 `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty" yaml:"left,omitempty"`
	Right  float64 `json:"right,omitempty" yaml:"right,omitempty"`
}

// ParseMarkup decodes JSON or YAML markup and validates it against the markup schema.
func ParseMarkup(data []byte) (Markup, error) {
	doc := bytes.TrimSpace(data)
	if len(doc) == 0 {
		return Markup{}, fmt.Errorf("%w: empty document", ErrMalformedMarkup)
	}
	if doc[0] != '{' {
		var generic any
		if err := yaml.Unmarshal(doc, &generic); err != nil {
			return Markup{}, fmt.Errorf("%w: yaml: %v", ErrMalformedMarkup, err)
		}
		converted, err := json.Marshal(generic)
		if err != nil {
			return Markup{}, fmt.Errorf("%w: yaml to json: %v", ErrMalformedMarkup, err)
		}
		doc = converted
	}
	if err := validateSchema(doc); err != nil {
		return Markup{}, err
	}
	var m Markup
	if err := json.Unmarshal(doc, &m); err != nil {
		return Markup{}, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}
	return m, nil
}

// CompileText parses and compiles markup in one step.
func CompileText(data []byte) (*Node, error) {
	m, err := ParseMarkup(data)
	if err != nil {
		return nil, err
	}
	return Compile(m)
}

// Compile builds a frame tree from markup. The root must be a container.
func Compile(m Markup) (*Node, error) {
	if m.Row == nil && m.Column == nil {
		return nil, fmt.Errorf("%w: root must be a row or column", ErrMalformedMarkup)
	}
	return compile(m, "$")
}

func compile(m Markup, path string) (*Node, error) {
	if m.Row != nil && m.Column != nil {
		return nil, fmt.Errorf("%w: %s: row and column are mutually exclusive", ErrMalformedMarkup, path)
	}
	if m.Width < 0 || m.Height < 0 || m.Spacing < 0 {
		return nil, fmt.Errorf("%w: %s: negative size or spacing", ErrMalformedMarkup, path)
	}
	size := m.Width
	if size == 0 {
		size = m.Height
	}
	if size == 0 {
		size = 1
	}
	n := &Node{RawSize: size, Spacing: m.Spacing}
	if mm := m.Margin; mm != nil {
		if mm.Top < 0 || mm.Bottom < 0 || mm.Left < 0 || mm.Right < 0 {
			return nil, fmt.Errorf("%w: %s: negative margin", ErrMalformedMarkup, path)
		}
		n.Margin = Margin{Top: mm.Top, Bottom: mm.Bottom, Left: mm.Left, Right: mm.Right}
	}

	children, key := m.Column, "column"
	n.Direction = Column
	if m.Row != nil {
		children, key = m.Row, "row"
		n.Direction = Row
	}
	if children == nil {
		n.Direction = None
		n.Scale = [2]float64{1, 1}
		return n, nil
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: %s.%s: container needs at least one child", ErrMalformedMarkup, path, key)
	}
	for i, cm := range children {
		c, err := compile(cm, fmt.Sprintf("%s.%s[%d]", path, key, i))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	n.CalculateLengthAndBreadth()
	return n, nil
}

// MinRawSize is the smallest raw size markup can carry. Border moves may push
// a leaf to zero or below; Decompile writes such sizes as MinRawSize.
const MinRawSize = 1e-3

// Decompile turns a frame tree back into markup. Raw sizes are written as
// height under a column and width under a row; the root writes its cross size.
func Decompile(root *Node) Markup {
	return decompile(root, None)
}

func decompile(n *Node, parent Direction) Markup {
	var m Markup
	size := n.RawSize
	if size < MinRawSize {
		size = MinRawSize
	}
	switch {
	case parent == Column:
		m.Height = size
	case parent == Row:
		m.Width = size
	case n.Direction == Row:
		m.Height = size
	default:
		m.Width = size
	}
	m.Spacing = n.Spacing
	if n.Margin != (Margin{}) {
		m.Margin = &MarginMarkup{Top: n.Margin.Top, Bottom: n.Margin.Bottom, Left: n.Margin.Left, Right: n.Margin.Right}
	}
	if n.IsLeaf() {
		return m
	}
	children := make([]Markup, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, decompile(c, n.Direction))
	}
	if n.Direction == Row {
		m.Row = children
	} else {
		m.Column = children
	}
	return m
}

// JSON renders markup as indented JSON.
func (m Markup) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
