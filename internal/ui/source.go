/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	// Decoders for images dropped onto cells.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"gocomicframes/internal/frame"
	"gocomicframes/internal/store"
)

// ErrNoUI is returned by Run in binaries built without the desktop toolkit.
var ErrNoUI = errors.New("desktop UI not built into this binary")

// DefaultMarkup is the page a session starts with when nothing else is given:
// a title tier over a two-cell row and a closing tier.
func DefaultMarkup() frame.Markup {
	return frame.Markup{
		Width:   180,
		Spacing: 2,
		Margin:  &frame.MarginMarkup{Top: 4, Bottom: 4, Left: 8, Right: 8},
		Column: []frame.Markup{
			{Height: 17},
			{Height: 25, Spacing: 2, Row: []frame.Markup{{Width: 45}, {Width: 55}}},
			{Height: 17},
		},
	}
}

// Source names where a session's markup came from.
type Source struct {
	Markup frame.Markup
	// Name is the library entry the markup was loaded from, if any.
	Name string
	// Path is the markup file the markup was read from, if any.
	Path string
}

// OpenLibrary opens the layout library on demand.
type OpenLibrary func(ctx context.Context) (*store.Library, error)

// ResolveMarkup interprets arg as a markup file when such a file exists, and
// as a library entry name otherwise. An empty arg yields DefaultMarkup.
func ResolveMarkup(ctx context.Context, arg string, open OpenLibrary) (Source, error) {
	if arg == "" {
		return Source{Markup: DefaultMarkup()}, nil
	}
	if data, err := os.ReadFile(arg); err == nil {
		m, err := frame.ParseMarkup(data)
		if err != nil {
			return Source{}, fmt.Errorf("%s: %w", arg, err)
		}
		return Source{Markup: m, Path: arg}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Source{}, fmt.Errorf("read markup: %w", err)
	}
	if open == nil {
		return Source{}, fmt.Errorf("%s: no such markup file", arg)
	}
	lib, err := open(ctx)
	if err != nil {
		return Source{}, err
	}
	defer lib.Close()
	m, err := lib.Load(ctx, arg)
	if err != nil {
		return Source{}, err
	}
	return Source{Markup: m, Name: arg}, nil
}

// LoadImage decodes an image file in any registered format.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
