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
	"fmt"
	"image"
	"log/slog"
	"math"
	"path/filepath"

	"gocomicframes/internal/config"
	"gocomicframes/internal/crash"
	"gocomicframes/internal/frame"
	"gocomicframes/internal/framelayer"
	"gocomicframes/internal/keys"
	applog "gocomicframes/internal/log"
	"gocomicframes/internal/render"
	"gocomicframes/internal/surface"
	"gocomicframes/internal/vector"
)

// Editor is the toolkit-independent half of the front-end. It receives
// events in view coordinates and key names as the toolkit reports them.
type Editor struct {
	Layer   *framelayer.Layer
	Surface *surface.Surface
	Keys    *keys.Cache
	Source  Source

	// OnChange is called after the page needs repainting.
	OnChange func()
	// OnModify is called after an edit or border gesture changed the tree.
	OnModify func()

	view     Viewport
	last     vector.Pt
	modified bool
	raster   *render.Raster
	log      *slog.Logger
}

// NewEditor compiles src onto a page of the configured canvas size.
func NewEditor(cfg config.AppConfig, src Source) (*Editor, error) {
	root, err := frame.Compile(src.Markup)
	if err != nil {
		return nil, err
	}
	page := vector.Size{W: cfg.Canvas.Width, H: cfg.Canvas.Height}
	e := &Editor{
		Keys:   keys.NewCache(),
		Source: src,
		view:   Fit(page, page),
		log:    applog.WithComponent("ui"),
	}
	e.Layer = framelayer.New(root, page, e.Keys, framelayer.OptionsFromConfig(cfg))
	e.Layer.OnModify = func() {
		e.modified = true
		if e.OnModify != nil {
			e.OnModify()
		}
	}
	e.Surface = surface.New(page)
	e.Surface.OnRepaint = e.changed
	e.Surface.AddLayer(e.Layer)
	return e, nil
}

func (e *Editor) changed() {
	if e.OnChange != nil {
		e.OnChange()
	}
}

// SetView fits the page into a view of the given size.
func (e *Editor) SetView(size vector.Size) { e.view = Fit(e.Surface.Size(), size) }

func (e *Editor) View() Viewport { return e.view }

// Modified reports whether the tree changed since it was loaded or saved.
func (e *Editor) Modified() bool { return e.modified }

func (e *Editor) PointerDown(p vector.Pt) {
	e.last = e.view.ToPage(p)
	e.Surface.PointerDown(e.last)
}

func (e *Editor) PointerMove(p vector.Pt) {
	e.last = e.view.ToPage(p)
	e.Surface.PointerMove(e.last)
}

func (e *Editor) PointerUp(p vector.Pt) {
	e.last = e.view.ToPage(p)
	e.Surface.PointerUp(e.last)
}

// DragEnd releases at the last known position; some toolkits end a drag without one.
func (e *Editor) DragEnd() { e.Surface.PointerUp(e.last) }

func (e *Editor) PointerLeave() { e.Surface.PointerLeave(e.last) }

func (e *Editor) KeyDown(name string) { e.Keys.Press(DOMCode(name)) }

func (e *Editor) KeyUp(name string) { e.Keys.Release(DOMCode(name)) }

// FocusLost forgets every held key, as their releases will not be reported.
func (e *Editor) FocusLost() { e.Keys.Reset() }

// DropFile decodes the image at path and drops it at view position p.
func (e *Editor) DropFile(path string, p vector.Pt) (bool, error) {
	img, err := LoadImage(path)
	if err != nil {
		return false, err
	}
	return e.Drop(img, p), nil
}

func (e *Editor) Drop(img image.Image, p vector.Pt) bool {
	return e.Surface.Drop(img, e.view.ToPage(p))
}

// Frame paints the page at page resolution and returns the pixels.
func (e *Editor) Frame() *image.RGBA {
	size := e.Surface.Size()
	w, h := int(math.Ceil(size.W)), int(math.Ceil(size.H))
	if e.raster == nil || e.raster.Image().Bounds().Dx() != w || e.raster.Image().Bounds().Dy() != h {
		e.raster = render.NewRaster(w, h)
	}
	e.Surface.Render(e.raster)
	return e.raster.Image()
}

// Title names the document for window titles and PDF metadata.
func (e *Editor) Title() string {
	switch {
	case e.Source.Name != "":
		return e.Source.Name
	case e.Source.Path != "":
		return filepath.Base(e.Source.Path)
	}
	return "Untitled"
}

// Save stores the current markup in the library under name and remembers it
// as the document's name.
func (e *Editor) Save(ctx context.Context, name string, open OpenLibrary) error {
	lib, err := open(ctx)
	if err != nil {
		return err
	}
	defer lib.Close()
	if err := lib.Save(ctx, name, e.Layer.Markup()); err != nil {
		return err
	}
	e.Source.Name = name
	e.modified = false
	e.log.Info("layout saved", slog.String("name", name), slog.String("library", lib.Path()))
	return nil
}

// Open replaces the tree with the library entry name. Images stay in place
// cell by cell.
func (e *Editor) Open(ctx context.Context, name string, open OpenLibrary) error {
	lib, err := open(ctx)
	if err != nil {
		return err
	}
	defer lib.Close()
	m, err := lib.Load(ctx, name)
	if err != nil {
		return err
	}
	if err := e.Layer.SetMarkup(m); err != nil {
		return err
	}
	e.Source = Source{Markup: m, Name: name}
	e.modified = false
	e.Surface.RedrawIfRequired()
	return nil
}

func (e *Editor) Export(path string) error { return e.Layer.Export(path, e.Title()) }

// Autosave snapshots the current markup as JSON.
func (e *Editor) Autosave() ([]byte, error) {
	data, err := e.Layer.Markup().JSON()
	if err != nil {
		return nil, fmt.Errorf("autosave markup: %w", err)
	}
	return data, nil
}

// CrashSession puts crash artifacts next to the config file.
func (e *Editor) CrashSession() *crash.Session {
	s := &crash.Session{Autosave: e.Autosave}
	if p, err := config.ConfigPath(); err == nil {
		s.Dir = filepath.Join(filepath.Dir(p), "crash")
	}
	return s
}
