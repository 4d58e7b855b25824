//go:build fyne && cgo

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
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"gocomicframes/internal/config"
	"gocomicframes/internal/crash"
	applog "gocomicframes/internal/log"
	"gocomicframes/internal/store"
	"gocomicframes/internal/vector"
)

// Run opens the editor window on source, a markup file or a library entry name.
func Run(source string) error {
	cfg, err := config.Load()
	if err != nil {
		applog.Init(applog.FromEnv())
		return err
	}
	applog.Init(applog.FromConfig(cfg.Logging))
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("source", source))

	openLib := func(ctx context.Context) (*store.Library, error) {
		path, err := cfg.LibraryPath()
		if err != nil {
			return nil, err
		}
		return store.Open(ctx, path)
	}
	src, err := ResolveMarkup(context.Background(), source, openLib)
	if err != nil {
		return err
	}
	ed, err := NewEditor(cfg, src)
	if err != nil {
		return err
	}
	defer crash.Recover(ed.CrashSession())

	fyneApp := app.NewWithID("gocomicframes")
	w := fyneApp.NewWindow(windowTitle(ed))
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 900), 480)
	winH := max(prefs.IntWithFallback("window.height", 1000), 480)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	fc := NewFrameCanvas(ed)
	ed.OnModify = func() {
		w.SetTitle(windowTitle(ed))
		status.SetText("Modified")
	}

	if dc, ok := w.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) { ed.KeyDown(string(ev.Name)) })
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) { ed.KeyUp(string(ev.Name)) })
	} else {
		l.Warn("canvas does not report key up/down; modifier gestures disabled")
	}

	fyneApp.Lifecycle().SetOnExitedForeground(ed.FocusLost)

	w.SetOnDropped(func(pos fyne.Position, uris []fyne.URI) {
		origin := fyne.CurrentApp().Driver().AbsolutePositionForObject(fc)
		p := vector.Pt{X: float64(pos.X - origin.X), Y: float64(pos.Y - origin.Y)}
		for _, u := range uris {
			ok, err := ed.DropFile(u.Path(), p)
			if err != nil {
				l.Error("drop failed", slog.String("uri", u.String()), slog.Any("err", err))
				dialog.ShowError(err, w)
				return
			}
			if ok {
				status.SetText("Placed " + u.Name())
				return
			}
		}
	})

	save := func(name string) {
		if err := ed.Save(context.Background(), name, openLib); err != nil {
			l.Error("save failed", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		w.SetTitle(windowTitle(ed))
		status.SetText("Saved " + name)
	}
	saveAs := func() {
		entry := widget.NewEntry()
		entry.SetText(ed.Source.Name)
		dialog.ShowForm("Save Layout", "Save", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Name", entry),
		}, func(ok bool) {
			if ok {
				save(entry.Text)
			}
		}, w)
	}
	saveItem := fyne.NewMenuItem("Save", func() {
		if ed.Source.Name == "" {
			saveAs()
			return
		}
		save(ed.Source.Name)
	})
	saveItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	w.Canvas().AddShortcut(saveItem.Shortcut, func(fyne.Shortcut) { saveItem.Action() })

	openItem := fyne.NewMenuItem("Open from Library…", func() { showLibrary(w, ed, openLib, status) })
	exportItem := fyne.NewMenuItem("Export…", func() {
		fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if wc == nil {
				return
			}
			path := wc.URI().Path()
			_ = wc.Close()
			if err := ed.Export(path); err != nil {
				l.Error("export failed", slog.Any("err", err))
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Exported " + path)
		}, w)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".pdf", ".cbz"}))
		fd.SetFileName(ed.Title() + ".png")
		fd.Show()
	})
	fileMenu := fyne.NewMenu("File", openItem, saveItem, fyne.NewMenuItem("Save As…", saveAs), exportItem)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu))

	w.SetContent(container.NewBorder(nil, status, nil, nil, fc))

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		w.Close()
	})

	w.ShowAndRun()
	return nil
}

func windowTitle(ed *Editor) string {
	mark := ""
	if ed.Modified() {
		mark = "*"
	}
	return fmt.Sprintf("%s%s - Go Comic Frames", ed.Title(), mark)
}

// showLibrary lists the stored layouts and opens the one picked.
func showLibrary(w fyne.Window, ed *Editor, open OpenLibrary, status *widget.Label) {
	ctx := context.Background()
	lib, err := open(ctx)
	if err != nil {
		dialog.ShowError(err, w)
		return
	}
	entries, err := lib.List(ctx)
	_ = lib.Close()
	if err != nil {
		dialog.ShowError(err, w)
		return
	}
	if len(entries) == 0 {
		dialog.ShowInformation("Library", "No layouts saved yet.", w)
		return
	}
	picked := -1
	list := widget.NewList(
		func() int { return len(entries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			e := entries[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s (%d cells, rev %d)", e.Name, e.Cells, e.Revision))
		},
	)
	list.OnSelected = func(i widget.ListItemID) { picked = i }
	scroll := container.NewVScroll(list)
	scroll.SetMinSize(fyne.NewSize(320, 240))
	dialog.ShowCustomConfirm("Open Layout", "Open", "Cancel", scroll, func(ok bool) {
		if !ok || picked < 0 {
			return
		}
		name := entries[picked].Name
		if err := ed.Open(ctx, name, open); err != nil {
			dialog.ShowError(err, w)
			return
		}
		w.SetTitle(windowTitle(ed))
		status.SetText("Opened " + name)
	}, w)
}

// FrameCanvas shows the page and forwards pointer input to the editor.
type FrameCanvas struct {
	widget.BaseWidget
	ed *Editor
}

var (
	_ desktop.Mouseable = (*FrameCanvas)(nil)
	_ desktop.Hoverable = (*FrameCanvas)(nil)
	_ fyne.Draggable    = (*FrameCanvas)(nil)
)

func NewFrameCanvas(ed *Editor) *FrameCanvas {
	fc := &FrameCanvas{ed: ed}
	fc.ExtendBaseWidget(fc)
	ed.OnChange = fc.Refresh
	return fc
}

func (fc *FrameCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	img := canvas.NewImageFromImage(fc.ed.Frame())
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScaleSmooth
	return &frameCanvasRenderer{fc: fc, bg: bg, img: img, objects: []fyne.CanvasObject{bg, img}}
}

func toPt(p fyne.Position) vector.Pt { return vector.Pt{X: float64(p.X), Y: float64(p.Y)} }

func (fc *FrameCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	fc.ed.PointerDown(toPt(ev.Position))
}

func (fc *FrameCanvas) MouseUp(ev *desktop.MouseEvent) { fc.ed.PointerUp(toPt(ev.Position)) }

func (fc *FrameCanvas) MouseIn(ev *desktop.MouseEvent) { fc.ed.PointerMove(toPt(ev.Position)) }

func (fc *FrameCanvas) MouseMoved(ev *desktop.MouseEvent) { fc.ed.PointerMove(toPt(ev.Position)) }

func (fc *FrameCanvas) MouseOut() { fc.ed.PointerLeave() }

func (fc *FrameCanvas) Dragged(ev *fyne.DragEvent) { fc.ed.PointerMove(toPt(ev.Position)) }

func (fc *FrameCanvas) DragEnd() { fc.ed.DragEnd() }

type frameCanvasRenderer struct {
	fc      *FrameCanvas
	bg      *canvas.Rectangle
	img     *canvas.Image
	objects []fyne.CanvasObject
}

func (r *frameCanvasRenderer) Destroy() {}

func (r *frameCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *frameCanvasRenderer) MinSize() fyne.Size { return fyne.NewSize(240, 320) }

func (r *frameCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.fc.ed.SetView(vector.Size{W: float64(size.Width), H: float64(size.Height)})
	page := r.fc.ed.View().Rect()
	r.img.Move(fyne.NewPos(float32(page.X), float32(page.Y)))
	r.img.Resize(fyne.NewSize(float32(page.W), float32(page.H)))
}

func (r *frameCanvasRenderer) Refresh() {
	r.img.Image = r.fc.ed.Frame()
	r.Layout(r.fc.Size())
	canvas.Refresh(r.img)
}
