/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package framelayer

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	applog "gocomicframes/internal/log"
	"gocomicframes/internal/render"
)

// ErrUnknownFormat is returned by Export for an output extension it cannot write.
var ErrUnknownFormat = errors.New("unknown export format")

// Export paints the page into a PNG, PDF or single-page CBZ file chosen by
// path's extension.
// The hover highlight is left out.
func (l *Layer) Export(path, title string) error {
	h := l.hovered
	l.hovered = nil
	defer func() { l.hovered = h }()

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		r := render.NewRaster(int(math.Ceil(l.size.W)), int(math.Ceil(l.size.H)))
		l.Render(r)
		err = r.WritePNGFile(path)
	case ".cbz":
		r := render.NewRaster(int(math.Ceil(l.size.W)), int(math.Ceil(l.size.H)))
		l.Render(r)
		err = render.WriteCBZ(path, title, r.Image())
	case ".pdf":
		p := render.NewPDF(l.size.W, l.size.H, title)
		l.Render(p)
		err = p.WriteFile(path)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	l.log.Info("page exported", slog.String("path", path), applog.Size("page", l.size))
	return nil
}
