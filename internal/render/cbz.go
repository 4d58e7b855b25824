/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// ComicInfo is the metadata manifest comic readers look for in a CBZ.
type ComicInfo struct {
	XMLName          xml.Name `xml:"ComicInfo"`
	Title            string   `xml:"Title,omitempty"`
	PageCount        int      `xml:"PageCount"`
	ReadingDirection string   `xml:"ReadingDirection"`
}

// WriteCBZ packages pages as numbered PNGs with a ComicInfo.xml into a ZIP
// archive at path.
func WriteCBZ(path, title string, pages ...image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cbz: %w", err)
	}
	defer func() { _ = f.Close() }()
	zw := zip.NewWriter(f)

	pad := len(fmt.Sprint(len(pages)))
	var buf bytes.Buffer
	for i, pg := range pages {
		buf.Reset()
		if err := png.Encode(&buf, pg); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		if err := addZipFile(zw, fmt.Sprintf("%0*d.png", pad, i+1), buf.Bytes()); err != nil {
			return fmt.Errorf("zip add image: %w", err)
		}
	}

	info, err := xml.MarshalIndent(ComicInfo{Title: title, PageCount: len(pages), ReadingDirection: "LeftToRight"}, "", "  ")
	if err != nil {
		return fmt.Errorf("build manifest: %w", err)
	}
	if err := addZipFile(zw, "ComicInfo.xml", append([]byte(xml.Header), info...)); err != nil {
		return fmt.Errorf("zip add manifest: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return f.Close()
}

func addZipFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
