/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"gocomicframes/internal/frame"
)

func openTemp(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(context.Background(), filepath.Join(t.TempDir(), "lib", "library.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func page() frame.Markup {
	return frame.Markup{
		Width:   180,
		Spacing: 2,
		Margin:  &frame.MarginMarkup{Top: 4, Bottom: 4, Left: 8, Right: 8},
		Column: []frame.Markup{
			{Height: 17},
			{Height: 17, Row: []frame.Markup{{Width: 1}, {Width: 2}}},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	lib := openTemp(t)
	if err := lib.Save(ctx, "  four-koma ", page()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := lib.Load(ctx, "four-koma")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(page(), got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestSaveReplacesAndBumpsRevision(t *testing.T) {
	ctx := context.Background()
	lib := openTemp(t)
	if err := lib.Save(ctx, "a", page()); err != nil {
		t.Fatal(err)
	}
	first, err := lib.List(ctx)
	if err != nil || len(first) != 1 {
		t.Fatalf("List = %+v, %v", first, err)
	}
	if _, err := uuid.Parse(first[0].ID); err != nil {
		t.Fatalf("id %q: %v", first[0].ID, err)
	}
	single := frame.Markup{Row: []frame.Markup{{Width: 1}}}
	if err := lib.Save(ctx, "a", single); err != nil {
		t.Fatal(err)
	}
	if err := lib.Save(ctx, "b", page()); err != nil {
		t.Fatal(err)
	}
	entries, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "a" || entries[1].Name != "b" {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].ID != first[0].ID || entries[1].ID == entries[0].ID {
		t.Fatalf("ids: a %q -> %q, b %q", first[0].ID, entries[0].ID, entries[1].ID)
	}
	if entries[0].Revision != 2 || entries[0].Cells != 1 || entries[1].Cells != 3 {
		t.Fatalf("entry a = %+v, b = %+v", entries[0], entries[1])
	}
	if entries[0].UpdatedAt.Before(entries[0].CreatedAt) || entries[0].CreatedAt.IsZero() {
		t.Fatalf("timestamps not recorded: %+v", entries[0])
	}
}

func TestSaveRejectsInvalidMarkup(t *testing.T) {
	lib := openTemp(t)
	bad := frame.Markup{Row: []frame.Markup{{Width: 1}}, Column: []frame.Markup{{Height: 1}}}
	if err := lib.Save(context.Background(), "bad", bad); !errors.Is(err, frame.ErrMalformedMarkup) {
		t.Fatalf("Save(bad) = %v", err)
	}
	if err := lib.Save(context.Background(), " ", page()); err == nil {
		t.Fatalf("empty name accepted")
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	lib := openTemp(t)
	if _, err := lib.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing) = %v", err)
	}
	if err := lib.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(missing) = %v", err)
	}
	if err := lib.Save(ctx, "x", page()); err != nil {
		t.Fatal(err)
	}
	if err := lib.Delete(ctx, "x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := lib.Load(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted layout still loadable: %v", err)
	}
}

func TestReopenKeepsLayouts(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.sqlite")
	lib, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := lib.Save(ctx, "kept", page()); err != nil {
		t.Fatal(err)
	}
	if err := lib.Close(); err != nil {
		t.Fatal(err)
	}
	lib, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer lib.Close()
	if _, err := lib.Load(ctx, "kept"); err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatalf("empty path accepted")
	}
}
