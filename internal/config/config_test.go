/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// isolate points the config path at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, p)
	return p
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Interaction.ExpandDamping != 0.1 || cfg.Interaction.ScaleUnitPx != 200 || cfg.Interaction.ClampBorderSizes {
		t.Fatalf("unexpected interaction defaults: %+v", cfg.Interaction)
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := isolate(t)
	doc := `
canvas: {width: 600}
interaction:
  expand_damping: 0.25
  clamp_border_sizes: true
keys:
  erase: [Delete, " "]
library:
  path: /tmp/frames.sqlite
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.Width != 600 || cfg.Canvas.Height != 1188 {
		t.Fatalf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Interaction.ExpandDamping != 0.25 || !cfg.Interaction.ClampBorderSizes || cfg.Interaction.BorderHitPx != 6 {
		t.Fatalf("interaction = %+v", cfg.Interaction)
	}
	if diff := cmp.Diff([]string{"Delete"}, cfg.Keys.Erase); diff != "" {
		t.Fatalf("erase keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Defaults().Keys.Translate, cfg.Keys.Translate); diff != "" {
		t.Fatalf("unset bindings must keep defaults:\n%s", diff)
	}
	if got, _ := cfg.LibraryPath(); got != "/tmp/frames.sqlite" {
		t.Fatalf("LibraryPath = %q", got)
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("canvas: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.Canvas.Width != 840 {
		t.Fatalf("defaults not returned alongside the error: %+v", cfg.Canvas)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	want := Defaults()
	want.Canvas.Height = 900
	want.Keys.Scale = []string{"ShiftLeft"}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestDefaultLibraryPathNextToConfig(t *testing.T) {
	path := isolate(t)
	got, err := Defaults().LibraryPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(filepath.Dir(path), "library.sqlite"); got != want {
		t.Fatalf("LibraryPath = %q, want %q", got, want)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "DEBUG"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "C:/tmp/gcf.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "C:/tmp/gcf.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvCanvasWidth, "1000")
	t.Setenv(EnvExpandDamping, "not-a-number")
	t.Setenv(EnvBorderHitPx, "-3")
	t.Setenv(EnvClampBorders, "yes")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "X:/gcf.log")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.Width != 1000 || !cfg.Interaction.ClampBorderSizes {
		t.Fatalf("overrides not applied: %+v %+v", cfg.Canvas, cfg.Interaction)
	}
	if cfg.Interaction.ExpandDamping != 0.1 || cfg.Interaction.BorderHitPx != 6 {
		t.Fatalf("invalid overrides must be ignored: %+v", cfg.Interaction)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "X:/gcf.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
	if env, ok := EnvOverrideFor("canvas.width"); !ok || env != EnvCanvasWidth {
		t.Fatalf("EnvOverrideFor(canvas.width) = %q, %v", env, ok)
	}
	if _, ok := EnvOverrideFor("canvas.height"); ok {
		t.Fatalf("canvas.height is not overridden")
	}
	if _, ok := EnvOverrideFor("no.such.key"); ok {
		t.Fatalf("unknown key reported as overridden")
	}
}
