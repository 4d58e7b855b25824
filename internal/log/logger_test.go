/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gocomicframes/internal/config"
	"gocomicframes/internal/vector"
)

// TestInitAndStructuredLoggingToFile verifies that Init with a file handler writes JSON logs
// and that static and contextual attributes are present.
func TestInitAndStructuredLoggingToFile(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "gcf_log.json")
	var console bytes.Buffer
	Init(Options{Level: "debug", Format: "json", File: fpath, Writer: &console})
	t.Cleanup(func() { Init(Options{Level: "error", Writer: &bytes.Buffer{}}) })

	l := WithOperation(WithComponent("testcomp"), "op1")
	l.Info("hello world", slog.String("k", "v"))

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(b))
	var last string
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			last = s
		}
	}
	if last == "" {
		t.Fatalf("no log lines found")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal json log: %v", err)
	}
	if m["app"] != "gocomicframes" {
		t.Fatalf("missing app attr: %v", m["app"])
	}
	if _, ok := m["ver"].(string); !ok {
		t.Fatalf("missing ver attr")
	}
	if m["component"] != "testcomp" || m["op"] != "op1" || m["msg"] != "hello world" {
		t.Fatalf("context attrs mismatch: %v", m)
	}
	if !strings.Contains(console.String(), `"msg":"hello world"`) {
		t.Fatalf("console sink did not receive the record: %q", console.String())
	}
}

func TestFromEnvAndGetenv(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "warn")
	t.Setenv(config.EnvLogFormat, "json")
	t.Setenv(config.EnvLogSource, "true")
	t.Setenv(config.EnvLogFile, "")

	opts := FromEnv()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "" {
		t.Fatalf("FromEnv mismatch: %+v", opts)
	}
	if v := getenv("GCF_SOME_UNSET_VAR", "fallback"); v != "fallback" {
		t.Fatalf("getenv fallback failed: %q", v)
	}
}

func TestFromConfig(t *testing.T) {
	opts := FromConfig(config.LoggingConfig{Level: "debug", Format: "console", Source: true, File: "x.log"})
	if opts.Level != "debug" || opts.Format != "console" || !opts.AddSource || opts.File != "x.log" {
		t.Fatalf("FromConfig mismatch: %+v", opts)
	}
}

func TestConsoleHandler_Behavior(t *testing.T) {
	var buf bytes.Buffer
	h := newConsoleHandler(&buf, slog.LevelWarn, true)
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Fatalf("info should not be enabled at warn level")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Fatalf("error should be enabled at warn level")
	}

	h2 := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).WithGroup("grp")

	r := slog.Record{Time: time.Now(), Level: slog.LevelError, Message: "boom"}
	r.AddAttrs(slog.Int("n", 42), slog.Float64("pi", 3.14), slog.Bool("ok", true),
		slog.Duration("took", 1500*time.Millisecond), slog.Any("err", errors.New("disk full")))
	if err := h2.Handle(ctx, r); err != nil {
		t.Fatalf("handle error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{" ERR ", "boom", " k=v", "grp.n=42", "grp.pi=3.14", "grp.ok=true",
		"grp.took=1.5s", `grp.err="disk full"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %q", want, out)
		}
	}
	if strings.Contains(out, "grp.k=v") {
		t.Fatalf("attrs added before the group must not carry its prefix: %q", out)
	}
}

func TestConsoleHandler_ComponentColumn(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Writer: &buf})
	t.Cleanup(func() { Init(Options{Level: "error", Writer: &bytes.Buffer{}}) })

	WithComponent("surface").Info("drag started", Point("at", vector.Pt{X: 420, Y: 297.126}))

	line := strings.TrimSuffix(buf.String(), "\n")
	// 15:04:05.000 is twelve bytes.
	if len(line) < 13 {
		t.Fatalf("short line: %q", line)
	}
	want := "INF surface     drag started at.x=420 at.y=297.13"
	if got := line[13:]; got != want {
		t.Fatalf("console line\n got: %q\nwant: %q", got, want)
	}
	for _, hidden := range []string{"app=", "ver=", "ts_init=", "component="} {
		if strings.Contains(line, hidden) {
			t.Fatalf("console line should not show %q: %q", hidden, line)
		}
	}
}

func TestSizeAttr(t *testing.T) {
	var buf bytes.Buffer
	h := newConsoleHandler(&buf, slog.LevelDebug, false)
	r := slog.Record{Level: slog.LevelDebug, Message: "page"}
	r.AddAttrs(Size("page", vector.Size{W: 840, H: 1188}))
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "DBG") || !strings.Contains(buf.String(), "page.w=840 page.h=1188") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestAttrValueString(t *testing.T) {
	cases := []struct {
		v    slog.Value
		want string
	}{
		{slog.Float64Value(10), "10"},
		{slog.Float64Value(100.5), "100.5"},
		{slog.Float64Value(0.004), "0"},
		{slog.Float64Value(-0.001), "0"},
		{slog.Float64Value(-2.25), "-2.25"},
		{slog.StringValue("plain"), "plain"},
		{slog.StringValue("two words"), `"two words"`},
		{slog.StringValue(""), `""`},
		{slog.StringValue("a=b"), `"a=b"`},
	}
	for _, c := range cases {
		if got := attrValueString(c.v); got != c.want {
			t.Errorf("attrValueString(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestLLazyInit(t *testing.T) {
	defaultLogger.Store(nil)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFile, "")
	l := L()
	if l == nil {
		t.Fatal("L returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("env level not applied")
	}
	if L() != l {
		t.Fatal("L should return the stored logger")
	}
}
