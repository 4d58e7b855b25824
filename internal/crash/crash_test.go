/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport(nil, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Go Comic Frames Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
}

func TestWriteReportHonorsSessionDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "crash")
	path, err := writeReport(&Session{Dir: root}, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("expected crash report under %s, got %s", root, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
}

func TestAutosaveSkipsEmptyAndReportsErrors(t *testing.T) {
	root := t.TempDir()
	if p, err := autosave(&Session{Dir: root}); p != "" || err != nil {
		t.Fatalf("no autosave func: %q %v", p, err)
	}
	if p, err := autosave(&Session{Dir: root, Autosave: func() ([]byte, error) { return nil, nil }}); p != "" || err != nil {
		t.Fatalf("empty snapshot: %q %v", p, err)
	}
	want := errors.New("tree unavailable")
	if _, err := autosave(&Session{Dir: root, Autosave: func() ([]byte, error) { return nil, want }}); !errors.Is(err, want) {
		t.Fatalf("err = %v", err)
	}
	if _, err := autosave(&Session{Dir: root, Autosave: func() ([]byte, error) { panic("again") }}); err == nil {
		t.Fatalf("panicking autosave must turn into an error")
	}
}

// TestRecover_PanickingFunction ensures Recover handles a panic, writes a report,
// autosaves the layout, and does not terminate the test process due to injected exitFn.
func TestRecover_PanickingFunction(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	root := t.TempDir()
	sess := &Session{Dir: root, Autosave: func() ([]byte, error) { return []byte(`{"row":[{}]}`), nil }}

	func() {
		defer Recover(sess)
		panic("boom")
	}()

	var report, snapshot string
	files, _ := os.ReadDir(root)
	for _, f := range files {
		switch {
		case strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".log"):
			report = filepath.Join(root, f.Name())
		case strings.HasPrefix(f.Name(), "autosave-") && strings.HasSuffix(f.Name(), ".json"):
			snapshot = filepath.Join(root, f.Name())
		}
	}
	if report == "" || snapshot == "" {
		t.Fatalf("expected report and autosave in %s, got %v", root, files)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}
	if b, _ := os.ReadFile(snapshot); string(b) != `{"row":[{}]}` {
		t.Fatalf("autosave content = %q", b)
	}
	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}
