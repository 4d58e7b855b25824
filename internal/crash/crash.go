/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns an unrecovered panic into a crash report plus an autosave
// of the page layout being edited.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "gocomicframes/internal/log"
	"gocomicframes/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Session describes where crash artifacts go and how to snapshot the work in progress.
type Session struct {
	// Dir receives crash-*.log and autosave-*.json; empty means os.TempDir().
	Dir string
	// Autosave returns the current layout markup, or nil when there is nothing to keep.
	Autosave func() ([]byte, error)
}

// Recover captures a panic, logs an error with stacktrace, writes an error
// report file, and attempts a crash-safe autosave of the current layout.
//
// Usage: defer crash.Recover(session)
func Recover(s *Session) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(s, r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	if path, err := autosave(s); err != nil {
		l.Error("autosave crash snapshot failed", slog.Any("err", err))
	} else if path != "" {
		l.Info("autosave crash snapshot written", slog.String("path", path))
		_, _ = fmt.Fprintf(os.Stderr, "Your layout was saved to: %s\n", path)
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	// Exit with a non-zero code to indicate failure in CLI context.
	exitFn(2)
}

func dir(s *Session) string {
	if s == nil || s.Dir == "" {
		return os.TempDir()
	}
	_ = os.MkdirAll(s.Dir, 0o755)
	return s.Dir
}

func stamp() string { return time.Now().Format("20060102-150405") }

func writeReport(s *Session, panicVal any, stack []byte) (string, error) {
	path := filepath.Join(dir(s), fmt.Sprintf("crash-%s.log", stamp()))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Go Comic Frames Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := writeSynced(path, buf.Bytes()); err != nil {
		return path, err
	}
	return path, nil
}

// autosave writes the session's markup next to the crash report. It returns
// an empty path when there was nothing to save.
func autosave(s *Session) (path string, err error) {
	if s == nil || s.Autosave == nil {
		return "", nil
	}
	// The layout may be what panicked; never let the snapshot panic again.
	defer func() {
		if r := recover(); r != nil {
			path, err = "", fmt.Errorf("autosave panicked: %v", r)
		}
	}()
	data, err := s.Autosave()
	if err != nil {
		return "", fmt.Errorf("snapshot layout: %w", err)
	}
	if len(data) == 0 {
		return "", nil
	}
	path = filepath.Join(dir(s), fmt.Sprintf("autosave-%s.json", stamp()))
	if err := writeSynced(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	_ = f.Sync()
	if err := f.Close(); err != nil {
		applog.WithComponent("crash").Error("failed to close crash file", slog.Any("err", err), slog.String("path", path))
		return err
	}
	return nil
}
