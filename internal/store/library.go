/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package store keeps a library of named page layouts in an embedded SQLite
// database. Layouts are stored as decompiled frame markup.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"gocomicframes/internal/frame"
	applog "gocomicframes/internal/log"
	"gocomicframes/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no layout has the requested name.
var ErrNotFound = errors.New("layout not found")

// schemaVersion tracks the library schema. Bump with a migration step.
const schemaVersion = 1

// Library is an open layout database.
type Library struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// Entry summarizes one stored layout.
type Entry struct {
	// ID stays fixed across saves under the same name.
	ID        string
	Name      string
	Cells     int
	Revision  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open creates or opens the library at path, enables WAL mode and ensures the schema.
func Open(ctx context.Context, path string) (*Library, error) {
	l := applog.WithOperation(applog.WithComponent("store"), "open").With(slog.String("path", path))
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("library path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		l.Error("create library dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create library dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}
	l.Debug("library ready")
	return &Library{db: db, path: path, log: applog.WithComponent("store")}, nil
}

func (lib *Library) Path() string { return lib.path }

func (lib *Library) Close() error { return lib.db.Close() }

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS layouts (
			name        TEXT PRIMARY KEY,
			id          TEXT NOT NULL UNIQUE,
			markup      TEXT NOT NULL,
			cells       INTEGER NOT NULL,
			revision    INTEGER NOT NULL DEFAULT 1,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, version.String(), now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	case cur > schemaVersion:
		return fmt.Errorf("library schema %d is newer than supported %d", cur, schemaVersion)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, version.String(), now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

func normName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.New("layout name is required")
	}
	return n, nil
}

// Save stores m under name, replacing an existing layout and bumping its revision.
// The markup must compile.
func (lib *Library) Save(ctx context.Context, name string, m frame.Markup) error {
	n, err := normName(name)
	if err != nil {
		return err
	}
	root, err := frame.Compile(m)
	if err != nil {
		return err
	}
	data, err := m.JSON()
	if err != nil {
		return fmt.Errorf("encode markup: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = lib.db.ExecContext(ctx, `INSERT INTO layouts (name, id, markup, cells, revision, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(name) DO UPDATE SET markup=excluded.markup, cells=excluded.cells,
			revision=layouts.revision+1, updated_at=excluded.updated_at`,
		n, uuid.NewString(), string(data), len(root.Leaves()), now, now)
	if err != nil {
		return fmt.Errorf("save layout %q: %w", n, err)
	}
	lib.log.Info("layout saved", slog.String("name", n), slog.Int("cells", len(root.Leaves())))
	return nil
}

// Load returns the markup stored under name.
func (lib *Library) Load(ctx context.Context, name string) (frame.Markup, error) {
	n, err := normName(name)
	if err != nil {
		return frame.Markup{}, err
	}
	var text string
	err = lib.db.QueryRowContext(ctx, `SELECT markup FROM layouts WHERE name=?`, n).Scan(&text)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return frame.Markup{}, fmt.Errorf("%w: %q", ErrNotFound, n)
	case err != nil:
		return frame.Markup{}, fmt.Errorf("load layout %q: %w", n, err)
	}
	m, err := frame.ParseMarkup([]byte(text))
	if err != nil {
		return frame.Markup{}, fmt.Errorf("stored layout %q: %w", n, err)
	}
	return m, nil
}

// List returns every stored layout ordered by name.
func (lib *Library) List(ctx context.Context) ([]Entry, error) {
	rows, err := lib.db.QueryContext(ctx, `SELECT id, name, cells, revision, created_at, updated_at FROM layouts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var created, updated string
		if err := rows.Scan(&e.ID, &e.Name, &e.Cells, &e.Revision, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan layout: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	return out, nil
}

// Delete removes the layout stored under name.
func (lib *Library) Delete(ctx context.Context, name string) error {
	n, err := normName(name)
	if err != nil {
		return err
	}
	res, err := lib.db.ExecContext(ctx, `DELETE FROM layouts WHERE name=?`, n)
	if err != nil {
		return fmt.Errorf("delete layout %q: %w", n, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, n)
	}
	lib.log.Info("layout deleted", slog.String("name", n))
	return nil
}
