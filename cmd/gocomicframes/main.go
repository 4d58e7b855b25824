/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"gocomicframes/internal/config"
	"gocomicframes/internal/crash"
	"gocomicframes/internal/frame"
	"gocomicframes/internal/framelayer"
	applog "gocomicframes/internal/log"
	"gocomicframes/internal/store"
	"gocomicframes/internal/ui"
	"gocomicframes/internal/vector"
	"gocomicframes/internal/version"
)

func usage() {
	fmt.Println("Go Comic Frames")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gocomicframes version|-v|--version               Show version")
	fmt.Println("  gocomicframes render <markup> <out.png|pdf|cbz>  Render a markup file to PNG, PDF or CBZ")
	fmt.Println("  gocomicframes layout save <name> <markup>        Store a markup file in the layout library")
	fmt.Println("  gocomicframes layout list                        List stored layouts")
	fmt.Println("  gocomicframes layout show <name>                 Print a stored layout as JSON")
	fmt.Println("  gocomicframes layout delete <name>               Remove a stored layout")
	fmt.Println("  gocomicframes ui [<markup>|<name>]               Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		applog.Init(applog.FromEnv())
	} else {
		applog.Init(applog.FromConfig(cfg.Logging))
	}
	l := applog.WithComponent("cli")
	session := &crash.Session{}
	defer crash.Recover(session)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Go Comic Frames")
			fmt.Println(version.String())
			return
		case "render":
			if len(args) < 4 {
				fmt.Println("render requires <markup> and <out>")
				usage()
				os.Exit(2)
			}
			mustConfig(l, cfgErr)
			if err := render(cfg, session, args[2], args[3]); err != nil {
				fail(l, "render failed", err)
			}
			fmt.Println("Wrote", args[3])
			return
		case "layout":
			mustConfig(l, cfgErr)
			if err := layout(cfg, args[2:]); err != nil {
				fail(l, "layout command failed", err)
			}
			return
		case "ui":
			var source string
			if len(args) >= 3 {
				source = args[2]
			}
			if err := ui.Run(source); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}
	usage()
}

func mustConfig(l *slog.Logger, err error) {
	if err != nil {
		fail(l, "load config failed", err)
	}
}

func fail(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}

// render compiles the markup file at in and exports the page to out.
func render(cfg config.AppConfig, session *crash.Session, in, out string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read markup: %w", err)
	}
	root, err := frame.CompileText(data)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	page := vector.Size{W: cfg.Canvas.Width, H: cfg.Canvas.Height}
	layer := framelayer.New(root, page, nil, framelayer.OptionsFromConfig(cfg))
	session.Autosave = func() ([]byte, error) { return layer.Markup().JSON() }
	title := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	return layer.Export(out, title)
}

func layout(cfg config.AppConfig, args []string) error {
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	need := map[string]int{"save": 3, "list": 1, "show": 2, "delete": 2}
	n, ok := need[args[0]]
	if !ok {
		return fmt.Errorf("unknown layout command %q", args[0])
	}
	if len(args) < n {
		return fmt.Errorf("layout %s: missing arguments", args[0])
	}

	ctx := context.Background()
	path, err := cfg.LibraryPath()
	if err != nil {
		return err
	}
	lib, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer lib.Close()

	switch args[0] {
	case "save":
		data, err := os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("read markup: %w", err)
		}
		m, err := frame.ParseMarkup(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[2], err)
		}
		if err := lib.Save(ctx, args[1], m); err != nil {
			return err
		}
		fmt.Printf("Saved layout %q to %s\n", args[1], lib.Path())
	case "list":
		entries, err := lib.List(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tID\tCELLS\tREVISION\tUPDATED")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", e.Name, e.ID, e.Cells, e.Revision, e.UpdatedAt.Local().Format(time.DateTime))
		}
		return tw.Flush()
	case "show":
		m, err := lib.Load(ctx, args[1])
		if err != nil {
			return err
		}
		data, err := m.JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "delete":
		if err := lib.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("Deleted layout %q\n", args[1])
	}
	return nil
}
