/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

// CanvasConfig is the page size the frame tree is solved against, in pixels (points for PDF).
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// InteractionConfig tunes the drag gestures.
type InteractionConfig struct {
	ExpandDamping    float64 `yaml:"expand_damping"`
	ScaleUnitPx      float64 `yaml:"scale_unit_px"`
	BorderHitPx      float64 `yaml:"border_hit_px"`
	ClampBorderSizes bool    `yaml:"clamp_border_sizes"`
}

// KeysConfig binds gesture modifiers and edit commands to key codes
// (DOM KeyboardEvent.code names). Any listed key triggers the binding.
type KeysConfig struct {
	Translate       []string `yaml:"translate"`
	Scale           []string `yaml:"scale"`
	Expand          []string `yaml:"expand"`
	Erase           []string `yaml:"erase"`
	SplitHorizontal []string `yaml:"split_horizontal"`
	SplitVertical   []string `yaml:"split_vertical"`
}

// LibraryConfig locates the saved-layout database. An empty path means
// library.sqlite next to the config file.
type LibraryConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int               `yaml:"config_version"`
	Canvas        CanvasConfig      `yaml:"canvas"`
	Interaction   InteractionConfig `yaml:"interaction"`
	Keys          KeysConfig        `yaml:"keys"`
	Library       LibraryConfig     `yaml:"library"`
	Logging       LoggingConfig     `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Canvas:        CanvasConfig{Width: 840, Height: 1188},
		Interaction:   InteractionConfig{ExpandDamping: 0.1, ScaleUnitPx: 200, BorderHitPx: 6, ClampBorderSizes: false},
		Keys: KeysConfig{
			Translate:       []string{"AltLeft", "AltRight"},
			Scale:           []string{"ControlLeft", "ControlRight"},
			Expand:          []string{"ControlLeft", "ControlRight"},
			Erase:           []string{"KeyQ"},
			SplitHorizontal: []string{"KeyW"},
			SplitVertical:   []string{"KeyS"},
		},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath    = "GCF_CONFIG"
	EnvCanvasWidth   = "GCF_CANVAS_WIDTH"
	EnvCanvasHeight  = "GCF_CANVAS_HEIGHT"
	EnvExpandDamping = "GCF_EXPAND_DAMPING"
	EnvScaleUnitPx   = "GCF_SCALE_UNIT_PX"
	EnvBorderHitPx   = "GCF_BORDER_HIT_PX"
	EnvClampBorders  = "GCF_CLAMP_BORDER_SIZES"
	EnvLibraryPath   = "GCF_LIBRARY_PATH"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GCF_LOG_LEVEL"
	EnvLogFormat = "GCF_LOG_FORMAT"
	EnvLogSource = "GCF_LOG_SOURCE"
	EnvLogFile   = "GCF_LOG_FILE"
)

// ConfigPath returns the per-user config file path. GCF_CONFIG replaces it.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoComicFrames")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoComicFrames")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "gocomicframes")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit file. A missing file yields the defaults.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config: %w", err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

func SaveTo(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LibraryPath resolves the layout library database file.
func (c AppConfig) LibraryPath() (string, error) {
	if p := strings.TrimSpace(c.Library.Path); p != "" {
		return p, nil
	}
	cp, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cp), "library.sqlite"), nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Canvas.Width > 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height > 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if src.Interaction.ExpandDamping > 0 {
		dst.Interaction.ExpandDamping = src.Interaction.ExpandDamping
	}
	if src.Interaction.ScaleUnitPx > 0 {
		dst.Interaction.ScaleUnitPx = src.Interaction.ScaleUnitPx
	}
	if src.Interaction.BorderHitPx > 0 {
		dst.Interaction.BorderHitPx = src.Interaction.BorderHitPx
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Interaction.ClampBorderSizes = src.Interaction.ClampBorderSizes
	mergeKeys(&dst.Keys.Translate, src.Keys.Translate)
	mergeKeys(&dst.Keys.Scale, src.Keys.Scale)
	mergeKeys(&dst.Keys.Expand, src.Keys.Expand)
	mergeKeys(&dst.Keys.Erase, src.Keys.Erase)
	mergeKeys(&dst.Keys.SplitHorizontal, src.Keys.SplitHorizontal)
	mergeKeys(&dst.Keys.SplitVertical, src.Keys.SplitVertical)
	if strings.TrimSpace(src.Library.Path) != "" {
		dst.Library.Path = strings.TrimSpace(src.Library.Path)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func mergeKeys(dst *[]string, src []string) {
	var keys []string
	for _, k := range src {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		*dst = keys
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	envFloat(EnvCanvasWidth, &cfg.Canvas.Width)
	envFloat(EnvCanvasHeight, &cfg.Canvas.Height)
	envFloat(EnvExpandDamping, &cfg.Interaction.ExpandDamping)
	envFloat(EnvScaleUnitPx, &cfg.Interaction.ScaleUnitPx)
	envFloat(EnvBorderHitPx, &cfg.Interaction.BorderHitPx)
	if v := strings.TrimSpace(os.Getenv(EnvClampBorders)); v != "" {
		cfg.Interaction.ClampBorderSizes = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLibraryPath)); v != "" {
		cfg.Library.Path = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// envFloat overrides *dst with a positive number from key; other values are ignored.
func envFloat(key string, dst *float64) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
		*dst = f
	}
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

var envKeys = map[string]string{
	"canvas.width":                   EnvCanvasWidth,
	"canvas.height":                  EnvCanvasHeight,
	"interaction.expand_damping":     EnvExpandDamping,
	"interaction.scale_unit_px":      EnvScaleUnitPx,
	"interaction.border_hit_px":      EnvBorderHitPx,
	"interaction.clamp_border_sizes": EnvClampBorders,
	"library.path":                   EnvLibraryPath,
	"logging.level":                  EnvLogLevel,
	"logging.format":                 EnvLogFormat,
	"logging.source":                 EnvLogSource,
	"logging.file":                   EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
