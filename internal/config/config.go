// Package config loads gridcalc.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
)

// FileName is the configuration file looked up from the working
// directory upwards.
const FileName = "gridcalc.toml"

// Config holds every setting of the gridcalc tool.
type Config struct {
	Sheet   SheetConfig   `toml:"sheet"`
	Log     LogConfig     `toml:"log"`
	Display DisplayConfig `toml:"display"`
	Store   StoreConfig   `toml:"store"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// SheetConfig is the [sheet] section: the default grid size.
type SheetConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// LogConfig is the [log] section.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DisplayConfig is the [display] section used by the renderer.
type DisplayConfig struct {
	// Color is "auto", "on" or "off".
	Color       string `toml:"color"`
	ColumnWidth int    `toml:"column_width"`
}

// StoreConfig is the [store] section. A relative path is resolved
// against the directory of the config file.
type StoreConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Sheet: SheetConfig{
			Width:  gridcalc.DefaultWidth,
			Height: gridcalc.DefaultHeight,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Display: DisplayConfig{
			Color:       "auto",
			ColumnWidth: 10,
		},
		Store: StoreConfig{
			Path: "gridcalc.db",
		},
	}
}

// Find walks from startDir up to the filesystem root looking for
// gridcalc.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest gridcalc.toml above startDir, or the
// defaults when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("store", "path") && !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(filepath.Dir(path), cfg.Store.Path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Sheet.Width < 0 || c.Sheet.Width > gridcalc.MaxWidth {
		return fmt.Errorf("[sheet].width must be 0..%d, got %d", gridcalc.MaxWidth, c.Sheet.Width)
	}
	if c.Sheet.Height < 0 || c.Sheet.Height > gridcalc.MaxHeight {
		return fmt.Errorf("[sheet].height must be 0..%d, got %d", gridcalc.MaxHeight, c.Sheet.Height)
	}
	switch c.Display.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[display].color must be auto, on or off, got %q", c.Display.Color)
	}
	if c.Display.ColumnWidth < 3 {
		return fmt.Errorf("[display].column_width must be at least 3, got %d", c.Display.ColumnWidth)
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("[store].path is empty")
	}
	return nil
}

// GridOptions returns grid options for the configured sheet size.
func (c Config) GridOptions() gridcalc.Options {
	return gridcalc.Options{
		Width:  c.Sheet.Width,
		Height: c.Sheet.Height,
	}
}
