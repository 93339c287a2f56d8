package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 9, cfg.Sheet.Width)
	assert.Equal(t, 17, cfg.Sheet.Height)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Display.Color)
	assert.NoError(t, cfg.Validate())

	opts := cfg.GridOptions()
	assert.Equal(t, 9, opts.Width)
	assert.Equal(t, 17, opts.Height)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[sheet]
width = 26
height = 100

[log]
level = "debug"

[store]
path = "data/sheets.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 26, cfg.Sheet.Width)
	assert.Equal(t, 100, cfg.Sheet.Height)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Display.ColumnWidth)
	assert.Equal(t, filepath.Join(dir, "data", "sheets.db"), cfg.Store.Path)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadAbsoluteStorePath(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere.db")
	path := writeConfig(t, dir, "[store]\npath = \""+filepath.ToSlash(abs)+"\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(abs), filepath.ToSlash(cfg.Store.Path))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"unknown_key", "[sheet]\nwidth = 5\ncolour = \"red\"\n", "unknown keys: sheet.colour"},
		{"syntax", "[sheet\nwidth = 5\n", "failed to parse TOML"},
		{"wrong_type", "[sheet]\nwidth = \"wide\"\n", "failed to parse TOML"},
		{"too_wide", "[sheet]\nwidth = 27\n", "[sheet].width"},
		{"too_high", "[sheet]\nheight = 101\n", "[sheet].height"},
		{"color", "[display]\ncolor = \"always\"\n", "[display].color"},
		{"column_width", "[display]\ncolumn_width = 2\n", "[display].column_width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "[sheet]\nwidth = 4\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, ok, err := Find(nested)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, path, found)

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Sheet.Width)
	assert.Equal(t, 17, cfg.Sheet.Height)
	assert.Equal(t, path, cfg.Path)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Path = " "
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Sheet.Width = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Sheet.Width, cfg.Sheet.Height = 0, 0
	assert.NoError(t, cfg.Validate())
}
