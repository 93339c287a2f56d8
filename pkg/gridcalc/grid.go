package gridcalc

import (
	"fmt"
	"log/slog"
)

// Grid is a fixed-size sheet of cells addressed by column and row.
// Every mutation re-evaluates the whole grid. A Grid is not safe for
// concurrent use.
type Grid struct {
	cells  [][]*Cell // [col][row]
	width  int
	height int
	log    *slog.Logger
}

// Entry is the raw content of one non-empty cell.
type Entry struct {
	X   int    `msgpack:"x" json:"x"`
	Y   int    `msgpack:"y" json:"y"`
	Raw string `msgpack:"raw" json:"raw"`
}

// New creates an empty grid.
func New(opts Options) (*Grid, error) {
	if opts.Width < 0 || opts.Width > MaxWidth || opts.Height < 0 || opts.Height > MaxHeight {
		return nil, fmt.Errorf("%w: %dx%d (max %dx%d)",
			ErrInvalidDimensions, opts.Width, opts.Height, MaxWidth, MaxHeight)
	}
	g := &Grid{
		width:  opts.Width,
		height: opts.Height,
		log:    opts.logger(),
	}
	g.cells = make([][]*Cell, g.width)
	for x := range g.cells {
		g.cells[x] = make([]*Cell, g.height)
		for y := range g.cells[x] {
			g.cells[x][y] = NewCell("")
		}
	}
	return g, nil
}

// NewGrid creates an empty width x height grid without logging.
func NewGrid(width, height int) (*Grid, error) {
	return New(Options{Width: width, Height: height})
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// IsIn reports whether (col, row) lies inside the grid.
func (g *Grid) IsIn(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// Get returns the cell at (col, row), or nil outside the grid.
func (g *Grid) Get(col, row int) *Cell {
	if !g.IsIn(col, row) {
		return nil
	}
	return g.cells[col][row]
}

// Lookup returns the cell named by text such as "B3", or nil when the
// name is invalid or outside the grid.
func (g *Grid) Lookup(text string) *Cell {
	addr := ParseAddress(text)
	if !addr.Valid() {
		return nil
	}
	return g.Get(addr.Col(), addr.Row())
}

// Set replaces the content of (col, row) and re-evaluates the grid.
// Coordinates outside the grid are ignored.
func (g *Grid) Set(col, row int, text string) {
	if !g.IsIn(col, row) {
		return
	}
	g.cells[col][row] = NewCell(text)
	g.Eval()
}

// Value returns the display string of (col, row): the evaluated value,
// an error marker, or "" for empty and out-of-grid cells.
func (g *Grid) Value(col, row int) string {
	c := g.Get(col, row)
	if c == nil {
		return MarkerEmpty
	}
	if c.Kind().IsError() {
		return c.Kind().Marker()
	}
	s, _ := g.EvalCell(col, row)
	return s
}

// EvalCell evaluates a single cell. Formula, condition and function cells
// that fail are demoted to the matching error kind and yield its marker.
// The boolean is false only for coordinates outside the grid.
func (g *Grid) EvalCell(col, row int) (string, bool) {
	if !g.IsIn(col, row) {
		return MarkerEmpty, false
	}
	return g.newEvaluator().cell(col, row), true
}

// Entries returns every non-empty cell, column by column.
func (g *Grid) Entries() []Entry {
	var entries []Entry
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if raw := g.cells[x][y].Raw(); raw != "" {
				entries = append(entries, Entry{X: x, Y: y, Raw: raw})
			}
		}
	}
	return entries
}

// Replace clears the grid, stores entries that fall inside it and
// evaluates once.
func (g *Grid) Replace(entries []Entry) {
	g.clear()
	for _, e := range entries {
		if g.IsIn(e.X, e.Y) {
			g.cells[e.X][e.Y] = NewCell(e.Raw)
		}
	}
	g.Eval()
}

func (g *Grid) clear() {
	for x := range g.cells {
		for y := range g.cells[x] {
			g.cells[x][y] = NewCell("")
		}
	}
}
