package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
	"golang.org/x/term"
)

// renderMode selects what each cell of the table shows.
type renderMode int

const (
	renderValues renderMode = iota
	renderRaw
	renderDepth
)

type renderer struct {
	w        io.Writer
	colWidth int
	header   *color.Color
	errText  *color.Color
}

func newRenderer(w io.Writer, colWidth int, useColor bool) *renderer {
	r := &renderer{
		w:        w,
		colWidth: colWidth,
		header:   color.New(color.Bold, color.FgCyan),
		errText:  color.New(color.FgRed, color.Bold),
	}
	if useColor {
		r.header.EnableColor()
		r.errText.EnableColor()
	} else {
		r.header.DisableColor()
		r.errText.DisableColor()
	}
	return r
}

// colorEnabled resolves "auto", "on" and "off" against f.
func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (r *renderer) fit(s string, right bool) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) > r.colWidth {
		s = runewidth.Truncate(s, r.colWidth, "…")
	}
	if right {
		return runewidth.FillLeft(s, r.colWidth)
	}
	return runewidth.FillRight(s, r.colWidth)
}

// Grid prints columns A.. and rows 0.. up to the last non-empty cell.
func (r *renderer) Grid(g *gridcalc.Grid, mode renderMode) error {
	area := g.DataBounds()
	if area == nil {
		_, err := fmt.Fprintln(r.w, "(empty sheet)")
		return err
	}

	var depths [][]int
	if mode == renderDepth {
		depths = g.Depth()
	}

	rowLabel := len(strconv.Itoa(area.R2))
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", rowLabel))
	for x := 0; x <= area.C2; x++ {
		b.WriteString(" ")
		b.WriteString(r.header.Sprint(r.fit(gridcalc.ColumnName(x), false)))
	}
	b.WriteString("\n")

	for y := 0; y <= area.R2; y++ {
		b.WriteString(r.header.Sprint(runewidth.FillLeft(strconv.Itoa(y), rowLabel)))
		for x := 0; x <= area.C2; x++ {
			b.WriteString(" ")
			b.WriteString(r.cell(g, depths, mode, x, y))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *renderer) cell(g *gridcalc.Grid, depths [][]int, mode renderMode, x, y int) string {
	c := g.Get(x, y)
	switch mode {
	case renderRaw:
		return r.fit(c.Raw(), false)
	case renderDepth:
		if c.Raw() == "" {
			return r.fit("", false)
		}
		d := depths[x][y]
		if d == gridcalc.CycleDepth {
			return r.errText.Sprint(r.fit(strconv.Itoa(d), true))
		}
		return r.fit(strconv.Itoa(d), true)
	}

	v := g.Value(x, y)
	if c.Kind().IsError() {
		return r.errText.Sprint(r.fit(v, false))
	}
	_, numeric := gridcalc.ParseNumber(v)
	return r.fit(v, numeric)
}

// Cell prints the details of one cell.
func (r *renderer) Cell(g *gridcalc.Grid, addr gridcalc.Address) error {
	c := g.Get(addr.Col(), addr.Row())
	value := g.Value(addr.Col(), addr.Row())
	if c.Kind().IsError() {
		value = r.errText.Sprint(value)
	}
	_, err := fmt.Fprintf(r.w, "cell:  %s\nraw:   %s\nkind:  %s\norder: %d\nvalue: %s\n",
		addr, c.Raw(), c.Kind(), c.Order(), value)
	return err
}
