package gridcalc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// FileHeader is the first line of a saved sheet. It is skipped on load.
const FileHeader = "gridcalc sheet: col,row,content"

// Save writes the header followed by one "col,row,content" line per
// non-empty cell. Nothing is written when a cell spans several lines.
func (g *Grid) Save(w io.Writer) error {
	entries := g.Entries()
	if err := checkLines(entries); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, FileHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%d,%d,%s\n", e.X, e.Y, e.Raw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func checkLines(entries []Entry) error {
	for _, e := range entries {
		if strings.ContainsAny(e.Raw, "\r\n") {
			return fmt.Errorf("cell %s: %w", AddressFromCoords(e.X, e.Y), ErrLineBreak)
		}
	}
	return nil
}

// Load replaces the grid content with the lines read from r and
// evaluates once. The first line is a header; lines that do not hold
// "col,row,content" with integer coordinates inside the grid are skipped.
func (g *Grid) Load(r io.Reader) error {
	entries, err := ReadEntries(r)
	if err != nil {
		return err
	}
	g.Replace(entries)
	return nil
}

// ReadEntries parses the saved sheet format without touching a grid.
// Lines have no length limit.
func ReadEntries(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)

	var entries []Entry
	for line := 0; ; line++ {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read sheet: %w", err)
		}
		if line > 0 {
			if e, ok := parseLine(text); ok {
				entries = append(entries, e)
			}
		}
		if err == io.EOF {
			return entries, nil
		}
	}
}

func parseLine(text string) (Entry, bool) {
	parts := strings.SplitN(text, ",", 3)
	if len(parts) < 3 {
		return Entry{}, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Entry{}, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Entry{}, false
	}
	return Entry{X: x, Y: y, Raw: strings.TrimSpace(parts[2])}, true
}

// SaveFile writes the grid to path. An existing file is left untouched
// when a cell spans several lines.
func (g *Grid) SaveFile(path string) error {
	if err := checkLines(g.Entries()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}

// LoadFile loads the grid from path.
func (g *Grid) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := g.Load(f); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
