package gridcalc

import "unicode"

// CycleDepth marks a cell whose dependencies never resolve.
const CycleDepth = -1

// Depth returns the dependency depth of every cell, indexed [col][row].
// Text and number cells are depth 0; any other cell is one more than the
// deepest cell it names. Cells that cannot be resolved sit on or behind a
// cycle: they get CycleDepth and their kind becomes the matching error.
func (g *Grid) Depth() [][]int {
	depths := make([][]int, g.width)
	for x := range depths {
		depths[x] = make([]int, g.height)
		for y := range depths[x] {
			depths[x][y] = CycleDepth
		}
	}

	total := g.width * g.height
	resolved := 0
	for pass := 0; resolved < total && pass <= total; pass++ {
		progress := false
		for x := 0; x < g.width; x++ {
			for y := 0; y < g.height; y++ {
				if depths[x][y] != CycleDepth {
					continue
				}
				d, ok := g.cellDepth(g.cells[x][y], depths)
				if !ok {
					continue
				}
				depths[x][y] = d
				resolved++
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	for x := range depths {
		for y, d := range depths[x] {
			if d == CycleDepth {
				c := g.cells[x][y]
				c.SetKind(c.Kind().cycleKind())
				c.SetOrder(CycleDepth)
			}
		}
	}
	return depths
}

// cellDepth resolves the depth of c from the depths known so far.
func (g *Grid) cellDepth(c *Cell, depths [][]int) (int, bool) {
	if c.Kind() == KindText || c.Kind() == KindNumber {
		return 0, true
	}
	deepest := 0
	for _, addr := range references(c.Raw()) {
		if !g.IsIn(addr.Col(), addr.Row()) {
			continue
		}
		d := depths[addr.Col()][addr.Row()]
		if d == CycleDepth {
			return 0, false
		}
		deepest = max(deepest, d)
	}
	return deepest + 1, true
}

// references scans raw text after its leading '=' for letter+digits
// tokens that name valid cells. Range interiors are not expanded.
func references(raw string) []Address {
	runes := []rune(raw)
	if len(runes) > 0 {
		runes = runes[1:]
	}
	var refs []Address
	for i := 0; i < len(runes); i++ {
		if !unicode.IsLetter(runes[i]) {
			continue
		}
		end := i + 1
		for end < len(runes) && unicode.IsDigit(runes[end]) {
			end++
		}
		if addr := ParseAddress(string(runes[i:end])); addr.Valid() {
			refs = append(refs, addr)
		}
		i = end - 1
	}
	return refs
}

// Eval re-evaluates the whole grid: depths are computed, every non-empty
// cell is reclassified from its raw text, cyclic cells take their error
// kind, and the rest are evaluated level by level in depth order.
func (g *Grid) Eval() {
	depths := g.Depth()

	for x := range g.cells {
		for _, c := range g.cells[x] {
			if c.Raw() != "" {
				c.SetKind(Classify(c.Raw()))
			}
		}
	}

	maxDepth, cycles := 0, 0
	for x := range depths {
		for y, d := range depths[x] {
			if d == CycleDepth {
				c := g.cells[x][y]
				c.SetKind(c.Kind().cycleKind())
				c.SetOrder(CycleDepth)
				cycles++
				continue
			}
			maxDepth = max(maxDepth, d)
		}
	}

	e := g.newEvaluator()
	for level := 0; level <= maxDepth; level++ {
		for x := range depths {
			for y, d := range depths[x] {
				if d != level {
					continue
				}
				e.cell(x, y)
				g.cells[x][y].SetOrder(level)
			}
		}
	}

	g.log.Debug("grid evaluated",
		"width", g.width,
		"height", g.height,
		"max_depth", maxDepth,
		"cycles", cycles)
}
