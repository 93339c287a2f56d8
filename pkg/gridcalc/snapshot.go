package gridcalc

import "github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"

// Snapshot returns the evaluated content of every non-empty cell.
func (g *Grid) Snapshot() models.SheetData {
	data := models.SheetData{
		Width:  g.width,
		Height: g.height,
	}
	for _, e := range g.Entries() {
		c := g.cells[e.X][e.Y]
		data.Cells = append(data.Cells, models.CellData{
			Address: AddressFromCoords(e.X, e.Y).String(),
			X:       e.X,
			Y:       e.Y,
			Raw:     e.Raw,
			Value:   g.Value(e.X, e.Y),
			Kind:    c.Kind().String(),
			Order:   c.Order(),
		})
	}
	if area := g.DataBounds(); area != nil {
		data.Bounds = area
		data.UsedRange = Range{
			Start: AddressFromCoords(area.C1, area.R1),
			End:   AddressFromCoords(area.C2, area.R2),
		}.String()
	}
	return data
}

// DataBounds returns the bounding box of non-empty cells, or nil when the
// grid is empty.
func (g *Grid) DataBounds() *models.Area {
	minRow, maxRow, minCol, maxCol := -1, -1, -1, -1
	for _, e := range g.Entries() {
		if minRow < 0 || e.Y < minRow {
			minRow = e.Y
		}
		if maxRow < 0 || e.Y > maxRow {
			maxRow = e.Y
		}
		if minCol < 0 || e.X < minCol {
			minCol = e.X
		}
		if maxCol < 0 || e.X > maxCol {
			maxCol = e.X
		}
	}
	if minRow < 0 {
		return nil
	}
	return &models.Area{R1: minRow, C1: minCol, R2: maxRow, C2: maxCol}
}
