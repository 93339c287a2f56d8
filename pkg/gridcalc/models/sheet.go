package models

// SheetData represents an evaluated grid.
type SheetData struct {
	// Name is the sheet name, if it has one.
	Name string `json:"name,omitempty"`
	// Width is the number of columns.
	Width int `json:"width"`
	// Height is the number of rows.
	Height int `json:"height"`
	// UsedRange is the cell range covering all non-empty cells (e.g. "A0:C4").
	UsedRange string `json:"used_range,omitempty"`
	// Bounds are the coordinates of UsedRange (nil for an empty grid).
	Bounds *Area `json:"bounds,omitempty"`
	// Cells contains the non-empty cells, column by column.
	Cells []CellData `json:"cells,omitempty"`
}
