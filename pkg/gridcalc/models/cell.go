// Package models defines the JSON snapshot of an evaluated grid.
package models

// CellData represents a single non-empty cell after evaluation.
type CellData struct {
	// Address is the cell name, e.g. "B3".
	Address string `json:"address"`
	// X is the zero-based column index.
	X int `json:"x"`
	// Y is the row index.
	Y int `json:"y"`
	// Raw is the text the cell was set to.
	Raw string `json:"raw"`
	// Value is the display value or an error marker.
	Value string `json:"value"`
	// Kind is the cell kind name (text, number, formula, ...).
	Kind string `json:"kind"`
	// Order is the dependency depth, -1 for cells on a cycle.
	Order int `json:"order"`
}
