package xlsx

import (
	"math"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// ExportOptions configures Export.
type ExportOptions struct {
	// Sheet names the worksheet. If empty, "Sheet1" is used.
	Sheet string
	// Values writes evaluated values instead of formulas.
	Values bool
}

// Export writes g to a new workbook at path. Grid cell (x, y) lands on
// Excel cell (x+1, y+1) and the used range becomes the print area.
func Export(g *gridcalc.Grid, path string, opts ExportOptions) error {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return err
		}
	}

	for _, e := range g.Entries() {
		name, err := excelize.CoordinatesToCellName(e.X+1, e.Y+1)
		if err != nil {
			return err
		}
		if err := writeCell(f, g, sheet, name, e, opts.Values); err != nil {
			return exportError(sheet, gridcalc.AddressFromCoords(e.X, e.Y).String(), err)
		}
	}

	if area := g.DataBounds(); area != nil {
		ref, err := areaReference(sheet, *area)
		if err != nil {
			return err
		}
		if err := f.SetDefinedName(&excelize.DefinedName{
			Name:     printAreaName,
			RefersTo: ref,
			Scope:    sheet,
		}); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeCell(f *excelize.File, g *gridcalc.Grid, sheet, name string, e gridcalc.Entry, values bool) error {
	switch gridcalc.Classify(e.Raw) {
	case gridcalc.KindNumber:
		v, _ := gridcalc.ParseNumber(e.Raw)
		return setNumber(f, sheet, name, v, e.Raw)
	case gridcalc.KindText:
		return f.SetCellStr(sheet, name, e.Raw)
	}

	if values {
		shown := g.Value(e.X, e.Y)
		if v, ok := gridcalc.ParseNumber(shown); ok {
			return setNumber(f, sheet, name, v, shown)
		}
		return f.SetCellStr(sheet, name, shown)
	}
	formula, err := ToExcelFormula(e.Raw)
	if err != nil {
		return f.SetCellStr(sheet, name, e.Raw)
	}
	return f.SetCellFormula(sheet, name, formula)
}

// setNumber stores v as a number, falling back to text for values Excel
// cannot hold.
func setNumber(f *excelize.File, sheet, name string, v float64, text string) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return f.SetCellStr(sheet, name, text)
	}
	return f.SetCellFloat(sheet, name, v, -1, 64)
}
