// Package xlsx moves grids in and out of Excel workbooks.
package xlsx

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/xuri/excelize/v2"
)

// ImportOptions configures Import.
type ImportOptions struct {
	// Sheet is the worksheet to read. If empty, the first sheet is used.
	Sheet string
	// Area restricts the import to an Excel range such as "A1:D10".
	// If empty, the sheet's print area is used when it has one.
	Area string
	// Grid sizes the resulting grid. A zero width and height means the
	// largest grid, 26x100.
	Grid gridcalc.Options
}

// Import reads one worksheet into a new grid. Excel cell (c, r) lands on
// grid cell (c-1, r-1). Formulas are translated; a formula that cannot be
// translated is kept as "=<excel formula>" and evaluates to an error.
func Import(path string, opts ImportOptions) (*gridcalc.Grid, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}
	return importSheet(f, sheet, opts)
}

// ImportWorkbook imports every worksheet and returns their evaluated
// snapshots keyed by sheet name. opts.Sheet is ignored.
func ImportWorkbook(path string, opts ImportOptions) (*models.WorkbookData, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	book := &models.WorkbookData{
		BookName: filepath.Base(path),
		Sheets:   make(map[string]models.SheetData),
	}
	for _, sheet := range f.GetSheetList() {
		g, err := importSheet(f, sheet, opts)
		if err != nil {
			return nil, err
		}
		snapshot := g.Snapshot()
		snapshot.Name = sheet
		book.Sheets[sheet] = snapshot
	}
	return book, nil
}

func importSheet(f *excelize.File, sheet string, opts ImportOptions) (*gridcalc.Grid, error) {
	gridOpts := opts.Grid
	if gridOpts.Width == 0 && gridOpts.Height == 0 {
		gridOpts.Width, gridOpts.Height = gridcalc.MaxWidth, gridcalc.MaxHeight
	}
	g, err := gridcalc.New(gridOpts)
	if err != nil {
		return nil, err
	}

	area, err := importArea(f, sheet, opts.Area)
	if err != nil {
		return nil, importError(sheet, "", err)
	}

	entries, err := readEntries(f, sheet, area, g.Width(), g.Height())
	if err != nil {
		return nil, importError(sheet, "", err)
	}
	for _, e := range entries {
		if e.err != nil && gridOpts.Logger != nil {
			gridOpts.Logger.Warn("formula kept untranslated",
				"error", importError(sheet, gridcalc.AddressFromCoords(e.X, e.Y).String(), e.err))
		}
	}
	g.Replace(plain(entries))
	return g, nil
}

func importArea(f *excelize.File, sheet, rangeStr string) (*models.Area, error) {
	if rangeStr != "" {
		area := ParseArea(rangeStr)
		if area == nil {
			return nil, fmt.Errorf("%w %q", ErrInvalidArea, rangeStr)
		}
		return area, nil
	}
	if areas := PrintAreas(f)[sheet]; len(areas) > 0 {
		return &areas[0], nil
	}
	return nil, nil
}

type entry struct {
	gridcalc.Entry
	err error // translation failure, if any
}

// readEntries returns the non-empty cells of sheet that fit a width x
// height grid, optionally restricted to area.
func readEntries(f *excelize.File, sheet string, area *models.Area, width, height int) ([]entry, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var entries []entry
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if area != nil && !contains(*area, x, y) {
				continue
			}
			name, err := excelize.CoordinatesToCellName(x+1, y+1)
			if err != nil {
				return nil, err
			}
			formula, err := f.GetCellFormula(sheet, name)
			if err != nil {
				return nil, err
			}
			if formula != "" {
				raw, err := FromExcelFormula(formula)
				if err != nil {
					entries = append(entries, entry{gridcalc.Entry{X: x, Y: y, Raw: "=" + formula}, err})
					continue
				}
				entries = append(entries, entry{Entry: gridcalc.Entry{X: x, Y: y, Raw: raw}})
				continue
			}
			if y < len(rows) && x < len(rows[y]) && rows[y][x] != "" {
				entries = append(entries, entry{Entry: gridcalc.Entry{X: x, Y: y, Raw: rows[y][x]}})
			}
		}
	}
	return entries, nil
}

func plain(entries []entry) []gridcalc.Entry {
	out := make([]gridcalc.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Entry
	}
	return out
}

func openWorkbook(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFormat, path, err)
}
