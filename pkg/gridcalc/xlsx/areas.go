package xlsx

import (
	"strings"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// PrintAreas returns the print areas of a workbook keyed by sheet name,
// converted to zero-based grid coordinates.
func PrintAreas(f *excelize.File) map[string][]models.Area {
	result := make(map[string][]models.Area)
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		sheetName, areas := parseAreaReference(dn.RefersTo)
		if sheetName == "" {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}
	return result
}

// parseAreaReference parses 'Sheet Name'!$A$1:$D$10 or Sheet1!$A$1:$D$10,
// possibly several separated by commas.
func parseAreaReference(ref string) (string, []models.Area) {
	var (
		areas     []models.Area
		sheetName string
	)
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rangeStr := part
		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			if sheetName == "" {
				sheetName = strings.Trim(part[:idx], "'")
			}
			rangeStr = part[idx+1:]
		}
		if area := ParseArea(rangeStr); area != nil {
			areas = append(areas, *area)
		}
	}
	return sheetName, areas
}

// ParseArea parses an Excel range such as "$A$1:$D$10" into zero-based
// bounds. It returns nil for anything else.
func ParseArea(rangeStr string) *models.Area {
	parts := strings.Split(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if len(parts) != 2 {
		return nil
	}
	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}
	return &models.Area{
		R1: startRow - 1,
		C1: startCol - 1,
		R2: endRow - 1,
		C2: endCol - 1,
	}
}

// areaReference renders bounds as 'Sheet'!$A$1:$D$10.
func areaReference(sheet string, area models.Area) (string, error) {
	start, err := excelize.CoordinatesToCellName(area.C1+1, area.R1+1, true)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(area.C2+1, area.R2+1, true)
	if err != nil {
		return "", err
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + start + ":" + end, nil
}

func contains(a models.Area, col, row int) bool {
	return col >= a.C1 && col <= a.C2 && row >= a.R1 && row <= a.R2
}
