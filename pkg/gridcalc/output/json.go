// Package output serializes grid snapshots.
package output

import (
	"encoding/json"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

// SheetToJSON encodes a sheet snapshot, indented when pretty is set.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// WorkbookToJSON encodes several named snapshots.
func WorkbookToJSON(book *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(book, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
