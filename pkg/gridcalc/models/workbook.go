package models

// WorkbookData represents several evaluated sheets, e.g. every worksheet
// of an xlsx file or every sheet in the store.
type WorkbookData struct {
	// BookName is the workbook or database file name (no path).
	BookName string `json:"book_name"`
	// Sheets maps sheet name to SheetData.
	Sheets map[string]SheetData `json:"sheets"`
}
