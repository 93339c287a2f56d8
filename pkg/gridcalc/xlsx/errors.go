package xlsx

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the workbook does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the file is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrInvalidArea indicates an import area that is not an "A1:D10" range.
var ErrInvalidArea = errors.New("invalid area")

// TransferError reports a failure moving content between a grid and a
// worksheet. Cell is the grid address involved, empty when the failure
// concerns the whole sheet.
type TransferError struct {
	Op    string // "import" or "export"
	Sheet string
	Cell  string
	Err   error
}

func (e *TransferError) Error() string {
	if e.Cell == "" {
		return fmt.Sprintf("%s sheet %q: %v", e.Op, e.Sheet, e.Err)
	}
	return fmt.Sprintf("%s sheet %q cell %s: %v", e.Op, e.Sheet, e.Cell, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

func importError(sheet, cell string, err error) *TransferError {
	return &TransferError{Op: "import", Sheet: sheet, Cell: cell, Err: err}
}

func exportError(sheet, cell string, err error) *TransferError {
	return &TransferError{Op: "export", Sheet: sheet, Cell: cell, Err: err}
}
