package gridcalc

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates a grid size outside 0..MaxWidth by 0..MaxHeight.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// ErrInvalidRange indicates range text that is not "<cell>:<cell>" with start <= end.
var ErrInvalidRange = errors.New("invalid range")

var (
	ErrInvalidFormula   = errors.New("invalid formula")
	ErrCycleFormula     = errors.New("cyclic formula")
	ErrInvalidCondition = errors.New("invalid condition")
	ErrCycleCondition   = errors.New("cyclic condition")
	ErrInvalidFunction  = errors.New("invalid function")
	ErrCycleFunction    = errors.New("cyclic function")

	// ErrLineBreak is returned when saving a cell whose text holds a line
	// break; the saved format keeps one cell per line.
	ErrLineBreak = errors.New("cell text contains a line break")
)

// CellError represents a failed evaluation of a single cell.
type CellError struct {
	Address Address
	Kind    Kind // kind the cell had when evaluation started
	Err     error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("evaluation error in cell %s (%s): %v", e.Address, e.Kind, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// NewCellError creates a new CellError.
func NewCellError(addr Address, kind Kind, err error) *CellError {
	return &CellError{
		Address: addr,
		Kind:    kind,
		Err:     err,
	}
}

// isCycle reports whether err stems from a circular reference.
func isCycle(err error) bool {
	return errors.Is(err, ErrCycleFormula) ||
		errors.Is(err, ErrCycleCondition) ||
		errors.Is(err, ErrCycleFunction)
}
