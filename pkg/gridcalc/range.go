package gridcalc

import (
	"fmt"
	"iter"
	"strings"
)

// Range is an inclusive rectangle of cells such as "A0:C4".
type Range struct {
	Start Address
	End   Address
}

// ParseRange parses "<cell>:<cell>". The start must not lie right of or
// below the end.
func ParseRange(text string) (Range, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, text)
	}
	start, end := ParseAddress(parts[0]), ParseAddress(parts[1])
	if !start.Valid() || !end.Valid() {
		return Range{}, fmt.Errorf("%w: %q has an invalid endpoint", ErrInvalidRange, text)
	}
	if start.Col() > end.Col() || start.Row() > end.Row() {
		return Range{}, fmt.Errorf("%w: %q starts after it ends", ErrInvalidRange, text)
	}
	return Range{Start: start, End: end}, nil
}

// Valid reports whether both endpoints are valid.
func (r Range) Valid() bool {
	return r.Start.Valid() && r.End.Valid()
}

// Contains reports whether (col, row) lies inside the range.
func (r Range) Contains(col, row int) bool {
	if !r.Valid() {
		return false
	}
	return col >= r.Start.Col() && col <= r.End.Col() &&
		row >= r.Start.Row() && row <= r.End.Row()
}

// Cells yields every address in the range, column by column.
func (r Range) Cells() iter.Seq[Address] {
	return func(yield func(Address) bool) {
		if !r.Valid() {
			return
		}
		for col := r.Start.Col(); col <= r.End.Col(); col++ {
			for row := r.Start.Row(); row <= r.End.Row(); row++ {
				if !yield(AddressFromCoords(col, row)) {
					return
				}
			}
		}
	}
}

func (r Range) String() string {
	if !r.Valid() {
		return ""
	}
	return r.Start.String() + ":" + r.End.String()
}
