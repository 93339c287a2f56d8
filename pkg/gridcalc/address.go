package gridcalc

import (
	"strconv"
	"unicode/utf8"
)

// ErrCoord is the column and row of an invalid Address.
const ErrCoord = -1

// Address identifies a cell by column letter and row number, e.g. "B7".
// An Address parsed from malformed text is invalid rather than an error.
type Address struct {
	col, row int
	valid    bool
}

// AddressFromCoords returns the address of column col and row row.
func AddressFromCoords(col, row int) Address {
	if col < 0 || col >= MaxWidth || row < 0 || row >= MaxHeight {
		return Address{col: ErrCoord, row: ErrCoord}
	}
	return Address{col: col, row: row, valid: true}
}

// ParseAddress parses text such as "a0" or "Z99". The text is not trimmed.
func ParseAddress(text string) Address {
	if len(text) < 2 {
		return Address{col: ErrCoord, row: ErrCoord}
	}
	r, size := utf8.DecodeRuneInString(text)
	col := letterIndex(r)
	if col < 0 {
		return Address{col: ErrCoord, row: ErrCoord}
	}
	row, err := strconv.Atoi(text[size:])
	if err != nil {
		return Address{col: ErrCoord, row: ErrCoord}
	}
	return AddressFromCoords(col, row)
}

// letterIndex maps A-Z (either case) to 0-25 and everything else to -1.
func letterIndex(r rune) int {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A')
	case r >= 'a' && r <= 'z':
		return int(r - 'a')
	}
	return -1
}

// ColumnName returns the letter of column col, or "" outside A..Z.
func ColumnName(col int) string {
	if col < 0 || col >= MaxWidth {
		return ""
	}
	return string(rune('A' + col))
}

// Col returns the zero-based column, or ErrCoord.
func (a Address) Col() int { return a.col }

// Row returns the row number, or ErrCoord.
func (a Address) Row() int { return a.row }

// Valid reports whether a names a cell inside the A0..Z99 space.
func (a Address) Valid() bool { return a.valid }

// String returns the canonical form ("A7" for "a07"), or "" when invalid.
func (a Address) String() string {
	if !a.valid {
		return ""
	}
	return ColumnName(a.col) + strconv.Itoa(a.row)
}
