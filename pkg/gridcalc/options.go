// Package gridcalc implements a bounded two-dimensional spreadsheet: cells
// hold text, numbers, arithmetic formulas, IF conditions or aggregate calls
// over ranges, and are evaluated in dependency-depth order with cycle
// detection.
package gridcalc

import "log/slog"

const (
	// MaxWidth is the number of addressable columns (A..Z).
	MaxWidth = 26
	// MaxHeight is the number of addressable rows (0..99).
	MaxHeight = 100

	// DefaultWidth and DefaultHeight size a grid when no options are given.
	DefaultWidth  = 9
	DefaultHeight = 17

	// MaxNesting bounds how deep evaluation may recurse through
	// references before the chain is treated as a cycle.
	MaxNesting = 4096
)

// Options configures a Grid.
type Options struct {
	// Width is the number of columns, 0..MaxWidth.
	Width int
	// Height is the number of rows, 0..MaxHeight.
	Height int
	// Logger receives debug output from evaluation passes.
	// If nil, logging is discarded.
	Logger *slog.Logger
}

// DefaultOptions returns a 9x17 grid configuration.
func DefaultOptions() Options {
	return Options{
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
