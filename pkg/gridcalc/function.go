package gridcalc

import (
	"fmt"
	"strings"
)

// ComputeFunction evaluates "=<name>(<range>)" for name in Functions as
// if it were the content of (col, row). When no name matches, the cell
// at (col, row) is marked as a function error.
func (g *Grid) ComputeFunction(text string, col, row int) (float64, error) {
	return g.newEvaluator().function(text, col, row)
}

func (e *evaluator) function(text string, col, row int) (float64, error) {
	for _, name := range Functions {
		prefix := "=" + name + "("
		if !hasPrefixFold(text, prefix) || !strings.HasSuffix(text, ")") {
			continue
		}
		values, err := e.rangeValues(text[len(prefix):len(text)-1], col, row)
		if err != nil {
			return 0, err
		}
		return aggregate(name, values), nil
	}

	if c := e.g.Get(col, row); c != nil {
		c.SetKind(KindErrFunction)
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFunction, text)
}

// rangeValues collects the numbers shown by the non-empty cells of the
// range text. Any cell that does not show a number fails the whole range.
func (e *evaluator) rangeValues(text string, col, row int) ([]float64, error) {
	rng, err := ParseRange(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFunction, err)
	}
	if rng.Contains(col, row) {
		return nil, fmt.Errorf("%w: %s contains %s", ErrCycleFunction, rng, AddressFromCoords(col, row))
	}
	if !e.g.IsIn(rng.End.Col(), rng.End.Row()) {
		return nil, fmt.Errorf("%w: %s exceeds the grid", ErrInvalidFunction, rng)
	}

	var values []float64
	for addr := range rng.Cells() {
		c := e.g.Get(addr.Col(), addr.Row())
		if c == nil || c.Raw() == "" {
			continue
		}
		s, err := e.value(addr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCycleFunction, err)
		}
		v, ok := ParseNumber(s)
		if !ok {
			return nil, fmt.Errorf("%w: %s holds %q", ErrInvalidFunction, addr, s)
		}
		values = append(values, v)
	}
	return values, nil
}

func aggregate(name string, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	switch name {
	case "average":
		return sum / float64(len(values))
	case "min":
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case "max":
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	default:
		return sum
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
