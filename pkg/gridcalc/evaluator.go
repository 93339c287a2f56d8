package gridcalc

import "fmt"

type cellKey struct{ col, row int }

// evaluator walks cell references for one evaluation. It remembers the
// cells currently being evaluated so that re-entering one is reported
// as a cycle, and caches values that evaluated successfully.
type evaluator struct {
	g       *Grid
	active  map[cellKey]bool
	done    map[cellKey]string
	nesting int
}

func (g *Grid) newEvaluator() *evaluator {
	return &evaluator{
		g:      g,
		active: make(map[cellKey]bool),
		done:   make(map[cellKey]string),
	}
}

// cell returns the display string of (col, row), demoting the cell to an
// error kind when its expression fails.
func (e *evaluator) cell(col, row int) string {
	c := e.g.Get(col, row)
	if c == nil {
		return MarkerEmpty
	}

	kind := c.Kind()
	switch kind {
	case KindText:
		return c.Raw()
	case KindNumber:
		v, _ := ParseNumber(c.Raw())
		return FormatNumber(v)
	case KindErrCycle, KindErrFormula, KindErrFunction, KindErrCondition:
		return kind.Marker()
	}

	key := cellKey{col, row}
	if v, ok := e.done[key]; ok {
		return v
	}

	e.active[key] = true
	e.nesting++
	defer func() {
		delete(e.active, key)
		e.nesting--
	}()

	var (
		out string
		err error
	)
	switch kind {
	case KindFormula:
		var v float64
		v, err = e.formula(c.Raw(), col, row)
		out = FormatNumber(v)
	case KindCondition:
		out, err = e.condition(c.Raw(), col, row)
	case KindFunction:
		var v float64
		v, err = e.function(c.Raw(), col, row)
		out = FormatNumber(v)
	default:
		return MarkerEmpty
	}

	if err != nil {
		failed := failureKind(kind, err)
		c.SetKind(failed)
		e.g.log.Debug("cell evaluation failed",
			"error", NewCellError(AddressFromCoords(col, row), kind, err))
		return failed.Marker()
	}
	e.done[key] = out
	return out
}

// value evaluates a cell referenced from inside another expression.
func (e *evaluator) value(addr Address) (string, error) {
	if e.active[cellKey{addr.Col(), addr.Row()}] {
		return "", fmt.Errorf("%w: %s is already being evaluated", ErrCycleFormula, addr)
	}
	if e.nesting >= MaxNesting {
		return "", fmt.Errorf("%w: references nested deeper than %d", ErrCycleFormula, MaxNesting)
	}
	return e.cell(addr.Col(), addr.Row()), nil
}

func failureKind(kind Kind, err error) Kind {
	switch kind {
	case KindCondition:
		return KindErrCondition
	case KindFunction:
		return KindErrFunction
	default:
		if isCycle(err) {
			return KindErrCycle
		}
		return KindErrFormula
	}
}
