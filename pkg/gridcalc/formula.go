package gridcalc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var cellRefPattern = regexp.MustCompile(`^[a-zA-Z][0-9]{0,3}$`)

// ComputeFormula evaluates an arithmetic formula such as "=(A1+2)*3" as
// if it were the content of (col, row).
func (g *Grid) ComputeFormula(text string, col, row int) (float64, error) {
	return g.newEvaluator().formula(text, col, row)
}

func (e *evaluator) formula(text string, col, row int) (float64, error) {
	if !strings.HasPrefix(text, "=") {
		return 0, fmt.Errorf("%w: %q does not start with '='", ErrInvalidFormula, text)
	}
	return e.expr(stripSpace(text[1:]), col, row)
}

// expr evaluates whitespace-free formula text without its leading '='.
func (e *evaluator) expr(form string, col, row int) (float64, error) {
	if form == "" {
		return 0, fmt.Errorf("%w: empty expression", ErrInvalidFormula)
	}
	if v, ok := ParseNumber(form); ok {
		return v, nil
	}

	n := len(form)
	if form[0] == '+' || form[0] == '-' {
		form = "0" + form
	}

	if form[0] == '(' {
		end, err := closingParen(form[1:])
		if err != nil {
			return 0, err
		}
		if end == n-2 {
			return e.expr(form[1:n-1], col, row)
		}
	}

	if cellRefPattern.MatchString(form) {
		return e.reference(form, col, row)
	}

	i := indexOfMainOp(form)
	if i < 0 {
		return 0, fmt.Errorf("%w: no operator in %q", ErrInvalidFormula, form)
	}
	left, err := e.expr(form[:i], col, row)
	if err != nil {
		return 0, err
	}
	right, err := e.expr(form[i+1:], col, row)
	if err != nil {
		return 0, err
	}
	switch form[i] {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	default:
		return left / right, nil
	}
}

// reference resolves a single cell name to the number it displays.
func (e *evaluator) reference(name string, col, row int) (float64, error) {
	addr := ParseAddress(name)
	if !addr.Valid() || !e.g.IsIn(addr.Col(), addr.Row()) {
		return 0, fmt.Errorf("%w: %q is not a cell of the grid", ErrInvalidFormula, name)
	}
	if addr.Col() == col && addr.Row() == row {
		return 0, fmt.Errorf("%w: %s refers to itself", ErrCycleFormula, addr)
	}
	s, err := e.value(addr)
	if err != nil {
		return 0, err
	}
	if s == MarkerCycle {
		return 0, fmt.Errorf("%w: %s is on a cycle", ErrCycleFormula, addr)
	}
	v, ok := ParseNumber(s)
	if !ok {
		return 0, fmt.Errorf("%w: %s holds %q", ErrInvalidFormula, addr, s)
	}
	return v, nil
}

func operatorPriority(b byte) int {
	switch b {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	default:
		return -1
	}
}

// indexOfMainOp returns the index of the operator outside parentheses
// that binds loosest, preferring the rightmost among equals so that
// evaluation is left-associative. It returns -1 if there is none.
func indexOfMainOp(form string) int {
	depth, idx, lowest := 0, -1, 4
	for i := 0; i < len(form); i++ {
		switch c := form[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0:
			if p := operatorPriority(c); p != -1 && p <= lowest {
				idx, lowest = i, p
			}
		}
	}
	return idx
}

// closingParen returns the index in s of the ')' that closes a '('
// opened just before s.
func closingParen(s string) (int, error) {
	open := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			open++
		case ')':
			if open == 0 {
				return i, nil
			}
			open--
		}
	}
	return -1, fmt.Errorf("%w: unbalanced parentheses", ErrInvalidFormula)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
