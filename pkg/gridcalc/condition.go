package gridcalc

import (
	"fmt"
	"strings"
)

// Comparison operators in matching order. The first one present anywhere
// in a condition wins, so "<=" is tried before "<".
var comparisons = []string{"<=", ">=", "<", ">", "==", "!="}

// ComputeIf evaluates "=if(<condition>,<then>,<else>)" as if it were the
// content of (col, row) and returns the display string of the chosen branch.
func (g *Grid) ComputeIf(text string, col, row int) (string, error) {
	return g.newEvaluator().condition(text, col, row)
}

func (e *evaluator) condition(text string, col, row int) (string, error) {
	if !conditionPrefix.MatchString(text) || !strings.HasSuffix(text, ")") {
		return "", fmt.Errorf("%w: %q is not =if(...)", ErrInvalidCondition, text)
	}
	parts := SplitArguments(stripSpace(text[len("=if(") : len(text)-1]))
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: want 3 arguments, got %d", ErrInvalidCondition, len(parts))
	}

	// Literal match only: a cell name hidden behind another cell or a
	// range is not caught here.
	self := AddressFromCoords(col, row).String()
	for _, p := range parts {
		if self != "" && strings.Contains(p, self) {
			return "", fmt.Errorf("%w: %s appears in its own condition", ErrCycleCondition, self)
		}
	}

	ok, err := e.compare(parts[0], col, row)
	if err != nil {
		return "", err
	}
	branch := parts[2]
	if ok {
		branch = parts[1]
	}

	switch Classify(branch) {
	case KindFormula:
		v, err := e.formula(branch, col, row)
		if err != nil {
			return "", conditionError(err)
		}
		return FormatNumber(v), nil
	case KindNumber:
		v, _ := ParseNumber(branch)
		return FormatNumber(v), nil
	case KindText:
		return branch, nil
	case KindCondition:
		return e.condition(branch, col, row)
	case KindFunction:
		v, err := e.function(branch, col, row)
		if err != nil {
			return "", conditionError(err)
		}
		return FormatNumber(v), nil
	default:
		return "", fmt.Errorf("%w: unsupported branch %q", ErrInvalidCondition, branch)
	}
}

// compare evaluates "<formula><op><formula>".
func (e *evaluator) compare(cond string, col, row int) (bool, error) {
	op := ""
	for _, candidate := range comparisons {
		if strings.Contains(cond, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		return false, fmt.Errorf("%w: no comparison in %q", ErrInvalidCondition, cond)
	}
	operands := dropTrailingEmpty(strings.Split(cond, op))
	if len(operands) != 2 {
		return false, fmt.Errorf("%w: %q needs exactly two operands", ErrInvalidCondition, cond)
	}
	a, err := e.formula("="+operands[0], col, row)
	if err != nil {
		return false, conditionError(err)
	}
	b, err := e.formula("="+operands[1], col, row)
	if err != nil {
		return false, conditionError(err)
	}

	switch op {
	case "<=":
		return a <= b, nil
	case ">=":
		return a >= b, nil
	case "<":
		return a < b, nil
	case ">":
		return a > b, nil
	case "==":
		return a == b, nil
	default:
		return a != b, nil
	}
}

func conditionError(err error) error {
	if isCycle(err) {
		return fmt.Errorf("%w: %w", ErrCycleCondition, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidCondition, err)
}

// SplitArguments splits s on commas outside parentheses. Trailing empty
// arguments are dropped, so "a,b," has two arguments.
func SplitArguments(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return dropTrailingEmpty(parts)
}

func dropTrailingEmpty(parts []string) []string {
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
