package gridcalc

import (
	"regexp"
	"strconv"
)

// Kind classifies the content of a cell. Negative kinds are error states
// entered when evaluation fails.
type Kind int

const (
	KindText      Kind = 1
	KindNumber    Kind = 2
	KindFormula   Kind = 3
	KindFunction  Kind = 4
	KindCondition Kind = 5

	KindErrCycle     Kind = -1
	KindErrFormula   Kind = -2
	KindErrFunction  Kind = -4
	KindErrCondition Kind = -5
)

// Display markers shown in place of a value.
const (
	MarkerEmpty     = ""
	MarkerFormula   = "ERR_FORM!"
	MarkerCycle     = "ERR_CYCLE!"
	MarkerCondition = "ERR_IF!"
	MarkerFunction  = "ERR_FUNC!"
)

// Functions lists the aggregate names in matching order.
var Functions = []string{"sum", "average", "min", "max"}

var (
	conditionPrefix = regexp.MustCompile(`(?i)^=if\(`)
	functionPrefix  = regexp.MustCompile(`(?i)^=(sum|average|min|max)\(`)
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindFormula:
		return "formula"
	case KindFunction:
		return "function"
	case KindCondition:
		return "condition"
	case KindErrCycle:
		return "cycle-error"
	case KindErrFormula:
		return "formula-error"
	case KindErrFunction:
		return "function-error"
	case KindErrCondition:
		return "condition-error"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsError reports whether k is one of the error states.
func (k Kind) IsError() bool { return k < 0 }

// Marker returns the display marker of an error kind, or "" otherwise.
func (k Kind) Marker() string {
	switch k {
	case KindErrCycle:
		return MarkerCycle
	case KindErrFormula:
		return MarkerFormula
	case KindErrFunction:
		return MarkerFunction
	case KindErrCondition:
		return MarkerCondition
	default:
		return MarkerEmpty
	}
}

// cycleKind returns the error state a cell of kind k falls into when it
// is part of a cycle.
func (k Kind) cycleKind() Kind {
	switch k {
	case KindCondition, KindErrCondition:
		return KindErrCondition
	case KindFunction, KindErrFunction:
		return KindErrFunction
	default:
		return KindErrCycle
	}
}

// Classify derives the kind of raw cell text.
func Classify(raw string) Kind {
	switch {
	case raw == "":
		return KindText
	case isNumber(raw):
		return KindNumber
	case conditionPrefix.MatchString(raw):
		return KindCondition
	case functionPrefix.MatchString(raw):
		return KindFunction
	case raw[0] == '=':
		return KindFormula
	default:
		return KindText
	}
}

func isNumber(text string) bool {
	_, ok := ParseNumber(text)
	return ok
}

// Cell holds raw text together with its kind and evaluation order.
type Cell struct {
	raw   string
	kind  Kind
	order int
}

// NewCell returns a cell classified from raw.
func NewCell(raw string) *Cell {
	return &Cell{raw: raw, kind: Classify(raw)}
}

// Raw returns the text the cell was set to.
func (c *Cell) Raw() string { return c.raw }

// SetRaw replaces the text and reclassifies the cell.
func (c *Cell) SetRaw(raw string) {
	c.raw = raw
	c.kind = Classify(raw)
}

// Kind returns the current kind, which evaluation may have demoted to an
// error kind.
func (c *Cell) Kind() Kind { return c.kind }

// SetKind overrides the kind without touching the raw text.
func (c *Cell) SetKind(kind Kind) { c.kind = kind }

// Order is the dependency depth recorded by the last evaluation pass,
// -1 for cells on a cycle.
func (c *Cell) Order() int { return c.order }

// SetOrder records the evaluation order.
func (c *Cell) SetOrder(order int) { c.order = order }

// String returns the raw text.
func (c *Cell) String() string { return c.raw }
