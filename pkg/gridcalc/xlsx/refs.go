package xlsx

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
	"github.com/xuri/efp"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormula indicates an Excel formula construct that has no
// grid equivalent (sheet references, text concatenation, percent, ...).
var ErrUnsupportedFormula = errors.New("unsupported formula")

// FromExcelFormula converts an Excel formula (with or without its leading
// "=") into grid cell text. Excel rows start at 1 while grid rows start
// at 0, so every reference moves up one row.
func FromExcelFormula(formula string) (string, error) {
	formula = strings.TrimPrefix(formula, "=")
	ps := efp.ExcelParser()
	body, err := renderTokens(ps.Parse(formula))
	if err != nil {
		return "", fmt.Errorf("%q: %w", formula, err)
	}
	return "=" + body, nil
}

func renderTokens(tokens []efp.Token) (string, error) {
	var b strings.Builder
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.TType {
		case efp.TokenTypeFunction:
			if t.TSubType == efp.TokenSubTypeStop {
				b.WriteString(")")
				continue
			}
			if strings.EqualFold(t.TValue, "IF") {
				args, next := functionArgs(tokens, i)
				s, err := renderIf(args)
				if err != nil {
					return "", err
				}
				b.WriteString(s)
				i = next
				continue
			}
			name := strings.ToLower(t.TValue)
			if !slices.Contains(gridcalc.Functions, name) {
				return "", fmt.Errorf("%w: function %s", ErrUnsupportedFormula, t.TValue)
			}
			b.WriteString(name + "(")
		case efp.TokenTypeSubexpression:
			if t.TSubType == efp.TokenSubTypeStart {
				b.WriteString("(")
			} else {
				b.WriteString(")")
			}
		case efp.TokenTypeArgument:
			b.WriteString(",")
		case efp.TokenTypeOperand:
			s, err := renderOperand(t)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case efp.TokenTypeOperatorInfix:
			switch t.TValue {
			case "=":
				b.WriteString("==")
			case "<>":
				b.WriteString("!=")
			case "+", "-", "*", "/", "<", ">", "<=", ">=":
				b.WriteString(t.TValue)
			default:
				return "", fmt.Errorf("%w: operator %q", ErrUnsupportedFormula, t.TValue)
			}
		case efp.TokenTypeOperatorPrefix:
			b.WriteString(t.TValue)
		case efp.TokenTypeWhitespace:
		default:
			return "", fmt.Errorf("%w: token %q (%s)", ErrUnsupportedFormula, t.TValue, t.TType)
		}
	}
	return b.String(), nil
}

func renderOperand(t efp.Token) (string, error) {
	switch t.TSubType {
	case efp.TokenSubTypeRange:
		return shiftExcelRef(t.TValue)
	case efp.TokenSubTypeNumber:
		return t.TValue, nil
	case efp.TokenSubTypeText:
		return plainText(t.TValue)
	default:
		return "", fmt.Errorf("%w: operand %q (%s)", ErrUnsupportedFormula, t.TValue, t.TSubType)
	}
}

// renderIf builds "if(cond,then,else)". Branches that are not a single
// number or text literal become nested "=..." expressions, which is how
// a grid condition tells formulas from text.
func renderIf(args [][]efp.Token) (string, error) {
	if len(args) != 3 {
		return "", fmt.Errorf("%w: IF with %d arguments", ErrUnsupportedFormula, len(args))
	}
	cond, err := renderTokens(args[0])
	if err != nil {
		return "", err
	}
	parts := []string{cond}
	for _, arg := range args[1:] {
		if lit, ok := literal(arg); ok {
			parts = append(parts, lit)
			continue
		}
		s, err := renderTokens(arg)
		if err != nil {
			return "", err
		}
		parts = append(parts, "="+s)
	}
	return "if(" + strings.Join(parts, ",") + ")", nil
}

func literal(tokens []efp.Token) (string, bool) {
	var found []efp.Token
	for _, t := range tokens {
		if t.TType != efp.TokenTypeWhitespace {
			found = append(found, t)
		}
	}
	if len(found) != 1 || found[0].TType != efp.TokenTypeOperand {
		return "", false
	}
	switch found[0].TSubType {
	case efp.TokenSubTypeNumber:
		return found[0].TValue, true
	case efp.TokenSubTypeText:
		if _, err := plainText(found[0].TValue); err == nil {
			return found[0].TValue, true
		}
	}
	return "", false
}

// plainText rejects text that would change how a grid condition splits
// its arguments once the quotes are gone.
func plainText(s string) (string, error) {
	if strings.ContainsAny(s, ",()") {
		return "", fmt.Errorf("%w: text %q", ErrUnsupportedFormula, s)
	}
	return s, nil
}

// functionArgs splits the arguments of the function opened at
// tokens[start] and returns the index of its closing token.
func functionArgs(tokens []efp.Token, start int) ([][]efp.Token, int) {
	args := [][]efp.Token{{}}
	depth := 1
	for i := start + 1; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case t.TSubType == efp.TokenSubTypeStart:
			depth++
		case t.TSubType == efp.TokenSubTypeStop:
			depth--
			if depth == 0 {
				return args, i
			}
		case depth == 1 && t.TType == efp.TokenTypeArgument:
			args = append(args, []efp.Token{})
			continue
		}
		args[len(args)-1] = append(args[len(args)-1], t)
	}
	return args, len(tokens) - 1
}

// shiftExcelRef turns "$B$2" into "B1" and "A1:C3" into "A0:C2".
func shiftExcelRef(ref string) (string, error) {
	if strings.Contains(ref, "!") {
		return "", fmt.Errorf("%w: cross-sheet reference %q", ErrUnsupportedFormula, ref)
	}
	parts := strings.Split(strings.ReplaceAll(ref, "$", ""), ":")
	for i, part := range parts {
		col, row, err := excelize.CellNameToCoordinates(part)
		if err != nil {
			return "", fmt.Errorf("%w: reference %q", ErrUnsupportedFormula, ref)
		}
		name := gridcalc.ColumnName(col - 1)
		if name == "" {
			return "", fmt.Errorf("%w: column of %q is beyond Z", ErrUnsupportedFormula, ref)
		}
		parts[i] = name + strconv.Itoa(row-1)
	}
	return strings.Join(parts, ":"), nil
}

// ToExcelFormula converts formula, function or condition cell text into
// an Excel formula without the leading "=".
func ToExcelFormula(raw string) (string, error) {
	switch gridcalc.Classify(raw) {
	case gridcalc.KindFormula:
		return shiftGridRefs(raw[1:]), nil
	case gridcalc.KindFunction:
		body := raw[1:]
		open := strings.IndexByte(body, '(')
		return strings.ToUpper(body[:open]) + shiftGridRefs(body[open:]), nil
	case gridcalc.KindCondition:
		if !strings.HasSuffix(raw, ")") {
			return "", fmt.Errorf("%w: unterminated condition %q", ErrUnsupportedFormula, raw)
		}
		args := gridcalc.SplitArguments(raw[len("=if(") : len(raw)-1])
		if len(args) != 3 {
			return "", fmt.Errorf("%w: condition %q needs 3 arguments", ErrUnsupportedFormula, raw)
		}
		cond := shiftGridRefs(strings.TrimSpace(args[0]))
		cond = strings.ReplaceAll(cond, "==", "=")
		cond = strings.ReplaceAll(cond, "!=", "<>")
		parts := []string{cond}
		for _, arg := range args[1:] {
			s, err := excelBranch(strings.TrimSpace(arg))
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "IF(" + strings.Join(parts, ",") + ")", nil
	default:
		return "", fmt.Errorf("%w: %q is not a formula", ErrUnsupportedFormula, raw)
	}
}

func excelBranch(text string) (string, error) {
	switch gridcalc.Classify(text) {
	case gridcalc.KindNumber:
		return text, nil
	case gridcalc.KindText:
		return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`, nil
	default:
		return ToExcelFormula(text)
	}
}

// shiftGridRefs moves every letter+digits cell name in s down one row,
// e.g. "A0+b9" becomes "A1+B10". Function names are left alone.
func shiftGridRefs(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) || (i > 0 && isAlnum(s[i-1])) {
			b.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == i+1 || (j < len(s) && (isAlnum(s[j]) || s[j] == '(')) {
			b.WriteByte(c)
			continue
		}
		row, err := strconv.Atoi(s[i+1 : j])
		if err != nil {
			b.WriteString(s[i:j])
			i = j - 1
			continue
		}
		b.WriteString(strings.ToUpper(string(c)) + strconv.Itoa(row+1))
		i = j - 1
	}
	return b.String()
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlnum(c byte) bool  { return isLetter(c) || (c >= '0' && c <= '9') }
