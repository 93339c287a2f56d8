package xlsx

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
	"github.com/xuri/excelize/v2"
)

func TestFromExcelFormula(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"=A1+B2*2", "=A0+B1*2"},
		{"$C$10-1", "=C9-1"},
		{"SUM(A1:B3)", "=sum(A0:B2)"},
		{"=average(A2:A5)/2", "=average(A1:A4)/2"},
		{"(1+2)*3", "=(1+2)*3"},
		{"-A1", "=-A0"},
		{`IF(A1>0,"big",B1*2)`, "=if(A0>0,big,=B0*2)"},
		{"IF(A1=1,1,0)", "=if(A0==1,1,0)"},
		{"IF(A1<>B1,MAX(C1:C4),5)", "=if(A0!=B0,=max(C0:C3),5)"},
	}

	for _, tt := range tests {
		got, err := FromExcelFormula(tt.input)
		if err != nil {
			t.Errorf("FromExcelFormula(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("FromExcelFormula(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestFromExcelFormulaUnsupported(t *testing.T) {
	for _, input := range []string{
		`A1&"x"`,
		"Sheet2!A1+1",
		"AA1+1",
		"IF(A1>0,1)",
		"ROUND(A1,0)",
		"CONCATENATE(A1)",
		"SUM(A1:A3)+ABS(B1)",
		"IF(A1>0,SQRT(A1),0)",
		`IF(A1>1,"a,b","c")`,
		`IF(A1>1,"c","(x)")`,
	} {
		_, err := FromExcelFormula(input)
		if !errors.Is(err, ErrUnsupportedFormula) {
			t.Errorf("FromExcelFormula(%q): expected ErrUnsupportedFormula, got %v", input, err)
		}
	}
}

func TestImportUnsupportedFunction(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", 2.4)
	f.SetCellFormula("Sheet1", "B1", "ROUND(A1,0)")
	f.SetCellFormula("Sheet1", "B2", `IF(A1>1,"a,b","c")`)

	path := filepath.Join(t.TempDir(), "round.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	g, err := Import(path, ImportOptions{Grid: gridcalc.Options{Width: 4, Height: 4, Logger: logger}})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if raw := g.Get(1, 0).Raw(); raw != "=ROUND(A1,0)" {
		t.Errorf("Expected the Excel formula to be kept, got %q", raw)
	}
	if raw := g.Get(1, 1).Raw(); raw != `=IF(A1>1,"a,b","c")` {
		t.Errorf("Expected the Excel formula to be kept, got %q", raw)
	}
	if n := strings.Count(buf.String(), "formula kept untranslated"); n != 2 {
		t.Errorf("Expected 2 warnings, got %d in %q", n, buf.String())
	}
}

func TestToExcelFormula(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"=A0+b9", "A1+B10"},
		{"=2*(3+A10)", "2*(3+A11)"},
		{"=sum(A0:B2)", "SUM(A1:B3)"},
		{"=Average(c1:c4)", "AVERAGE(C2:C5)"},
		{"=if(A0>0,big,=B0*2)", `IF(A1>0,"big",B1*2)`},
		{"=if(A0==1,1,0)", "IF(A1=1,1,0)"},
		{"=if(A0!=1,=sum(A0:A1),0)", "IF(A1<>1,SUM(A1:A2),0)"},
		{`=if(1<2,say "hi",0)`, `IF(1<2,"say ""hi""",0)`},
	}

	for _, tt := range tests {
		got, err := ToExcelFormula(tt.input)
		if err != nil {
			t.Errorf("ToExcelFormula(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ToExcelFormula(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestToExcelFormulaErrors(t *testing.T) {
	for _, input := range []string{"hello", "42", "=if(1<2,1", "=if(1<2,1)"} {
		if _, err := ToExcelFormula(input); !errors.Is(err, ErrUnsupportedFormula) {
			t.Errorf("ToExcelFormula(%q): expected ErrUnsupportedFormula, got %v", input, err)
		}
	}
}

func TestShiftGridRefs(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"A0", "A1"},
		{"z99", "Z100"},
		{"A0:B1", "A1:B2"},
		{"AB1", "AB1"},
		{"x", "x"},
		{"12+a5", "12+A6"},
	}
	for _, tt := range tests {
		if got := shiftGridRefs(tt.input); got != tt.expected {
			t.Errorf("shiftGridRefs(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
