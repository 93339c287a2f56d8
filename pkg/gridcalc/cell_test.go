package gridcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw      string
		expected Kind
	}{
		{"", KindText},
		{"hello", KindText},
		{"12", KindNumber},
		{"-0.5", KindNumber},
		{"Infinity", KindNumber},
		{"=if(1<2,1,2)", KindCondition},
		{"=IF(", KindCondition},
		{"=sum(A0:A1)", KindFunction},
		{"=Average(A0:A1)", KindFunction},
		{"=MIN(", KindFunction},
		{"=max(B1:B2)", KindFunction},
		{"=summm(A0:A1)", KindFormula},
		{"=A1+2", KindFormula},
		{"=", KindFormula},
		{"=ifx", KindFormula},
		{"if(1<2,1,2)", KindText},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.raw), "Classify(%q)", tt.raw)
	}
}

func TestCell(t *testing.T) {
	c := NewCell("=A0+1")
	assert.Equal(t, KindFormula, c.Kind())
	assert.Equal(t, "=A0+1", c.Raw())

	c.SetRaw("42")
	assert.Equal(t, KindNumber, c.Kind())
	assert.Equal(t, "42", c.String())

	c.SetKind(KindErrFormula)
	c.SetOrder(3)
	assert.Equal(t, KindErrFormula, c.Kind())
	assert.Equal(t, 3, c.Order())
}

func TestKindMarker(t *testing.T) {
	assert.Equal(t, "ERR_FORM!", KindErrFormula.Marker())
	assert.Equal(t, "ERR_CYCLE!", KindErrCycle.Marker())
	assert.Equal(t, "ERR_IF!", KindErrCondition.Marker())
	assert.Equal(t, "ERR_FUNC!", KindErrFunction.Marker())
	assert.Equal(t, "", KindText.Marker())

	assert.True(t, KindErrCycle.IsError())
	assert.False(t, KindFormula.IsError())

	assert.Equal(t, "formula", KindFormula.String())
	assert.Equal(t, "condition-error", KindErrCondition.String())
	assert.Equal(t, "kind(7)", Kind(7).String())
}

func TestCycleKind(t *testing.T) {
	assert.Equal(t, KindErrCondition, KindCondition.cycleKind())
	assert.Equal(t, KindErrFunction, KindFunction.cycleKind())
	assert.Equal(t, KindErrCycle, KindFormula.cycleKind())
	assert.Equal(t, KindErrCycle, KindErrFormula.cycleKind())
}
