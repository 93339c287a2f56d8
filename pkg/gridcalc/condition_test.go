package gridcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeIf(t *testing.T) {
	g := newTestGrid(t, 26, 100)
	set(t, g, "U0", "3", "U5", "10", "U6", "50", "U7", "100")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"number_branch", "=if(1<2,1,2)", "1.0"},
		{"text_branch", "=if(U0>3, big,small)", "small"},
		{"equality", "=if(101+1==102,20,0)", "20.0"},
		{"formula_branch", "=if(U6/U5 == U0, =U0+1, =U7*3)", "300.0"},
		{"upper_case", "=IF(1==1,Hi,not)", "Hi"},
		{"less_equal", "=if(U0<=3,yes,no)", "yes"},
		{"greater_equal", "=if(U0>=4,yes,no)", "no"},
		{"not_equal", "=if(U5!=U6,yes,no)", "yes"},
		{"nested", "=if(1<2,=if(2<1,a,b),c)", "b"},
		{"function_branch", "=if(1<2,=sum(U5:U7),0)", "160.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := g.ComputeIf(tt.input, 10, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestComputeIfErrors(t *testing.T) {
	g := newTestGrid(t, 26, 100)
	set(t, g, "U6", "50")

	for _, input := range []string{
		"=if(1,2,3",
		"=if(u6>1, 1 )",
		"=if(u566<u6, 1, 0)",
		"=if(test<2, 1, 0)",
		"=if(, 5, 10)",
		"=if(A1>0, B1)",
		"=if(A1,, 10)",
		"=if(1<2,=abc,0)",
		"=if(1<2<3,1,0)",
		"=sum(A0:A1)",
	} {
		_, err := g.ComputeIf(input, 10, 10)
		assert.ErrorIs(t, err, ErrInvalidCondition, input)
	}

	t.Run("self_reference", func(t *testing.T) {
		_, err := g.ComputeIf("=if(A0>1,1,0)", 0, 0)
		assert.ErrorIs(t, err, ErrCycleCondition)

		_, err = g.ComputeIf("=if(1>0,=B2+1,0)", 1, 2)
		assert.ErrorIs(t, err, ErrCycleCondition)
	})

	t.Run("literal_match", func(t *testing.T) {
		// A10 contains the text "A1".
		_, err := g.ComputeIf("=if(A10>1,1,0)", 0, 1)
		assert.ErrorIs(t, err, ErrCycleCondition)
	})
}

func TestConditionCells(t *testing.T) {
	g := newTestGrid(t, 26, 100)
	set(t, g,
		"A0", "4",
		"B0", "=if(A0>3,=A0*10,low)",
		"B1", "=if(A0>3, 1 )",
		"B2", "=if(B2>0,1,0)",
		"B3", "=if(B0==40,=B0/8,0)",
	)
	assert.Equal(t, "40.0", value(g, "B0"))
	assert.Equal(t, MarkerCondition, value(g, "B1"))
	assert.Equal(t, MarkerCondition, value(g, "B2"))
	assert.Equal(t, "5.0", value(g, "B3"))
	assert.Equal(t, 2, g.Lookup("B3").Order())

	set(t, g, "A0", "1")
	assert.Equal(t, "low", value(g, "B0"))
	assert.Equal(t, MarkerCondition, value(g, "B3"))
}

func TestSplitArguments(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{"a,b,", []string{"a", "b"}},
		{"a,,c", []string{"a", "", "c"}},
		{",b,c", []string{"", "b", "c"}},
		{"1<2,=if(1<2,a,b),c", []string{"1<2", "=if(1<2,a,b)", "c"}},
		{"=sum(A0:A1),x", []string{"=sum(A0:A1)", "x"}},
		{"", []string{}},
		{",,", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SplitArguments(tt.input), tt.input)
	}
}
