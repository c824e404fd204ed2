package sandbox_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacharts-labs/datacharts/pkg/dataset"
	"github.com/datacharts-labs/datacharts/pkg/expr"
	"github.com/datacharts-labs/datacharts/pkg/sandbox"
)

func evalValue(t *testing.T, text string, binding dataset.Binding) any {
	t.Helper()
	e, err := expr.Parse(text)
	require.NoError(t, err)

	ev := sandbox.NewEvaluator(sandbox.Limits{})
	v, err := ev.EvaluateValue(context.Background(), e, binding)
	require.NoError(t, err)
	return v
}

func TestEvaluateScalarArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 / 4", 2.5},
		{"7 % 3", 1},
		{"2 ^ 10", 1024},
		{"2 ** 3 ** 2", 512}, // right-associative
		{"-2 ** 2", -4},
		{"10 - -3", 13},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := evalValue(t, tt.input, nil)
			assert.InDelta(t, tt.want, v.(float64), 1e-12)
		})
	}
}

func TestEvaluateComparisons(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"3 > 2", 1},
		{"3 < 2", 0},
		{"2 == 2", 1},
		{"2 != 2", 0},
		{"2 <= 2", 1},
		{"3 >= 4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := evalValue(t, tt.input, nil)
			assert.Equal(t, tt.want, v.(float64))
		})
	}
}

func TestEvaluateConstants(t *testing.T) {
	v := evalValue(t, "pi", nil)
	assert.InDelta(t, math.Pi, v.(float64), 1e-12)

	v = evalValue(t, "e ^ 2", nil)
	assert.InDelta(t, math.E*math.E, v.(float64), 1e-12)
}

func TestEvaluateBroadcasting(t *testing.T) {
	binding := dataset.Binding{
		"x": {1, 2, 3},
		"y": {10, 20, 30},
	}

	v := evalValue(t, "x + y", binding)
	assert.Equal(t, []float64{11, 22, 33}, v)

	v = evalValue(t, "x * 10", binding)
	assert.Equal(t, []float64{10, 20, 30}, v)

	v = evalValue(t, "100 - x", binding)
	assert.Equal(t, []float64{99, 98, 97}, v)

	v = evalValue(t, "x > 1", binding)
	assert.Equal(t, []float64{0, 1, 1}, v)
}

func TestEvaluateVectorLengthMismatch(t *testing.T) {
	e, err := expr.Parse("x + y")
	require.NoError(t, err)

	ev := sandbox.NewEvaluator(sandbox.Limits{})
	_, err = ev.EvaluateValue(context.Background(), e, dataset.Binding{
		"x": {1, 2, 3},
		"y": {1, 2},
	})
	require.Error(t, err)

	var mismatch *sandbox.LengthMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestEvaluateFunctions(t *testing.T) {
	binding := dataset.Binding{"x": {2, 4, 6}}

	v := evalValue(t, "mean(x)", binding)
	assert.InDelta(t, 4, v.(float64), 1e-12)

	v = evalValue(t, "sqrt(x)", binding)
	got := v.([]float64)
	assert.InDelta(t, math.Sqrt2, got[0], 1e-12)

	// Synonyms resolve through the parser.
	v = evalValue(t, "avg(x) + stdev(x)", binding)
	assert.InDelta(t, 4+math.Sqrt(8.0/3.0), v.(float64), 1e-12)
}

func TestEvaluateCompositeExpression(t *testing.T) {
	binding := dataset.Binding{"x": {1, 2, 3, 4}}
	v := evalValue(t, "(x - mean(x)) / std(x)", binding)

	got := v.([]float64)
	require.Len(t, got, 4)
	assert.InDelta(t, -got[0], got[3], 1e-12, "standardized values are symmetric")

	var sum float64
	for _, g := range got {
		sum += g
	}
	assert.InDelta(t, 0, sum, 1e-12)
}

func TestEvaluateUndefinedName(t *testing.T) {
	e, err := expr.Parse("ghost + 1")
	require.NoError(t, err)

	ev := sandbox.NewEvaluator(sandbox.Limits{})
	_, err = ev.EvaluateValue(context.Background(), e, nil)
	require.Error(t, err)

	var undef *sandbox.UndefinedNameError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "ghost", undef.Name)
}

func TestEvaluateLenBuiltin(t *testing.T) {
	v := evalValue(t, "len(x)", dataset.Binding{"x": {1, 2, 3}})
	assert.Equal(t, 3.0, v)
}

func TestEvaluateDivisionByZeroYieldsInf(t *testing.T) {
	v := evalValue(t, "1 / 0", nil)
	assert.True(t, math.IsInf(v.(float64), 1))

	v = evalValue(t, "0 / 0", nil)
	assert.True(t, math.IsNaN(v.(float64)))
}

func TestEvaluateTimeout(t *testing.T) {
	e, err := expr.Parse("mean(x) + std(x)")
	require.NoError(t, err)

	// A nanosecond deadline expires before the first interpreter step.
	ev := sandbox.NewEvaluator(sandbox.Limits{MaxExecutionTime: time.Nanosecond})
	result, err := ev.Evaluate(context.Background(), e, dataset.Binding{"x": {1, 2, 3}}, 3)
	require.NoError(t, err)
	assert.Equal(t, sandbox.StatusError, result.Status)
	assert.Contains(t, result.ErrorMessage, "timed out")
}

func TestEvaluateResultStatus(t *testing.T) {
	e, err := expr.Parse("x * 2")
	require.NoError(t, err)

	ev := sandbox.NewEvaluator(sandbox.Limits{})
	result, err := ev.Evaluate(context.Background(), e, dataset.Binding{"x": {1, 2, 3}}, 3)
	require.NoError(t, err)

	assert.Equal(t, sandbox.StatusSuccess, result.Status)
	assert.Equal(t, sandbox.KindVector, result.Value.Kind)
	assert.True(t, result.Value.RowAligned)
	assert.Equal(t, []float64{2, 4, 6}, result.Value.Values)
	assert.GreaterOrEqual(t, result.Elapsed, time.Duration(0))
}

func TestCoerce(t *testing.T) {
	r := sandbox.Coerce(3.5, 10)
	assert.Equal(t, sandbox.KindScalar, r.Kind)
	v, ok := r.Scalar()
	require.True(t, ok)
	assert.Equal(t, 3.5, v)

	r = sandbox.Coerce([]float64{7}, 10)
	assert.Equal(t, sandbox.KindScalar, r.Kind, "one-element vectors collapse")

	r = sandbox.Coerce([]float64{1, 2, 3}, 3)
	assert.Equal(t, sandbox.KindVector, r.Kind)
	assert.True(t, r.RowAligned)

	r = sandbox.Coerce([]float64{1, 2, 3}, 5)
	assert.Equal(t, sandbox.KindVector, r.Kind)
	assert.False(t, r.RowAligned)
}

func TestResultValueColumn(t *testing.T) {
	r := sandbox.Coerce(2.0, 4)
	assert.Equal(t, []float64{2, 2, 2, 2}, r.Column(4))

	r = sandbox.Coerce([]float64{1, 2}, 4)
	col := r.Column(4)
	assert.Equal(t, 1.0, col[0])
	assert.Equal(t, 2.0, col[1])
	assert.True(t, math.IsNaN(col[2]), "misaligned vectors pad with NaN")
}
