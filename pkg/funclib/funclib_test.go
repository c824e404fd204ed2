package funclib_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacharts-labs/datacharts/pkg/funclib"
)

// call invokes a registry function by name.
func call(t *testing.T, name string, args ...funclib.Value) funclib.Value {
	t.Helper()
	fn, ok := funclib.Impl(name)
	require.True(t, ok, "function %s not registered", name)
	out, err := fn(args)
	require.NoError(t, err)
	return out
}

func vec(t *testing.T, v funclib.Value) []float64 {
	t.Helper()
	out, ok := v.([]float64)
	require.True(t, ok, "expected vector, got %T", v)
	return out
}

func scalar(t *testing.T, v funclib.Value) float64 {
	t.Helper()
	out, ok := v.(float64)
	require.True(t, ok, "expected scalar, got %T", v)
	return out
}

func TestRegistryCatalog(t *testing.T) {
	names := funclib.Names()
	assert.Len(t, names, 28)
	assert.True(t, funclib.IsSupported("mean"))
	assert.False(t, funclib.IsSupported("ln"), "synonyms live in the parser, not the registry")

	categories := funclib.Categories()
	assert.Len(t, categories[funclib.CategoryMath], 10)
	assert.Len(t, categories[funclib.CategoryStatistical], 9)
	assert.Len(t, categories[funclib.CategoryTransform], 5)
	assert.Len(t, categories[funclib.CategoryFilter], 4)
}

func TestMathElementwise(t *testing.T) {
	out := vec(t, call(t, "sqrt", []float64{1, 4, 9}))
	assert.Equal(t, []float64{1, 2, 3}, out)

	s := scalar(t, call(t, "abs", -3.5))
	assert.Equal(t, 3.5, s)
}

func TestRoundIsHalfToEven(t *testing.T) {
	out := vec(t, call(t, "round", []float64{0.5, 1.5, 2.5, -0.5}))
	assert.Equal(t, []float64{0, 2, 2, 0}, out)
}

func TestLogDomainFollowsIEEE(t *testing.T) {
	out := vec(t, call(t, "log", []float64{math.E, 0, -1}))
	assert.InDelta(t, 1, out[0], 1e-12)
	assert.True(t, math.IsInf(out[1], -1))
	assert.True(t, math.IsNaN(out[2]))
}

func TestStatisticalReductions(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 5, scalar(t, call(t, "mean", x)), 1e-12)
	// Population std of this classic set is exactly 2.
	assert.InDelta(t, 2, scalar(t, call(t, "std", x)), 1e-12)
	assert.InDelta(t, 4, scalar(t, call(t, "var", x)), 1e-12)
	assert.InDelta(t, 4.5, scalar(t, call(t, "median", x)), 1e-12)
	assert.InDelta(t, 2, scalar(t, call(t, "min", x)), 1e-12)
	assert.InDelta(t, 9, scalar(t, call(t, "max", x)), 1e-12)
	assert.InDelta(t, 40, scalar(t, call(t, "sum", x)), 1e-12)
	assert.InDelta(t, 8, scalar(t, call(t, "count", x)), 1e-12)
}

func TestStatisticalOnScalar(t *testing.T) {
	// A scalar argument is a one-element vector.
	assert.InDelta(t, 7, scalar(t, call(t, "mean", 7.0)), 1e-12)
	assert.InDelta(t, 0, scalar(t, call(t, "std", 7.0)), 1e-12)
}

func TestQuantile(t *testing.T) {
	x := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1, scalar(t, call(t, "quantile", x, 0.0)), 1e-12)
	assert.InDelta(t, 2.5, scalar(t, call(t, "quantile", x, 0.5)), 1e-12)
	assert.InDelta(t, 4, scalar(t, call(t, "quantile", x, 1.0)), 1e-12)
	// Linear interpolation: pos = 0.25 * 3 = 0.75 between 1 and 2.
	assert.InDelta(t, 1.75, scalar(t, call(t, "quantile", x, 0.25)), 1e-12)
}

func TestQuantileErrors(t *testing.T) {
	fn, _ := funclib.Impl("quantile")

	_, err := fn([]funclib.Value{[]float64{1, 2}})
	require.Error(t, err)

	_, err = fn([]funclib.Value{[]float64{1, 2}, 1.5})
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	out := vec(t, call(t, "normalize", []float64{10, 20, 30}))
	assert.InDelta(t, 0, out[0], 1e-12)
	assert.InDelta(t, 0.5, out[1], 1e-12)
	assert.InDelta(t, 1, out[2], 1e-12)

	// Constant input passes through unchanged.
	flat := vec(t, call(t, "normalize", []float64{5, 5, 5}))
	assert.Equal(t, []float64{5, 5, 5}, flat)
}

func TestStandardize(t *testing.T) {
	out := vec(t, call(t, "standardize", []float64{2, 4, 4, 4, 5, 5, 7, 9}))
	// Mean 5, population std 2.
	assert.InDelta(t, -1.5, out[0], 1e-12)
	assert.InDelta(t, 2, out[7], 1e-12)

	flat := vec(t, call(t, "standardize", []float64{3, 3}))
	assert.Equal(t, []float64{3, 3}, flat)
}

func TestScale(t *testing.T) {
	out := vec(t, call(t, "scale", []float64{1, 2}, 2.5))
	assert.Equal(t, []float64{2.5, 5}, out)

	// Default factor 1 is the identity.
	id := vec(t, call(t, "scale", []float64{1, 2}))
	assert.Equal(t, []float64{1, 2}, id)
}

func TestLogTransformClampsNonPositive(t *testing.T) {
	out := vec(t, call(t, "log_transform", []float64{math.E, 0, -5}))
	assert.InDelta(t, 1, out[0], 1e-12)
	assert.Equal(t, 0.0, out[1])
	assert.Equal(t, 0.0, out[2])
}

func TestPowerTransform(t *testing.T) {
	// Default power 2.
	out := vec(t, call(t, "power_transform", []float64{2, 3}))
	assert.Equal(t, []float64{4, 9}, out)

	cubes := vec(t, call(t, "power_transform", []float64{2, 3}, 3.0))
	assert.Equal(t, []float64{8, 27}, cubes)
}

func TestMovingAverage(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7}
	out := vec(t, call(t, "moving_average", x, 3.0))

	// Centered window of 3: interior positions are exact means, edges are
	// filled from the nearest full window.
	assert.InDelta(t, 2, out[1], 1e-12)
	assert.InDelta(t, 4, out[3], 1e-12)
	assert.InDelta(t, 6, out[5], 1e-12)
	assert.InDelta(t, out[1], out[0], 1e-12) // backfill
	assert.InDelta(t, out[5], out[6], 1e-12) // forward fill
}

func TestMovingAverageShortInput(t *testing.T) {
	// Window wider than the data degrades to the overall mean.
	out := vec(t, call(t, "moving_average", []float64{1, 2, 3}, 10.0))
	for _, v := range out {
		assert.InDelta(t, 2, v, 1e-12)
	}
}

func TestGaussianFilterPreservesConstants(t *testing.T) {
	out := vec(t, call(t, "gaussian_filter", []float64{4, 4, 4, 4, 4}))
	for _, v := range out {
		assert.InDelta(t, 4, v, 1e-9)
	}
}

func TestGaussianFilterSmooths(t *testing.T) {
	x := []float64{0, 0, 0, 10, 0, 0, 0}
	out := vec(t, call(t, "gaussian_filter", x, 1.0))

	// The spike spreads but mass stays centered.
	assert.Greater(t, out[3], out[2])
	assert.Greater(t, out[2], out[1])
	assert.InDelta(t, out[2], out[4], 1e-9)
}

func TestMedianFilterRemovesSpikes(t *testing.T) {
	x := []float64{1, 1, 100, 1, 1}
	out := vec(t, call(t, "median_filter", x, 3.0))
	assert.Equal(t, []float64{1, 1, 1, 1, 1}, out)
}

func TestRollingSum(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	out := vec(t, call(t, "rolling_sum", x, 2.0))
	// Warm-up positions are zero, then trailing pair sums.
	assert.Equal(t, []float64{0, 3, 5, 7, 9}, out)
}

func TestValidateUsage(t *testing.T) {
	assert.NoError(t, funclib.ValidateUsage("mean", 1))
	assert.Error(t, funclib.ValidateUsage("mean", 0))
	assert.Error(t, funclib.ValidateUsage("mean", 2), "mean is not parametric")
	assert.NoError(t, funclib.ValidateUsage("quantile", 2))
	assert.Error(t, funclib.ValidateUsage("nope", 1))
}
