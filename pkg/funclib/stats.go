package funclib

import (
	"fmt"
	"math"
	"sort"
)

// Statistical functions reduce a vector to a scalar. A scalar argument is
// treated as a one-element vector.

func registerStatistical() {
	register(CategoryStatistical, "mean", "Arithmetic mean of the values.", reduce(meanOf))
	register(CategoryStatistical, "std", "Population standard deviation.", reduce(stdOf))
	register(CategoryStatistical, "var", "Population variance.", reduce(varOf))
	register(CategoryStatistical, "median", "Median of the values.", reduce(medianOf))
	register(CategoryStatistical, "min", "Smallest value.", reduce(minOf))
	register(CategoryStatistical, "max", "Largest value.", reduce(maxOf))
	register(CategoryStatistical, "sum", "Sum of the values.", reduce(sumOf))
	register(CategoryStatistical, "count", "Number of values.", countFn)
	register(CategoryStatistical, "quantile", "Quantile q in [0,1] with linear interpolation.", quantileFn)
}

// reduce wraps a vector reduction as a registry Func.
func reduce(fn func(x []float64) (float64, error)) Func {
	return func(args []Value) (Value, error) {
		x, err := dataArg(args)
		if err != nil {
			return nil, err
		}
		return fn(x)
	}
}

func meanOf(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("mean of empty vector")
	}
	s, _ := sumOf(x)
	return s / float64(len(x)), nil
}

func varOf(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("variance of empty vector")
	}
	m, _ := meanOf(x)
	var ss float64
	for _, v := range x {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(x)), nil
}

func stdOf(x []float64) (float64, error) {
	v, err := varOf(x)
	if err != nil {
		return 0, fmt.Errorf("standard deviation of empty vector")
	}
	return math.Sqrt(v), nil
}

func medianOf(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("median of empty vector")
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

func minOf(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("min of empty vector")
	}
	m := x[0]
	for _, v := range x[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

func maxOf(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("max of empty vector")
	}
	m := x[0]
	for _, v := range x[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

func sumOf(x []float64) (float64, error) {
	var s float64
	for _, v := range x {
		s += v
	}
	return s, nil
}

func countFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	return float64(len(x)), nil
}

// quantileFn computes the q-th quantile with linear interpolation between
// closest ranks, matching the reference implementation.
func quantileFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("quantile of empty vector")
	}
	q, err := numericParam(args, 1, math.NaN())
	if err != nil {
		return nil, err
	}
	if math.IsNaN(q) {
		return nil, fmt.Errorf("quantile requires a q argument in [0, 1]")
	}
	if q < 0 || q > 1 {
		return nil, fmt.Errorf("quantile q must be in [0, 1], got %g", q)
	}

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac, nil
}
