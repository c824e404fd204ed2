package funclib

import (
	"fmt"
	"math"
	"sort"
)

// Filter functions smooth or aggregate a vector over a sliding window,
// returning a vector of the same length. Edge handling mirrors the
// reference numerics: centered windows back/forward-fill the edges,
// trailing windows zero-fill the warm-up prefix, and convolution filters
// use reflect padding.

func registerFilter() {
	register(CategoryFilter, "moving_average", "Centered rolling mean (default window 5).", movingAverageFn)
	register(CategoryFilter, "gaussian_filter", "1-D gaussian smoothing (default sigma 1).", gaussianFilterFn)
	register(CategoryFilter, "median_filter", "Sliding-window median (default size 3).", medianFilterFn)
	register(CategoryFilter, "rolling_sum", "Trailing rolling sum (default window 5).", rollingSumFn)
}

// windowParam reads an integer window/size parameter with a default.
func windowParam(args []Value, i int, def int) (int, error) {
	v, err := numericParam(args, i, float64(def))
	if err != nil {
		return 0, err
	}
	w := int(v)
	if w < 1 {
		return 0, fmt.Errorf("window must be >= 1, got %g", v)
	}
	return w, nil
}

// movingAverageFn computes a centered rolling mean. Positions without a
// full window are filled from the nearest computed value (backfill then
// forward fill).
func movingAverageFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	window, err := windowParam(args, 1, 5)
	if err != nil {
		return nil, err
	}
	n := len(x)
	if n == 0 {
		return []float64{}, nil
	}
	if window > n {
		window = n
	}

	out := make([]float64, n)
	valid := make([]bool, n)
	half := (window - 1) / 2
	for i := 0; i < n; i++ {
		lo := i - half
		hi := lo + window // exclusive
		if lo < 0 || hi > n {
			continue
		}
		var s float64
		for _, v := range x[lo:hi] {
			s += v
		}
		out[i] = s / float64(window)
		valid[i] = true
	}

	// Backfill from the first valid value, then forward fill the tail.
	first, last := -1, -1
	for i, ok := range valid {
		if ok {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		// No full window anywhere; degrade to the overall mean.
		m, _ := meanOf(x)
		for i := range out {
			out[i] = m
		}
		return out, nil
	}
	for i := 0; i < first; i++ {
		out[i] = out[first]
	}
	for i := last + 1; i < n; i++ {
		out[i] = out[last]
	}
	return out, nil
}

// gaussianFilterFn convolves with a normalized gaussian kernel of radius
// round(4*sigma), using reflect padding at the edges.
func gaussianFilterFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	sigma, err := numericParam(args, 1, 1)
	if err != nil {
		return nil, err
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("sigma must be > 0, got %g", sigma)
	}
	n := len(x)
	if n == 0 {
		return []float64{}, nil
	}

	radius := int(4*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	var ksum float64
	for i := -radius; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = w
		ksum += w
	}
	for i := range kernel {
		kernel[i] /= ksum
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var s float64
		for k := -radius; k <= radius; k++ {
			s += kernel[k+radius] * x[reflectIndex(i+k, n)]
		}
		out[i] = s
	}
	return out, nil
}

// medianFilterFn applies a sliding-window median with reflect padding.
func medianFilterFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	size, err := windowParam(args, 1, 3)
	if err != nil {
		return nil, err
	}
	n := len(x)
	if n == 0 {
		return []float64{}, nil
	}

	left := size / 2
	right := size - left - 1
	window := make([]float64, size)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		for k := -left; k <= right; k++ {
			window[k+left] = x[reflectIndex(i+k, n)]
		}
		sort.Float64s(window)
		if size%2 == 1 {
			out[i] = window[size/2]
		} else {
			out[i] = (window[size/2-1] + window[size/2]) / 2
		}
	}
	return out, nil
}

// rollingSumFn computes a trailing rolling sum; positions without a full
// window are zero.
func rollingSumFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	window, err := windowParam(args, 1, 5)
	if err != nil {
		return nil, err
	}
	n := len(x)
	out := make([]float64, n)
	if window > n {
		return out, nil
	}

	var s float64
	for i := 0; i < n; i++ {
		s += x[i]
		if i >= window {
			s -= x[i-window]
		}
		if i >= window-1 {
			out[i] = s
		}
	}
	return out, nil
}

// reflectIndex maps an out-of-range index into [0, n) by reflecting about
// the edges (the d c b a | a b c d scheme).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
