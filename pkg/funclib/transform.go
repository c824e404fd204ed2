package funclib

import "math"

// Transform functions map a vector to a new vector of the same length.
// Degenerate inputs (zero range, zero deviation) pass through unchanged
// rather than producing NaNs.

func registerTransform() {
	register(CategoryTransform, "normalize", "Rescale values to [0, 1].", normalizeFn)
	register(CategoryTransform, "standardize", "Center to zero mean and unit deviation.", standardizeFn)
	register(CategoryTransform, "scale", "Multiply values by a factor (default 1).", scaleFn)
	register(CategoryTransform, "log_transform", "Natural log; non-positive values treated as 1.", logTransformFn)
	register(CategoryTransform, "power_transform", "Raise values to a power (default 2).", powerTransformFn)
}

func normalizeFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return []float64{}, nil
	}
	lo, _ := minOf(x)
	hi, _ := maxOf(x)
	if hi == lo {
		return append([]float64(nil), x...), nil
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - lo) / (hi - lo)
	}
	return out, nil
}

func standardizeFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return []float64{}, nil
	}
	m, _ := meanOf(x)
	sd, _ := stdOf(x)
	if sd == 0 {
		return append([]float64(nil), x...), nil
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - m) / sd
	}
	return out, nil
}

func scaleFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	factor, err := numericParam(args, 1, 1)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * factor
	}
	return out, nil
}

func logTransformFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		if v > 0 {
			out[i] = math.Log(v)
		} else {
			out[i] = 0 // log(1)
		}
	}
	return out, nil
}

func powerTransformFn(args []Value) (Value, error) {
	x, err := dataArg(args)
	if err != nil {
		return nil, err
	}
	power, err := numericParam(args, 1, 2)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Pow(v, power)
	}
	return out, nil
}
