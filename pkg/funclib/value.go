package funclib

import "fmt"

// AsVector converts v to a vector view. Scalars become one-element vectors.
func AsVector(v Value) ([]float64, error) {
	switch x := v.(type) {
	case float64:
		return []float64{x}, nil
	case []float64:
		return x, nil
	default:
		return nil, fmt.Errorf("expected numeric value, got %T", v)
	}
}

// AsScalar converts v to a scalar. One-element vectors collapse.
func AsScalar(v Value) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case []float64:
		if len(x) == 1 {
			return x[0], nil
		}
		return 0, fmt.Errorf("expected scalar, got vector of length %d", len(x))
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}

// elementwise applies fn to v, preserving shape: scalars map to scalars,
// vectors to new vectors.
func elementwise(fn func(float64) float64) Func {
	return func(args []Value) (Value, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("missing data argument")
		}
		switch x := args[0].(type) {
		case float64:
			return fn(x), nil
		case []float64:
			out := make([]float64, len(x))
			for i, v := range x {
				out[i] = fn(v)
			}
			return out, nil
		default:
			return nil, fmt.Errorf("expected numeric value, got %T", args[0])
		}
	}
}

// dataArg returns the first argument as a vector view.
func dataArg(args []Value) ([]float64, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("missing data argument")
	}
	return AsVector(args[0])
}

// numericParam returns args[i] as a scalar, or def when absent.
func numericParam(args []Value, i int, def float64) (float64, error) {
	if i >= len(args) {
		return def, nil
	}
	return AsScalar(args[i])
}
