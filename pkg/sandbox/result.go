package sandbox

import (
	"math"

	"github.com/datacharts-labs/datacharts/pkg/funclib"
)

// ResultKind classifies a coerced evaluation result.
type ResultKind string

// Result kinds.
const (
	KindScalar ResultKind = "scalar"
	KindVector ResultKind = "vector"
)

// ResultValue is an evaluation result in output form. Scalars carry a
// single element in Values; RowAligned reports whether a vector matches
// the row count of the data it was evaluated against.
type ResultValue struct {
	Kind       ResultKind `json:"kind"`
	Values     []float64  `json:"values"`
	RowAligned bool       `json:"row_aligned"`
}

// Scalar returns the single element of a scalar result.
func (r ResultValue) Scalar() (float64, bool) {
	if r.Kind == KindScalar && len(r.Values) == 1 {
		return r.Values[0], true
	}
	return 0, false
}

// Column materializes the result as a rows-long column. Scalars and
// one-element vectors are replicated; misaligned vectors are truncated or
// padded with NaN.
func (r ResultValue) Column(rows int) []float64 {
	out := make([]float64, rows)
	switch {
	case len(r.Values) == 1:
		for i := range out {
			out[i] = r.Values[0]
		}
	default:
		for i := range out {
			if i < len(r.Values) {
				out[i] = r.Values[i]
			} else {
				out[i] = math.NaN()
			}
		}
	}
	return out
}

// Coerce normalizes a raw evaluation Value against the expected row count:
// scalars stay scalar, one-element vectors collapse to scalar, vectors of
// the expected length are row-aligned, and anything else is a free vector.
func Coerce(raw funclib.Value, rows int) ResultValue {
	switch v := raw.(type) {
	case float64:
		return ResultValue{Kind: KindScalar, Values: []float64{v}}
	case []float64:
		if len(v) == 1 {
			return ResultValue{Kind: KindScalar, Values: []float64{v[0]}}
		}
		out := append([]float64(nil), v...)
		return ResultValue{
			Kind:       KindVector,
			Values:     out,
			RowAligned: rows > 0 && len(out) == rows,
		}
	default:
		return ResultValue{Kind: KindScalar, Values: []float64{math.NaN()}}
	}
}
