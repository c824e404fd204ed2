package funclib

import "math"

// Math functions apply elementwise: a scalar argument yields a scalar, a
// vector argument yields a vector of the same length. Domain errors follow
// IEEE semantics (log of a negative is NaN, log of zero is -Inf) rather
// than aborting the evaluation.

func registerMath() {
	register(CategoryMath, "sin", "Sine, elementwise (radians).", elementwise(math.Sin))
	register(CategoryMath, "cos", "Cosine, elementwise (radians).", elementwise(math.Cos))
	register(CategoryMath, "tan", "Tangent, elementwise (radians).", elementwise(math.Tan))
	register(CategoryMath, "log", "Natural logarithm, elementwise.", elementwise(math.Log))
	register(CategoryMath, "exp", "Exponential e**x, elementwise.", elementwise(math.Exp))
	register(CategoryMath, "sqrt", "Square root, elementwise.", elementwise(math.Sqrt))
	register(CategoryMath, "abs", "Absolute value, elementwise.", elementwise(math.Abs))
	register(CategoryMath, "floor", "Round down to the nearest integer, elementwise.", elementwise(math.Floor))
	register(CategoryMath, "ceil", "Round up to the nearest integer, elementwise.", elementwise(math.Ceil))
	// Half-to-even rounding, matching the reference numerics.
	register(CategoryMath, "round", "Round to the nearest integer, elementwise.", elementwise(math.RoundToEven))
}
