package sandbox

import (
	"math"

	"github.com/datacharts-labs/datacharts/pkg/dataset"
	"github.com/datacharts-labs/datacharts/pkg/funclib"
)

// namespace is the complete capability surface visible to an expression.
// It is assembled per evaluation and discarded afterwards.
type namespace struct {
	funcs  map[string]funclib.Func
	consts map[string]float64
	vars   map[string][]float64
}

// buildNamespace merges the layers in fixed order: base builtins, then the
// function registry, then mathematical constants, then bound data vectors.
// Later layers shadow earlier ones within their lookup class, so a column
// named "pi" wins over the constant.
func buildNamespace(binding dataset.Binding) *namespace {
	funcs := map[string]funclib.Func{
		"len": lengthFn,
	}
	for _, name := range funclib.Names() {
		if impl, ok := funclib.Impl(name); ok {
			funcs[name] = impl
		}
	}

	consts := map[string]float64{
		"pi":  math.Pi,
		"e":   math.E,
		"inf": math.Inf(1),
		"nan": math.NaN(),
	}

	vars := make(map[string][]float64, len(binding))
	for name, values := range binding {
		vars[name] = values
	}

	return &namespace{funcs: funcs, consts: consts, vars: vars}
}

// lookupValue resolves an identifier: bound vectors first, constants second.
func (ns *namespace) lookupValue(name string) (funclib.Value, bool) {
	if values, ok := ns.vars[name]; ok {
		return values, true
	}
	if c, ok := ns.consts[name]; ok {
		return c, true
	}
	return nil, false
}

// lookupFunc resolves a callable by name.
func (ns *namespace) lookupFunc(name string) (funclib.Func, bool) {
	fn, ok := ns.funcs[name]
	return fn, ok
}

// lengthFn is the only builtin outside the registry: the element count of
// its argument, as a float64 scalar.
func lengthFn(args []funclib.Value) (funclib.Value, error) {
	if len(args) != 1 {
		return nil, &EvalError{Message: "len takes exactly one argument"}
	}
	switch v := args[0].(type) {
	case float64:
		return float64(1), nil
	case []float64:
		return float64(len(v)), nil
	default:
		return nil, &EvalError{Message: "len argument is not numeric"}
	}
}
