package sandbox

import (
	"context"
	"math"
	"time"

	"github.com/datacharts-labs/datacharts/pkg/expr"
	"github.com/datacharts-labs/datacharts/pkg/funclib"
)

// interpreter walks an expression AST and produces a Value. A fresh
// interpreter serves exactly one evaluation.
type interpreter struct {
	ctx   context.Context
	ns    *namespace
	limit time.Duration
}

// eval dispatches on the closed node set. The deadline check happens on
// every node so a pathological tree cannot outrun its context.
func (in *interpreter) eval(n expr.Node) (funclib.Value, error) {
	if err := in.ctx.Err(); err != nil {
		return nil, &DeadlineError{Limit: in.limit.String()}
	}

	switch node := n.(type) {
	case *expr.NumberLit:
		return node.Value, nil
	case *expr.Ident:
		if v, ok := in.ns.lookupValue(node.Name); ok {
			return v, nil
		}
		return nil, &UndefinedNameError{Name: node.Name}
	case *expr.ParenExpr:
		return in.eval(node.Expr)
	case *expr.UnaryExpr:
		return in.evalUnary(node)
	case *expr.BinaryExpr:
		return in.evalBinary(node)
	case *expr.CallExpr:
		return in.evalCall(node)
	default:
		return nil, &EvalError{Message: "unknown expression node"}
	}
}

func (in *interpreter) evalUnary(node *expr.UnaryExpr) (funclib.Value, error) {
	v, err := in.eval(node.Expr)
	if err != nil {
		return nil, err
	}
	if node.Op == expr.TOKEN_PLUS {
		return v, nil
	}
	return mapValue(v, func(x float64) float64 { return -x }), nil
}

func (in *interpreter) evalBinary(node *expr.BinaryExpr) (funclib.Value, error) {
	left, err := in.eval(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(node.Right)
	if err != nil {
		return nil, err
	}

	op, ok := binaryOps[node.Op]
	if !ok {
		return nil, &EvalError{Message: "unsupported operator " + node.Op.String()}
	}
	return broadcast(left, right, op)
}

func (in *interpreter) evalCall(node *expr.CallExpr) (funclib.Value, error) {
	fn, ok := in.ns.lookupFunc(node.Name)
	if !ok {
		return nil, &UndefinedNameError{Name: node.Name}
	}
	if funclib.IsSupported(node.Name) {
		if err := funclib.ValidateUsage(node.Name, len(node.Args)); err != nil {
			return nil, &EvalError{Message: err.Error()}
		}
	}

	args := make([]funclib.Value, len(node.Args))
	for i, argNode := range node.Args {
		arg, err := in.eval(argNode)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return fn(args)
}

// binaryOps maps operator tokens to elementwise implementations. Division
// and modulo follow IEEE semantics, so x/0 yields Inf or NaN rather than
// an error. Comparisons yield 1 or 0.
var binaryOps = map[expr.TokenType]func(a, b float64) float64{
	expr.TOKEN_PLUS:    func(a, b float64) float64 { return a + b },
	expr.TOKEN_MINUS:   func(a, b float64) float64 { return a - b },
	expr.TOKEN_STAR:    func(a, b float64) float64 { return a * b },
	expr.TOKEN_SLASH:   func(a, b float64) float64 { return a / b },
	expr.TOKEN_PERCENT: math.Mod,
	expr.TOKEN_CARET:   math.Pow,
	expr.TOKEN_POW:     math.Pow,
	expr.TOKEN_EQ:      func(a, b float64) float64 { return boolVal(a == b) },
	expr.TOKEN_NE:      func(a, b float64) float64 { return boolVal(a != b) },
	expr.TOKEN_LT:      func(a, b float64) float64 { return boolVal(a < b) },
	expr.TOKEN_GT:      func(a, b float64) float64 { return boolVal(a > b) },
	expr.TOKEN_LE:      func(a, b float64) float64 { return boolVal(a <= b) },
	expr.TOKEN_GE:      func(a, b float64) float64 { return boolVal(a >= b) },
}

func boolVal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// broadcast applies op over two Values with scalar/vector broadcasting.
// Vector operands must share a length.
func broadcast(left, right funclib.Value, op func(a, b float64) float64) (funclib.Value, error) {
	ls, lOK := left.(float64)
	rs, rOK := right.(float64)
	if lOK && rOK {
		return op(ls, rs), nil
	}

	lv, lVec := left.([]float64)
	rv, rVec := right.([]float64)
	switch {
	case lVec && rVec:
		if len(lv) != len(rv) {
			return nil, &LengthMismatchError{Left: len(lv), Right: len(rv)}
		}
		out := make([]float64, len(lv))
		for i := range lv {
			out[i] = op(lv[i], rv[i])
		}
		return out, nil
	case lVec && rOK:
		out := make([]float64, len(lv))
		for i := range lv {
			out[i] = op(lv[i], rs)
		}
		return out, nil
	case lOK && rVec:
		out := make([]float64, len(rv))
		for i := range rv {
			out[i] = op(ls, rv[i])
		}
		return out, nil
	default:
		return nil, &EvalError{Message: "operands are not numeric"}
	}
}

// mapValue applies fn elementwise, preserving scalar/vector shape.
func mapValue(v funclib.Value, fn func(float64) float64) funclib.Value {
	switch x := v.(type) {
	case float64:
		return fn(x)
	case []float64:
		out := make([]float64, len(x))
		for i, e := range x {
			out[i] = fn(e)
		}
		return out
	default:
		return v
	}
}
