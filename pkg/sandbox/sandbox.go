// Package sandbox evaluates parsed expressions against bound data under a
// restricted namespace and an execution deadline. Evaluation walks the
// closed AST node set directly; nothing an expression can write reaches
// the host beyond the returned result.
package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/datacharts-labs/datacharts/pkg/dataset"
	"github.com/datacharts-labs/datacharts/pkg/expr"
	"github.com/datacharts-labs/datacharts/pkg/funclib"
)

// DefaultMaxExecutionTime bounds a single evaluation when the caller does
// not configure a limit.
const DefaultMaxExecutionTime = 30 * time.Second

// Limits configures the resource bounds of an evaluation.
type Limits struct {
	// MaxExecutionTime is the wall-clock deadline per evaluation. Zero
	// means DefaultMaxExecutionTime.
	MaxExecutionTime time.Duration
}

func (l Limits) maxExecutionTime() time.Duration {
	if l.MaxExecutionTime <= 0 {
		return DefaultMaxExecutionTime
	}
	return l.MaxExecutionTime
}

// Evaluator runs expressions inside the sandbox. The zero value is usable
// with default limits.
type Evaluator struct {
	limits Limits
}

// NewEvaluator creates an evaluator with the given limits.
func NewEvaluator(limits Limits) *Evaluator {
	return &Evaluator{limits: limits}
}

// Status values reported in an ExecutionResult. Timeouts report
// StatusError with a timed-out error message.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ExecutionResult is the outcome of one sandboxed evaluation.
type ExecutionResult struct {
	Value        ResultValue   `json:"value"`
	Elapsed      time.Duration `json:"elapsed"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Evaluate runs the expression against the binding and coerces the result
// for rows-long output. Failures are reported in the result status rather
// than returned; the error return covers only invalid inputs.
func (ev *Evaluator) Evaluate(ctx context.Context, e *expr.Expression, binding dataset.Binding, rows int) (ExecutionResult, error) {
	if e == nil || e.AST() == nil {
		return ExecutionResult{}, fmt.Errorf("nil expression")
	}

	start := time.Now()
	raw, err := ev.EvaluateValue(ctx, e, binding)
	elapsed := time.Since(start)

	if err != nil {
		return ExecutionResult{
			Elapsed:      elapsed,
			Status:       StatusError,
			ErrorMessage: err.Error(),
		}, nil
	}

	return ExecutionResult{
		Value:   Coerce(raw, rows),
		Elapsed: elapsed,
		Status:  StatusSuccess,
	}, nil
}

// EvaluateValue runs the expression and returns the raw Value (float64 or
// []float64) without result coercion.
func (ev *Evaluator) EvaluateValue(ctx context.Context, e *expr.Expression, binding dataset.Binding) (v funclib.Value, err error) {
	if e == nil || e.AST() == nil {
		return nil, fmt.Errorf("nil expression")
	}

	ctx, cancel := context.WithTimeout(ctx, ev.limits.maxExecutionTime())
	defer cancel()

	// Registry functions are pure Go but arbitrary inputs can still hit
	// runtime panics (out-of-range index on a hostile parameter, say).
	// The sandbox boundary converts those to errors.
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = &EvalError{Message: fmt.Sprintf("runtime panic: %v", r)}
		}
	}()

	in := &interpreter{ctx: ctx, ns: buildNamespace(binding), limit: ev.limits.maxExecutionTime()}
	return in.eval(e.AST())
}
