package sandbox

import "fmt"

// EvalError reports a failure during expression evaluation.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return "evaluation failed: " + e.Message
}

// DeadlineError reports that an evaluation exceeded its execution deadline.
type DeadlineError struct {
	Limit string
}

func (e *DeadlineError) Error() string {
	return fmt.Sprintf("execution timed out after %s", e.Limit)
}

// UndefinedNameError reports an identifier with no namespace entry.
type UndefinedNameError struct {
	Name string
}

func (e *UndefinedNameError) Error() string {
	return fmt.Sprintf("undefined name %q", e.Name)
}

// LengthMismatchError reports a binary operation over vectors of differing
// lengths.
type LengthMismatchError struct {
	Left, Right int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("vector length mismatch: %d vs %d", e.Left, e.Right)
}
