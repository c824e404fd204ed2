package expr

import (
	"fmt"
	"strings"
)

// SyntaxError represents a parsing error with position information.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at column %d: %s", e.Pos.Column, e.Message)
}

// TooLongError is returned when the expression exceeds the length limit.
type TooLongError struct {
	Length int
	Limit  int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("expression too long: %d characters (limit %d)", e.Length, e.Limit)
}

// TooDeepError is returned when parenthesis nesting exceeds the depth limit.
type TooDeepError struct {
	Depth int
	Limit int
}

func (e *TooDeepError) Error() string {
	return fmt.Sprintf("expression nested too deeply: depth %d (limit %d)", e.Depth, e.Limit)
}

// UnsafePatternError is returned when the expression matches a denylisted
// pattern before parsing is even attempted.
type UnsafePatternError struct {
	Pattern string // human-readable description of the matched pattern
}

func (e *UnsafePatternError) Error() string {
	return fmt.Sprintf("expression contains unsafe pattern: %s", e.Pattern)
}

// UnsupportedFunctionError is returned when the expression calls functions
// that are not in the registry. Supported lists the full catalog so callers
// can surface it as guidance.
type UnsupportedFunctionError struct {
	Names     []string
	Supported []string
}

func (e *UnsupportedFunctionError) Error() string {
	return fmt.Sprintf("unsupported functions: %s (supported: %s)",
		strings.Join(e.Names, ", "), strings.Join(e.Supported, ", "))
}

// Common error messages
const (
	errUnexpectedToken = "unexpected token %s, expected %s"
	errUnexpectedEOF   = "unexpected end of expression"
)
