package expr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacharts-labs/datacharts/pkg/expr"
)

func TestParseExtractsVariables(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "x + y", []string{"x", "y"}},
		{"deduplicated and sorted", "z + x + z * x", []string{"x", "z"}},
		{"constants excluded", "pi * r ^ 2 + e", []string{"r"}},
		{"function names excluded", "mean(x) + sin(y)", []string{"x", "y"}},
		{"no variables", "2 + 2", []string{}},
		{"positional accessor is a variable", "col_0 * 2", []string{"col_0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := expr.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Variables)
		})
	}
}

func TestParseExtractsFunctions(t *testing.T) {
	e, err := expr.Parse("sqrt(mean(x)) + std(y) + mean(z)")
	require.NoError(t, err)
	assert.Equal(t, []string{"mean", "sqrt", "std"}, e.FunctionsUsed)
}

func TestParseRoundTrip(t *testing.T) {
	e, err := expr.Parse("avg(x) + ln(y)")
	require.NoError(t, err)
	assert.Equal(t, "avg(x) + ln(y)", e.RawText, "raw text keeps the submitted spelling")

	// Re-parsing the raw text reproduces the same extraction, synonyms
	// included.
	again, err := expr.Parse(e.RawText)
	require.NoError(t, err)
	assert.Equal(t, e.Variables, again.Variables)
	assert.Equal(t, e.FunctionsUsed, again.FunctionsUsed)
	assert.Equal(t, []string{"log", "mean"}, again.FunctionsUsed)
}

func TestParseAcceptsLenBuiltin(t *testing.T) {
	e, err := expr.Parse("len(x) + 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, e.Variables)
	assert.Empty(t, e.FunctionsUsed, "builtins stay out of the registry report")
}

func TestParseAppliesSynonyms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ln(x)", "log"},
		{"avg(x)", "mean"},
		{"average(x)", "mean"},
		{"stdev(x)", "std"},
		{"absolute(x)", "abs"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := expr.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, e.FunctionsUsed)

			call, ok := e.AST().(*expr.CallExpr)
			require.True(t, ok)
			assert.Equal(t, tt.want, call.Name)
		})
	}
}

func TestParseExtractsParameters(t *testing.T) {
	e, err := expr.Parse("scale(x, 2.5) + 10")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, e.Parameters["const_0"], 1e-12)
	assert.InDelta(t, 10, e.Parameters["const_1"], 1e-12)
}

func TestParseRejectsUnsupportedFunctions(t *testing.T) {
	_, err := expr.Parse("foobar(x) + frobnicate(y)")
	require.Error(t, err)

	var unsupported *expr.UnsupportedFunctionError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, []string{"foobar", "frobnicate"}, unsupported.Names)
	assert.Contains(t, unsupported.Supported, "mean")
}

func TestParseRejectsTooLong(t *testing.T) {
	long := "x" + strings.Repeat("+x", expr.MaxLength)
	_, err := expr.Parse(long)
	require.Error(t, err)

	var tooLong *expr.TooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, expr.MaxLength, tooLong.Limit)
}

func TestParseRejectsTooDeep(t *testing.T) {
	deep := strings.Repeat("(", expr.MaxDepth+1) + "x" + strings.Repeat(")", expr.MaxDepth+1)
	_, err := expr.Parse(deep)
	require.Error(t, err)

	var tooDeep *expr.TooDeepError
	require.ErrorAs(t, err, &tooDeep)
	assert.Equal(t, expr.MaxDepth+1, tooDeep.Depth)
}

func TestParseRejectsUnsafePatterns(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"dunder", "__import__"},
		{"import", "import os"},
		{"exec", "exec(x)"},
		{"eval", "eval(x)"},
		{"eval case insensitive", "EVAL(x)"},
		{"compile", "compile(x)"},
		{"open", "open(x)"},
		{"file", "file(x)"},
		{"input", "input(x)"},
		{"raw_input", "raw_input(x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expr.Parse(tt.input)
			require.Error(t, err)
			var unsafe *expr.UnsafePatternError
			assert.ErrorAs(t, err, &unsafe)
		})
	}
}

func TestValidateSyntax(t *testing.T) {
	assert.True(t, expr.ValidateSyntax("sin(x) + mean(y) * 2"))
	assert.False(t, expr.ValidateSyntax("sin(x) +"))
	assert.False(t, expr.ValidateSyntax("unknownfn(x)"))
	assert.False(t, expr.ValidateSyntax("eval(x)"))
}

func TestNestingDepth(t *testing.T) {
	assert.Equal(t, 0, expr.NestingDepth("x + y"))
	assert.Equal(t, 1, expr.NestingDepth("(x)"))
	assert.Equal(t, 3, expr.NestingDepth("f((x + (y)))"))
	assert.Equal(t, 2, expr.NestingDepth("((x)) + ((y))"))
}
