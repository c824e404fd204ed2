// Package engine is the orchestration facade over expression parsing,
// safety validation, data binding, and sandboxed evaluation. Callers (CLI,
// HTTP server, tests) go through the Processor rather than wiring the
// lower packages themselves.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/datacharts-labs/datacharts/pkg/dataset"
	"github.com/datacharts-labs/datacharts/pkg/expr"
	"github.com/datacharts-labs/datacharts/pkg/funclib"
	"github.com/datacharts-labs/datacharts/pkg/sandbox"
)

// Processor exposes the full expression engine surface.
type Processor struct {
	logger    *slog.Logger
	evaluator *sandbox.Evaluator
	limits    sandbox.Limits
}

// Config holds processor configuration.
type Config struct {
	// Limits bounds each sandboxed evaluation. Zero values use defaults.
	Limits sandbox.Limits
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a processor.
func New(cfg Config) *Processor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Processor{
		logger:    logger,
		evaluator: sandbox.NewEvaluator(cfg.Limits),
		limits:    cfg.Limits,
	}
}

// ParseExpression parses and validates expression text. It never returns a
// partial expression: any gate or parse failure yields only the error.
func (p *Processor) ParseExpression(text string) (*expr.Expression, error) {
	e, err := expr.Parse(text)
	if err != nil {
		p.logger.Debug("expression rejected", "error", err)
		return nil, err
	}
	p.logger.Debug("expression parsed",
		"variables", len(e.Variables), "functions", len(e.FunctionsUsed))
	return e, nil
}

// ValidateSyntax reports whether text parses cleanly.
func (p *Processor) ValidateSyntax(text string) bool {
	return expr.ValidateSyntax(text)
}

// Apply parses the expression, binds its variables against the data
// source, and evaluates it in the sandbox. The result is coerced against
// the source's row count.
func (p *Processor) Apply(ctx context.Context, text string, source dataset.DataSource) (sandbox.ExecutionResult, error) {
	e, err := p.ParseExpression(text)
	if err != nil {
		return sandbox.ExecutionResult{}, err
	}

	binding := dataset.Bind(e.Variables, source)
	result, err := p.evaluator.Evaluate(ctx, e, binding, source.RowCount())
	if err != nil {
		return sandbox.ExecutionResult{}, err
	}

	p.logger.Info("expression applied",
		"status", result.Status,
		"elapsed", result.Elapsed,
		"rows", source.RowCount())
	return result, nil
}

// ApplyColumn evaluates text against the source and materializes the
// result as a rows-long derived column.
func (p *Processor) ApplyColumn(ctx context.Context, text string, source dataset.DataSource) ([]float64, error) {
	result, err := p.Apply(ctx, text, source)
	if err != nil {
		return nil, err
	}
	if result.Status != sandbox.StatusSuccess {
		return nil, fmt.Errorf("evaluation %s: %s", result.Status, result.ErrorMessage)
	}
	return result.Value.Column(source.RowCount()), nil
}

// SupportedFunctions returns all registry function names, sorted.
func (p *Processor) SupportedFunctions() []string {
	return funclib.Names()
}

// FunctionCategories returns registry names grouped by category.
func (p *Processor) FunctionCategories() map[funclib.Category][]string {
	return funclib.Categories()
}

// FunctionInfo returns the descriptor for a registry function.
func (p *Processor) FunctionInfo(name string) (funclib.Descriptor, bool) {
	return funclib.Get(name)
}

// ValidateExpressionSafety produces the advisory safety report for text.
func (p *Processor) ValidateExpressionSafety(text string) sandbox.SafetyReport {
	return sandbox.ValidateExpressionSafety(text)
}

// Analyze produces the complexity report for text.
func (p *Processor) Analyze(text string) expr.Complexity {
	return expr.Analyze(text)
}

// EnvironmentInfo describes the evaluation environment: what expressions
// may reference and the limits they run under.
type EnvironmentInfo struct {
	Functions        []string                      `json:"supported_functions"`
	Categories       map[funclib.Category][]string `json:"categories"`
	Constants        []string                      `json:"constants"`
	MaxLength        int                           `json:"max_expression_length"`
	MaxDepth         int                           `json:"max_nesting_depth"`
	MaxExecutionTime time.Duration                 `json:"max_execution_time"`
}

// Environment returns the evaluation environment description.
func (p *Processor) Environment() EnvironmentInfo {
	limit := p.limits.MaxExecutionTime
	if limit <= 0 {
		limit = sandbox.DefaultMaxExecutionTime
	}
	return EnvironmentInfo{
		Functions:        funclib.Names(),
		Categories:       funclib.Categories(),
		Constants:        []string{"pi", "e", "inf", "nan"},
		MaxLength:        expr.MaxLength,
		MaxDepth:         expr.MaxDepth,
		MaxExecutionTime: limit,
	}
}
