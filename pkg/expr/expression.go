package expr

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/datacharts-labs/datacharts/pkg/funclib"
)

// reservedConstants are identifiers that are never treated as data
// variables: the mathematical constants and the imaginary unit.
var reservedConstants = map[string]bool{
	"pi": true,
	"e":  true,
	"I":  true,
}

// builtinFunctions are callable in the evaluation namespace without being
// registry entries. They are excluded from FunctionsUsed, which reports
// registry functions only.
var builtinFunctions = map[string]bool{
	"len": true,
}

// synonyms maps alternate spellings to registry names. Kept as an explicit
// table so function extraction stays exhaustive and testable.
var synonyms = map[string]string{
	"ln":       "log",
	"avg":      "mean",
	"average":  "mean",
	"stdev":    "std",
	"absolute": "abs",
}

// Expression is the parsed, validated form of a user-submitted formula.
// It is immutable after Parse and intended for a single evaluation cycle.
type Expression struct {
	// RawText is the original expression text.
	RawText string `json:"raw_text"`
	// Variables are the free identifiers, sorted, excluding reserved
	// constants and registry function names.
	Variables []string `json:"variables"`
	// FunctionsUsed are the registry functions called, sorted, after
	// synonym mapping.
	FunctionsUsed []string `json:"functions_used"`
	// Parameters records numeric literals positionally (const_0, const_1,
	// ...). Informational only; never used for binding.
	Parameters map[string]float64 `json:"parameters"`

	root Node
}

// AST returns the parsed tree for interpretation.
func (e *Expression) AST() Node { return e.root }

var numberLiteralRe = regexp.MustCompile(`\b\d+\.?\d*\b`)

// Parse runs the full fail-closed pipeline: safety gates, structural
// parse, variable and function extraction, and registry validation. No
// partial Expression is ever returned.
func Parse(text string) (*Expression, error) {
	if err := precheck(text); err != nil {
		return nil, err
	}

	root, err := ParseAST(text)
	if err != nil {
		return nil, err
	}

	// Canonicalize call names through the synonym table before any
	// extraction so FunctionsUsed and the evaluator agree.
	Walk(root, func(n Node) bool {
		if call, ok := n.(*CallExpr); ok {
			if canonical, ok := synonyms[call.Name]; ok {
				call.Name = canonical
			}
		}
		return true
	})

	variables := extractVariables(root)
	functions := extractFunctions(root)

	var unsupported []string
	for _, name := range functions {
		if !funclib.IsSupported(name) {
			unsupported = append(unsupported, name)
		}
	}
	if len(unsupported) > 0 {
		return nil, &UnsupportedFunctionError{Names: unsupported, Supported: funclib.Names()}
	}

	return &Expression{
		RawText:       text,
		Variables:     variables,
		FunctionsUsed: functions,
		Parameters:    extractParameters(text),
		root:          root,
	}, nil
}

// ValidateSyntax reports whether text parses cleanly through the full
// pipeline.
func ValidateSyntax(text string) bool {
	_, err := Parse(text)
	return err == nil
}

// extractVariables collects free identifiers: every Ident that is not a
// reserved constant or a registry function name, sorted and deduplicated.
func extractVariables(root Node) []string {
	seen := map[string]bool{}
	Walk(root, func(n Node) bool {
		if ident, ok := n.(*Ident); ok {
			name := ident.Name
			if !reservedConstants[name] && !funclib.IsSupported(name) {
				seen[name] = true
			}
		}
		return true
	})

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// extractFunctions collects every call's callee name, sorted and
// deduplicated. Synonym mapping has already happened.
func extractFunctions(root Node) []string {
	seen := map[string]bool{}
	Walk(root, func(n Node) bool {
		if call, ok := n.(*CallExpr); ok && !builtinFunctions[call.Name] {
			seen[call.Name] = true
		}
		return true
	})

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// extractParameters records numeric literals positionally from the raw
// text as const_0, const_1, ...
func extractParameters(text string) map[string]float64 {
	params := map[string]float64{}
	for i, lit := range numberLiteralRe.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			continue
		}
		params["const_"+strconv.Itoa(i)] = v
	}
	return params
}
