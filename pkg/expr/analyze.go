package expr

import "regexp"

// Complexity is an advisory report on an expression's shape. It never
// gates execution; callers use it for diagnostics and UI hints.
type Complexity struct {
	Length        int    `json:"length"`
	FunctionCount int    `json:"function_count"`
	OperatorCount int    `json:"operator_count"`
	NestingDepth  int    `json:"nesting_depth"`
	VariableCount int    `json:"variable_count"`
	EstimatedTime string `json:"estimated_execution_time"`
	EstimatedMem  string `json:"estimated_memory_usage"`
}

var (
	callRe     = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*\s*\(`)
	operatorRe = regexp.MustCompile(`[+\-*/^%]`)
	identRe    = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
)

// Analyze produces the complexity report for text. It works on the raw
// string so it can describe expressions that fail to parse.
func Analyze(text string) Complexity {
	idents := map[string]bool{}
	for _, name := range identRe.FindAllString(text, -1) {
		idents[name] = true
	}

	c := Complexity{
		Length:        len(text),
		FunctionCount: len(callRe.FindAllString(text, -1)),
		OperatorCount: len(operatorRe.FindAllString(text, -1)),
		NestingDepth:  NestingDepth(text),
		VariableCount: len(idents),
	}
	c.EstimatedTime = estimateTime(c)
	c.EstimatedMem = estimateMemory(c)
	return c
}

// estimateTime maps a weighted complexity score to a coarse estimate.
func estimateTime(c Complexity) string {
	score := c.FunctionCount*2 + c.OperatorCount + c.NestingDepth*3 + c.VariableCount
	switch {
	case score < 5:
		return "very fast (<1ms)"
	case score < 20:
		return "fast (1-10ms)"
	case score < 50:
		return "moderate (10-100ms)"
	default:
		return "slow (>100ms)"
	}
}

// estimateMemory maps variable and function counts to a coarse estimate.
func estimateMemory(c Complexity) string {
	score := c.VariableCount + c.FunctionCount
	switch {
	case score < 3:
		return "low"
	case score < 8:
		return "moderate"
	default:
		return "high"
	}
}
