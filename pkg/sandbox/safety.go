package sandbox

import (
	"regexp"
	"strings"

	"github.com/datacharts-labs/datacharts/pkg/expr"
)

// Risk levels reported by ValidateExpressionSafety.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// SafetyReport is an advisory assessment of expression text. Unlike the
// fail-closed parse gates it collects every finding, so a UI can show the
// user all problems at once.
type SafetyReport struct {
	Safe      bool     `json:"is_safe"`
	Issues    []string `json:"issues"`
	Warnings  []string `json:"warnings"`
	RiskLevel string   `json:"risk_level"`
}

var loopKeywordRe = regexp.MustCompile(`\b(while|for)\b`)

// ValidateExpressionSafety inspects raw text for hostile patterns and
// resource-heavy shapes without parsing it. Issues make the expression
// unsafe; warnings flag shapes that are legal but expensive.
func ValidateExpressionSafety(text string) SafetyReport {
	report := SafetyReport{Issues: []string{}, Warnings: []string{}}

	for _, desc := range expr.DenylistMatches(text) {
		report.Issues = append(report.Issues, "dangerous pattern detected: "+desc)
	}
	if m := loopKeywordRe.FindString(text); m != "" {
		report.Issues = append(report.Issues, "loop construct detected: "+m)
	}

	if len(text) > 500 {
		report.Warnings = append(report.Warnings, "very long expression may be slow to evaluate")
	}
	if strings.Count(text, "(") > 20 {
		report.Warnings = append(report.Warnings, "deeply nested expression may be slow to evaluate")
	}

	report.Safe = len(report.Issues) == 0
	switch {
	case len(report.Issues) > 0:
		report.RiskLevel = RiskHigh
	case len(report.Warnings) > 0:
		report.RiskLevel = RiskMedium
	default:
		report.RiskLevel = RiskLow
	}
	return report
}
