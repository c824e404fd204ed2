package sandbox_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datacharts-labs/datacharts/pkg/sandbox"
)

func TestValidateExpressionSafetyClean(t *testing.T) {
	report := sandbox.ValidateExpressionSafety("sin(x) + mean(y)")
	assert.True(t, report.Safe)
	assert.Empty(t, report.Issues)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, sandbox.RiskLow, report.RiskLevel)
}

func TestValidateExpressionSafetyIssues(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"dunder", "__class__"},
		{"exec", "exec(payload)"},
		{"import", "import os"},
		{"while loop", "while x > 0"},
		{"for loop", "for i in range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := sandbox.ValidateExpressionSafety(tt.input)
			assert.False(t, report.Safe)
			assert.NotEmpty(t, report.Issues)
			assert.Equal(t, sandbox.RiskHigh, report.RiskLevel)
		})
	}
}

func TestValidateExpressionSafetyCollectsAllIssues(t *testing.T) {
	report := sandbox.ValidateExpressionSafety("eval(open(x))")
	assert.GreaterOrEqual(t, len(report.Issues), 2, "every finding is reported")
}

func TestValidateExpressionSafetyWarnings(t *testing.T) {
	long := "x +" + strings.Repeat(" 1 +", 200) + " 1"
	report := sandbox.ValidateExpressionSafety(long)
	assert.True(t, report.Safe, "long expressions warn but stay safe")
	assert.NotEmpty(t, report.Warnings)
	assert.Equal(t, sandbox.RiskMedium, report.RiskLevel)

	nested := strings.Repeat("abs(", 25) + "x" + strings.Repeat(")", 25)
	report = sandbox.ValidateExpressionSafety(nested)
	assert.True(t, report.Safe)
	assert.NotEmpty(t, report.Warnings)
}
