package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <expression>",
		Short: "Check an expression for syntax and safety problems",
		Long: `Run the safety scanner and the syntax validator over an expression
and report every finding. Exits non-zero when the expression is unsafe
or fails to parse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := newProcessor(cmd.Context())
			text := args[0]

			report := proc.ValidateExpressionSafety(text)
			syntaxOK := proc.ValidateSyntax(text)

			cfg := GetConfig(cmd.Context())
			if cfg.Output == "json" {
				if err := renderJSON(cmd.OutOrStdout(), map[string]any{
					"syntax_valid": syntaxOK,
					"safety":       report,
				}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "syntax valid: %v\n", syntaxOK)
				fmt.Fprintf(out, "safe:         %v\n", report.Safe)
				fmt.Fprintf(out, "risk level:   %s\n", report.RiskLevel)
				for _, issue := range report.Issues {
					fmt.Fprintf(out, "issue:   %s\n", issue)
				}
				for _, warning := range report.Warnings {
					fmt.Fprintf(out, "warning: %s\n", warning)
				}
			}

			if !report.Safe || !syntaxOK {
				return fmt.Errorf("expression rejected")
			}
			return nil
		},
	}
}
