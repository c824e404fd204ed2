package commands

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <expression>",
		Short: "Report expression complexity",
		Long: `Estimate the complexity of an expression: counts of functions,
operators, and variables, nesting depth, and coarse execution estimates.
The report is advisory and never blocks evaluation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := newProcessor(cmd.Context())
			c := proc.Analyze(args[0])

			cfg := GetConfig(cmd.Context())
			if cfg.Output == "json" {
				return renderJSON(cmd.OutOrStdout(), c)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendRow(table.Row{"length", strconv.Itoa(c.Length)})
			t.AppendRow(table.Row{"functions", strconv.Itoa(c.FunctionCount)})
			t.AppendRow(table.Row{"operators", strconv.Itoa(c.OperatorCount)})
			t.AppendRow(table.Row{"nesting depth", strconv.Itoa(c.NestingDepth)})
			t.AppendRow(table.Row{"variables", strconv.Itoa(c.VariableCount)})
			t.AppendRow(table.Row{"est. time", c.EstimatedTime})
			t.AppendRow(table.Row{"est. memory", c.EstimatedMem})
			t.Render()
			return nil
		},
	}
}
