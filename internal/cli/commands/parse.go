package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <expression>",
		Short: "Parse an expression and show its structure",
		Long: `Parse an expression through the full validation pipeline and show
the extracted variables, functions, and numeric parameters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := newProcessor(cmd.Context())
			e, err := proc.ParseExpression(args[0])
			if err != nil {
				return err
			}

			cfg := GetConfig(cmd.Context())
			if cfg.Output == "json" {
				return renderJSON(cmd.OutOrStdout(), e)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendRow(table.Row{"expression", e.RawText})
			t.AppendRow(table.Row{"variables", strings.Join(e.Variables, ", ")})
			t.AppendRow(table.Row{"functions", strings.Join(e.FunctionsUsed, ", ")})
			for name, v := range e.Parameters {
				t.AppendRow(table.Row{name, fmt.Sprintf("%g", v)})
			}
			t.Render()
			return nil
		},
	}
}
