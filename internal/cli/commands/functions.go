package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/datacharts-labs/datacharts/pkg/funclib"
)

// NewFunctionsCommand creates the functions command.
func NewFunctionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "functions [name]",
		Short: "List supported functions or describe one",
		Long: `Without arguments, list the full function catalog grouped by
category. With a name, show that function's details.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := newProcessor(cmd.Context())
			cfg := GetConfig(cmd.Context())

			if len(args) == 1 {
				desc, ok := proc.FunctionInfo(args[0])
				if !ok {
					return fmt.Errorf("unknown function %q", args[0])
				}
				if cfg.Output == "json" {
					return renderJSON(cmd.OutOrStdout(), desc)
				}
				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendRow(table.Row{"name", desc.Name})
				t.AppendRow(table.Row{"category", string(desc.Category)})
				t.AppendRow(table.Row{"min args", desc.MinArgs})
				t.AppendRow(table.Row{"doc", desc.Doc})
				t.Render()
				return nil
			}

			categories := proc.FunctionCategories()
			if cfg.Output == "json" {
				return renderJSON(cmd.OutOrStdout(), categories)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"category", "function", "doc"})
			for _, cat := range []funclib.Category{
				funclib.CategoryMath,
				funclib.CategoryStatistical,
				funclib.CategoryTransform,
				funclib.CategoryFilter,
			} {
				for _, name := range categories[cat] {
					desc, _ := proc.FunctionInfo(name)
					t.AppendRow(table.Row{string(cat), name, desc.Doc})
				}
			}
			t.Render()
			return nil
		},
	}
}
