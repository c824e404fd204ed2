package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datacharts-labs/datacharts/pkg/dataset"
	"github.com/datacharts-labs/datacharts/pkg/sandbox"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	var dataFile string
	var outColumn string

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression against tabular data",
		Long: `Evaluate an expression in the sandbox. With --data, variables bind
to the file's columns (CSV or JSON records, by extension) and the result
is rendered alongside the input columns. Without data, the expression may
only use constants and literals.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := newProcessor(cmd.Context())
			cfg := GetConfig(cmd.Context())

			source, err := loadData(dataFile)
			if err != nil {
				return err
			}

			result, err := proc.Apply(cmd.Context(), args[0], source)
			if err != nil {
				return err
			}
			if result.Status != sandbox.StatusSuccess {
				return fmt.Errorf("evaluation %s: %s", result.Status, result.ErrorMessage)
			}

			// Scalar results with no data context print directly.
			if v, ok := result.Value.Scalar(); ok && source.RowCount() == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatNumber(v))
				return nil
			}

			cols := source.Columns()
			columns := map[string][]float64{}
			for _, name := range cols {
				if name == outColumn {
					return fmt.Errorf("result column %q collides with an input column; pick another --as name", outColumn)
				}
				values, _ := source.Column(name)
				columns[name] = values
			}
			rows := source.RowCount()
			if rows == 0 {
				rows = len(result.Value.Values)
			}
			columns[outColumn] = result.Value.Column(rows)
			cols = append(cols, outColumn)

			return renderColumns(cmd.OutOrStdout(), cfg.Output, cols, columns)
		},
	}

	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "Path to CSV or JSON data file")
	cmd.Flags().StringVar(&outColumn, "as", "result", "Name of the derived result column")
	return cmd
}

// loadData reads the data file by extension. No file yields an empty table.
func loadData(path string) (dataset.DataSource, error) {
	if path == "" {
		return dataset.NewTable(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return dataset.ReadJSON(f)
	case ".csv":
		return dataset.ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported data file extension %q (want .csv or .json)", filepath.Ext(path))
	}
}
