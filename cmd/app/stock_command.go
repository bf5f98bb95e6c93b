package main

import (
	"fmt"
	"io"
	"os"

	"textile/cmd"
	"textile/internal/core/application/usecases/queries"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newStockCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "List raw materials below their minimum stock",
		RunE: func(command *cobra.Command, _ []string) error {
			config, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(config)
			if err != nil {
				return err
			}

			app := cmd.NewCompositionRoot(config, db, newLogger(config.LogLevel))
			materials, err := app.CreateGetLowStockMaterialsQueryHandler().
				Handle(command.Context(), queries.NewGetLowStockMaterialsQuery())
			if err != nil {
				return err
			}

			out := command.OutOrStdout()
			if len(materials) == 0 {
				fmt.Fprintln(out, "All raw materials are at or above minimum stock.")
				return nil
			}
			fmt.Fprintln(out, renderLowStock(materials, isTerminal(out)))
			return nil
		},
	}
}

// renderLowStock draws one row per material, weights in kilograms. Terminals get rounded
// borders, pipes get plain ASCII.
func renderLowStock(materials []queries.GetLowStockMaterialsQueryResponse, terminal bool) string {
	tw := table.NewWriter()
	if terminal {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"Material", "Category", "Stock (kg)", "Minimum (kg)", "Shortfall (kg)"})
	for _, m := range materials {
		tw.AppendRow(table.Row{
			m.Name,
			m.Category,
			fmt.Sprintf("%.3f", m.Stock),
			fmt.Sprintf("%.3f", m.MinStock),
			fmt.Sprintf("%.3f", m.Shortfall()),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
