package cmd

import (
	"fmt"

	"github.com/theirongolddev/spendbook/internal/cli"

	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Bar chart of expenses, one bar per entry",
	Args:  cobra.NoArgs,
	RunE:  runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	expenses := ws.session().Expenses()
	if len(expenses) == 0 {
		fmt.Println()
		fmt.Println(cli.RenderWarning("No expenses to chart."))
		return nil
	}

	maxVal := 0.0
	for _, e := range expenses {
		maxVal = max(maxVal, e.Amount.InexactFloat64())
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING PER ENTRY"))
	fmt.Println()
	for _, e := range expenses {
		fmt.Println(cli.RenderHorizontalBar(e.Title, e.Amount.InexactFloat64(), maxVal, 16, 40, cli.FormatRupiah(e.Amount)))
	}
	fmt.Println()
	return nil
}
