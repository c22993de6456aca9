package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/spendbook/internal/cli"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses with the running total",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	session := ws.session()
	expenses := session.Expenses()
	if len(expenses) == 0 {
		fmt.Println()
		fmt.Println(cli.RenderWarning("No expenses yet."))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("EXPENSES"))
	fmt.Println()

	rows := make([][]string, 0, len(expenses))
	for i, e := range expenses {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(e.ID, 10),
			e.Date,
			cli.Truncate(e.Title, 40),
			cli.FormatRupiah(e.Amount),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"No", "ID", "Date", "Title", "Amount"},
		Rows:       rows,
		RightAlign: []bool{true, false, false, false, true},
	}))
	fmt.Println(cli.RenderTotal("Total", cli.FormatRupiah(session.Total())))
	fmt.Println()
	return nil
}
