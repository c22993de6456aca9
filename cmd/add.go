package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/spendbook/internal/cli"
	"github.com/theirongolddev/spendbook/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagAddDate   string
	flagAddTitle  string
	flagAddAmount string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new expense",
	Example: `  spendbook add --title Coffee --amount 15000
  spendbook add --date 2024-01-05 --title Book --amount 85000`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddDate, "date", time.Now().Format(model.DateLayout), "Expense date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&flagAddTitle, "title", "", "What the money was spent on")
	addCmd.Flags().StringVar(&flagAddAmount, "amount", "", "Amount in rupiah")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	session := ws.session()
	e, err := session.Submit(flagAddDate, flagAddTitle, flagAddAmount)
	if err != nil {
		return err
	}

	fmt.Printf("  Added #%d  %s  %s  %s\n", e.ID, e.Date, e.Title, cli.FormatRupiah(e.Amount))
	infof("  %d expenses, total %s\n", session.Len(), cli.FormatRupiah(session.Total()))
	return nil
}
