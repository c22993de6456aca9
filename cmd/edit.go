package cmd

import (
	"fmt"

	"github.com/theirongolddev/spendbook/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagEditDate   string
	flagEditTitle  string
	flagEditAmount string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an expense in place",
	Long:  "Update the given expense. Fields not passed keep their current value; the ID and list position never change.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagEditDate, "date", "", "New date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&flagEditTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&flagEditAmount, "amount", "", "New amount")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	session := ws.session()
	current, err := session.BeginEdit(id)
	if err != nil {
		return err
	}

	date, title, amount := current.Date, current.Title, current.Amount.String()
	if cmd.Flags().Changed("date") {
		date = flagEditDate
	}
	if cmd.Flags().Changed("title") {
		title = flagEditTitle
	}
	if cmd.Flags().Changed("amount") {
		amount = flagEditAmount
	}

	e, err := session.Submit(date, title, amount)
	if err != nil {
		return err
	}

	fmt.Printf("  Updated #%d  %s  %s  %s\n", e.ID, e.Date, e.Title, cli.FormatRupiah(e.Amount))
	return nil
}
