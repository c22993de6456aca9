package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/spendbook/internal/cli"
	"github.com/theirongolddev/spendbook/internal/invoice"

	"github.com/spf13/cobra"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Print the month-grouped invoice as text",
	Args:  cobra.NoArgs,
	RunE:  runInvoice,
}

func init() {
	rootCmd.AddCommand(invoiceCmd)
}

func runInvoice(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	inv, err := invoice.Build(ws.session().Expenses())
	if err != nil {
		return err
	}
	meta := invoice.NewMeta(time.Now(), ws.cfg.Invoice.Company, ws.cfg.Invoice.Signature)

	fmt.Println()
	fmt.Println(cli.RenderTitle(meta.Company + "  INVOICE PENGELUARAN"))
	fmt.Printf("  Invoice No : %s\n", meta.Number)
	fmt.Printf("  Tanggal    : %s\n\n", cli.FormatDate(meta.Date))

	for _, g := range inv.Groups {
		rows := make([][]string, 0, len(g.Lines)+2)
		for _, ln := range g.Lines {
			rows = append(rows, []string{
				strconv.Itoa(ln.Index),
				ln.Expense.Date,
				cli.Truncate(ln.Expense.Title, 40),
				cli.FormatRupiah(ln.Expense.Amount),
			})
		}
		rows = append(rows, []string{"---"}, []string{"", "", "Total " + g.Title, cli.FormatRupiah(g.Subtotal)})

		fmt.Print(cli.RenderTable(cli.Table{
			Title:      "BULAN : " + g.Title,
			Headers:    []string{"No", "Tanggal", "Deskripsi", "Nominal"},
			Rows:       rows,
			RightAlign: []bool{true, false, false, true},
		}))
		fmt.Println()
	}

	fmt.Println(cli.RenderTotal("TOTAL KESELURUHAN", cli.FormatRupiah(inv.GrandTotal)))
	fmt.Println()
	return nil
}
