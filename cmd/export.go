package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/spendbook/internal/invoice"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all expenses as a month-grouped PDF invoice",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	inv, err := invoice.Build(ws.session().Expenses())
	if err != nil {
		return err
	}

	dir := ws.cfg.InvoiceDir()
	if flagExportOut != "" {
		dir = flagExportOut
	}

	meta := invoice.NewMeta(time.Now(), ws.cfg.Invoice.Company, ws.cfg.Invoice.Signature)
	path, err := invoice.Export(dir, inv, meta)
	if err != nil {
		ws.log.Error().Err(err).Msg("invoice export failed")
		return err
	}
	ws.log.Info().Str("path", path).Int("months", len(inv.Groups)).Msg("invoice exported")

	infof("  %s, %d months\n", meta.Number, len(inv.Groups))
	fmt.Println(path)
	return nil
}
