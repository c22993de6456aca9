package invoice

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/spendbook/internal/cli"
)

// Meta is the title and footer information printed around the groups.
type Meta struct {
	Number    string // e.g. "INV-1704412800000"
	Date      time.Time
	Company   string
	Signature string
}

// NewMeta stamps an invoice number and date from now.
func NewMeta(now time.Time, company, signature string) Meta {
	return Meta{
		Number:    "INV-" + strconv.FormatInt(now.UnixMilli(), 10),
		Date:      now,
		Company:   company,
		Signature: signature,
	}
}

// Render lays the invoice out on w: title block, one section per month,
// the grand total and the footer.
func Render(w *PageWriter, inv Invoice, meta Meta) {
	right := w.Width() - MarginX

	w.SetFontSize(16)
	w.WriteLine(meta.Company, 8)
	w.SetFontSize(12)
	w.WriteLine("INVOICE PENGELUARAN", 6)
	w.SetFontSize(10)
	w.WriteLine("Invoice No : "+meta.Number, 5)
	w.WriteLine("Tanggal    : "+cli.FormatDate(meta.Date), 8)
	w.Rule(8)

	for _, g := range inv.Groups {
		w.EnsureSpace(HeaderBreak)

		w.SetFontSize(12)
		w.WriteLine("BULAN : "+g.Title, 6)
		w.Rule(6)

		w.SetFontSize(10)
		w.WriteColumns(LineStep,
			Column{X: MarginX, Text: "No"},
			Column{X: 26, Text: "Tanggal"},
			Column{X: 55, Text: "Deskripsi"},
			Column{X: w.Width() - 40, Text: "Nominal"},
		)
		w.Rule(LineStep)

		for _, ln := range g.Lines {
			w.EnsureSpace(RowBreak)
			w.WriteColumns(LineStep,
				Column{X: MarginX, Text: strconv.Itoa(ln.Index)},
				Column{X: 26, Text: ln.Expense.Date},
				Column{X: 55, Text: cli.Truncate(ln.Expense.Title, 60)},
				Column{X: right, Text: cli.FormatRupiah(ln.Expense.Amount), Right: true},
			)
		}

		w.Advance(2)
		w.Rule(6)
		w.SetFontSize(11)
		w.WriteLine(fmt.Sprintf("Total %s : %s", g.Title, cli.FormatRupiah(g.Subtotal)), 10)
	}

	// Keep the grand total together with the footer.
	w.EnsureSpace(FooterHeight)
	w.Rule(8)
	w.SetFontSize(13)
	w.WriteLine("TOTAL KESELURUHAN : "+cli.FormatRupiah(inv.GrandTotal), 20)

	w.SetFontSize(9)
	w.WriteLine("Invoice ini dibuat otomatis oleh sistem.", 12)
	sigX := w.Width() - 60
	w.WriteColumns(10, Column{X: sigX, Text: "Hormat Kami,"})
	w.WriteColumns(0, Column{X: sigX, Text: meta.Signature})
}
