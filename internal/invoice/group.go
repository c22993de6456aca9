// Package invoice groups expenses by calendar month and lays them out as a
// paginated printable document.
package invoice

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendbook/internal/cli"
	"github.com/theirongolddev/spendbook/internal/model"
)

// FileName is the fixed name of the exported document.
const FileName = "Invoice-Pengeluaran-Semua-Bulan.pdf"

// ErrNoData is returned when there is nothing to invoice.
var ErrNoData = errors.New("no data yet")

// Line is one expense within a month group. Index is 1-based per group.
type Line struct {
	Index   int
	Expense model.Expense
}

// MonthGroup collects the expenses sharing a YYYY-MM key.
type MonthGroup struct {
	Key      string // YYYY-MM
	Title    string // e.g. "JANUARI 2024"
	Lines    []Line
	Subtotal decimal.Decimal
}

// Invoice is the grouped view of every expense.
type Invoice struct {
	Groups     []MonthGroup
	GrandTotal decimal.Decimal
}

// Build groups expenses by month key. Groups are ordered chronologically;
// expenses keep their store order inside a group.
func Build(expenses []model.Expense) (Invoice, error) {
	if len(expenses) == 0 {
		return Invoice{}, ErrNoData
	}

	idx := make(map[string]int)
	var inv Invoice
	inv.GrandTotal = decimal.Zero
	for _, e := range expenses {
		key := e.MonthKey()
		i, ok := idx[key]
		if !ok {
			i = len(inv.Groups)
			idx[key] = i
			inv.Groups = append(inv.Groups, MonthGroup{
				Key:      key,
				Title:    cli.MonthTitle(key),
				Subtotal: decimal.Zero,
			})
		}
		g := &inv.Groups[i]
		g.Lines = append(g.Lines, Line{Index: len(g.Lines) + 1, Expense: e})
		g.Subtotal = g.Subtotal.Add(e.Amount)
		inv.GrandTotal = inv.GrandTotal.Add(e.Amount)
	}

	sort.SliceStable(inv.Groups, func(a, b int) bool {
		return inv.Groups[a].Key < inv.Groups[b].Key
	})
	return inv, nil
}

// Share returns a group's fraction of the grand total, in [0, 1].
func (inv Invoice) Share(g MonthGroup) float64 {
	if !inv.GrandTotal.IsPositive() {
		return 0
	}
	return g.Subtotal.Div(inv.GrandTotal).InexactFloat64()
}
