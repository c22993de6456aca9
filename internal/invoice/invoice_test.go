package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendbook/internal/model"
)

func exp(id int64, date, title string, amount int64) model.Expense {
	return model.Expense{ID: id, Date: date, Title: title, Amount: decimal.NewFromInt(amount)}
}

type textCall struct {
	x, y float64
	s    string
}

// recorder is a Surface that remembers what was drawn.
type recorder struct {
	pages int
	texts []textCall
	lines int
}

func (r *recorder) AddPage()                     { r.pages++ }
func (r *recorder) SetFontSize(float64)          {}
func (r *recorder) Text(x, y float64, s string)  { r.texts = append(r.texts, textCall{x, y, s}) }
func (r *recorder) Line(_, _, _, _ float64)      { r.lines++ }
func (r *recorder) StringWidth(s string) float64 { return float64(len(s)) * 2 }

func (r *recorder) find(s string) (textCall, bool) {
	for _, tc := range r.texts {
		if tc.s == s {
			return tc, true
		}
	}
	return textCall{}, false
}

func TestBuildGroupsByMonth(t *testing.T) {
	inv, err := Build([]model.Expense{
		exp(1, "2024-02-10", "Book", 85000),
		exp(2, "2024-01-05", "Coffee", 15000),
		exp(3, "2024-02-11", "Pen", 5000),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(inv.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(inv.Groups))
	}

	jan, feb := inv.Groups[0], inv.Groups[1]
	if jan.Key != "2024-01" || jan.Title != "JANUARI 2024" {
		t.Errorf("first group = %s %q", jan.Key, jan.Title)
	}
	if feb.Key != "2024-02" || feb.Title != "FEBRUARI 2024" {
		t.Errorf("second group = %s %q", feb.Key, feb.Title)
	}
	if !jan.Subtotal.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("jan subtotal = %s", jan.Subtotal)
	}
	if !feb.Subtotal.Equal(decimal.NewFromInt(90000)) {
		t.Errorf("feb subtotal = %s", feb.Subtotal)
	}
	if !inv.GrandTotal.Equal(decimal.NewFromInt(105000)) {
		t.Errorf("grand total = %s", inv.GrandTotal)
	}

	if feb.Lines[0].Expense.Title != "Book" || feb.Lines[1].Expense.Title != "Pen" {
		t.Errorf("feb lines out of store order: %+v", feb.Lines)
	}
	if feb.Lines[0].Index != 1 || feb.Lines[1].Index != 2 {
		t.Errorf("line numbers should restart per group: %+v", feb.Lines)
	}
}

func TestBuildEmpty(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("Build(nil) err = %v, want ErrNoData", err)
	}
}

func TestShare(t *testing.T) {
	inv, err := Build([]model.Expense{
		exp(1, "2024-01-05", "Coffee", 25000),
		exp(2, "2024-02-10", "Book", 75000),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := inv.Share(inv.Groups[0]); got != 0.25 {
		t.Fatalf("Share(jan) = %v, want 0.25", got)
	}
	if got := (Invoice{}).Share(MonthGroup{}); got != 0 {
		t.Fatalf("Share on empty invoice = %v", got)
	}
}

func TestRenderContent(t *testing.T) {
	inv, err := Build([]model.Expense{
		exp(1, "2024-01-05", "Coffee", 15000),
		exp(2, "2024-02-10", "Book", 85000),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	meta := NewMeta(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), "EXPENSE TRACKER", "Expense Tracker App")

	r := &recorder{}
	w := NewPageWriter(r, 210, 297)
	Render(w, inv, meta)

	for _, want := range []string{
		"EXPENSE TRACKER",
		"INVOICE PENGELUARAN",
		"Invoice No : " + meta.Number,
		"Tanggal    : 1/3/2024",
		"BULAN : JANUARI 2024",
		"BULAN : FEBRUARI 2024",
		"Total JANUARI 2024 : Rp 15.000",
		"Total FEBRUARI 2024 : Rp 85.000",
		"TOTAL KESELURUHAN : Rp 100.000",
		"Hormat Kami,",
		"Expense Tracker App",
	} {
		if _, ok := r.find(want); !ok {
			t.Errorf("missing text %q", want)
		}
	}

	jan, _ := r.find("BULAN : JANUARI 2024")
	feb, _ := r.find("BULAN : FEBRUARI 2024")
	if jan.y >= feb.y {
		t.Errorf("january header at y=%v should precede february at y=%v", jan.y, feb.y)
	}

	amt, ok := r.find("Rp 15.000")
	if !ok {
		t.Fatal("missing row amount")
	}
	if end := amt.x + float64(len(amt.s))*2; end != 210-MarginX {
		t.Errorf("amount ends at x=%v, want %v", end, 210-MarginX)
	}

	if r.pages != 1 || w.Pages() != 1 {
		t.Errorf("pages = %d, want 1", r.pages)
	}
	if !strings.HasPrefix(meta.Number, "INV-") {
		t.Errorf("invoice number = %q", meta.Number)
	}
}

func TestRenderPaginates(t *testing.T) {
	var expenses []model.Expense
	for i := 0; i < 120; i++ {
		month := 1 + i/40
		expenses = append(expenses, exp(int64(i+1), fmt.Sprintf("2024-%02d-01", month), fmt.Sprintf("item %d", i), 1000))
	}
	inv, err := Build(expenses)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	const height = 297.0
	r := &recorder{}
	w := NewPageWriter(r, 210, height)
	Render(w, inv, NewMeta(time.Now(), "EXPENSE TRACKER", "sig"))

	if r.pages < 3 {
		t.Fatalf("pages = %d, want at least 3", r.pages)
	}
	for _, tc := range r.texts {
		if tc.y >= height {
			t.Fatalf("text %q drawn below the page at y=%v", tc.s, tc.y)
		}
		if strings.HasPrefix(tc.s, "item ") && tc.y > height-RowBreak {
			t.Fatalf("row %q drawn inside the bottom margin at y=%v", tc.s, tc.y)
		}
	}
}

func TestPageWriterEnsureSpace(t *testing.T) {
	r := &recorder{}
	w := NewPageWriter(r, 210, 100)
	if w.EnsureSpace(25) {
		t.Fatal("fresh page should have room")
	}
	w.Advance(60)
	if !w.EnsureSpace(25) {
		t.Fatal("expected a page break at y=80 with 25mm bottom margin")
	}
	if w.Y() != MarginTop || r.pages != 2 {
		t.Fatalf("after break y=%v pages=%d", w.Y(), r.pages)
	}
}

func TestWritePDF(t *testing.T) {
	inv, err := Build([]model.Expense{exp(1, "2024-01-05", "Kopi susu", 15000)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, inv, NewMeta(time.Now(), "EXPENSE TRACKER", "sig")); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	inv, err := Build([]model.Expense{exp(1, "2024-01-05", "Coffee", 15000)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path, err := Export(dir, inv, NewMeta(time.Now(), "EXPENSE TRACKER", "sig"))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(path) != FileName {
		t.Errorf("path = %s", path)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("exported file missing or empty: %v", err)
	}

	if _, err := Export(dir, Invoice{}, Meta{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("Export(empty) err = %v, want ErrNoData", err)
	}
}
