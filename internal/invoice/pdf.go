package invoice

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// pdfSurface draws on an fpdf document with the core Helvetica font.
type pdfSurface struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFSurface() *pdfSurface {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 10)
	return &pdfSurface{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (p *pdfSurface) AddPage()                     { p.pdf.AddPage() }
func (p *pdfSurface) SetFontSize(pt float64)       { p.pdf.SetFontSize(pt) }
func (p *pdfSurface) Text(x, y float64, s string)  { p.pdf.Text(x, y, p.tr(s)) }
func (p *pdfSurface) Line(x1, y1, x2, y2 float64)  { p.pdf.Line(x1, y1, x2, y2) }
func (p *pdfSurface) StringWidth(s string) float64 { return p.pdf.GetStringWidth(p.tr(s)) }

// WritePDF renders inv as an A4 PDF to out.
func WritePDF(out io.Writer, inv Invoice, meta Meta) error {
	s := newPDFSurface()
	width, height := s.pdf.GetPageSize()
	Render(NewPageWriter(s, width, height), inv, meta)
	if err := s.pdf.Output(out); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// Export writes the invoice document into dir under FileName and returns its
// path. Nothing is written when inv is empty.
func Export(dir string, inv Invoice, meta Meta) (string, error) {
	if len(inv.Groups) == 0 {
		return "", ErrNoData
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.Create(path) //nolint:gosec // dir comes from config or flag
	if err != nil {
		return "", fmt.Errorf("creating invoice file: %w", err)
	}
	if err := WritePDF(f, inv, meta); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing invoice file: %w", err)
	}
	return path, nil
}
