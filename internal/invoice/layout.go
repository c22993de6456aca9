package invoice

// Page geometry in millimetres.
const (
	MarginX      = 14.0
	MarginTop    = 20.0
	HeaderBreak  = 40.0 // bottom margin checked before a month header
	RowBreak     = 25.0 // bottom margin checked before an expense line
	FooterHeight = 60.0 // grand total + disclaimer + signature block
	LineStep     = 6.0
)

// Surface is the drawing target of a PageWriter.
type Surface interface {
	AddPage()
	SetFontSize(pt float64)
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	StringWidth(s string) float64
}

// Column is one cell of a line. Right-aligned cells end at X.
type Column struct {
	X     float64
	Text  string
	Right bool
}

// PageWriter tracks the vertical cursor and starts new pages when a line
// would land inside the bottom margin. It knows nothing about expenses.
type PageWriter struct {
	s      Surface
	width  float64
	height float64
	y      float64
	pages  int
}

// NewPageWriter opens the first page of s.
func NewPageWriter(s Surface, width, height float64) *PageWriter {
	w := &PageWriter{s: s, width: width, height: height}
	w.NewPage()
	return w
}

// Y is the current vertical cursor.
func (w *PageWriter) Y() float64 { return w.y }

// Pages is the number of pages started so far.
func (w *PageWriter) Pages() int { return w.pages }

// Width is the page width.
func (w *PageWriter) Width() float64 { return w.width }

// NewPage starts a page and resets the cursor to the top margin.
func (w *PageWriter) NewPage() {
	w.s.AddPage()
	w.pages++
	w.y = MarginTop
}

// EnsureSpace breaks the page if the cursor is within bottom of the page end.
// It reports whether a new page was started.
func (w *PageWriter) EnsureSpace(bottom float64) bool {
	if w.y > w.height-bottom {
		w.NewPage()
		return true
	}
	return false
}

// SetFontSize changes the font size for following text.
func (w *PageWriter) SetFontSize(pt float64) { w.s.SetFontSize(pt) }

// WriteLine draws text at the left margin and advances the cursor.
func (w *PageWriter) WriteLine(text string, advance float64) {
	w.WriteColumns(advance, Column{X: MarginX, Text: text})
}

// WriteColumns draws every column on the current line and advances.
func (w *PageWriter) WriteColumns(advance float64, cols ...Column) {
	for _, c := range cols {
		x := c.X
		if c.Right {
			x -= w.s.StringWidth(c.Text)
		}
		w.s.Text(x, w.y, c.Text)
	}
	w.y += advance
}

// Rule draws a horizontal line across the printable width and advances.
func (w *PageWriter) Rule(advance float64) {
	w.s.Line(MarginX, w.y, w.width-MarginX, w.y)
	w.y += advance
}

// Advance moves the cursor down without drawing.
func (w *PageWriter) Advance(dy float64) { w.y += dy }
