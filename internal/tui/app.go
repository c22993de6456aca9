// Package tui provides the interactive Bubble Tea interface for spendbook.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/spendbook/internal/invoice"
	"github.com/theirongolddev/spendbook/internal/ledger"
	"github.com/theirongolddev/spendbook/internal/model"
	"github.com/theirongolddev/spendbook/internal/tui/components"
	"github.com/theirongolddev/spendbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// UndoExpiredMsg is sent when a pending undo lapses.
type UndoExpiredMsg struct {
	Expense model.Expense
}

// ExportDoneMsg is sent when the invoice export finishes.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// ThemeSaver persists the presentation preference.
type ThemeSaver interface {
	SaveTheme(t model.Theme) error
}

// Options wires the app to its session and environment.
type Options struct {
	Session *ledger.Session
	Prefs   ThemeSaver
	Mode    model.Theme

	// Expired delivers expenses whose undo window lapsed.
	Expired <-chan model.Expense

	InvoiceDir string
	Company    string
	Signature  string

	Log zerolog.Logger
}

const (
	tabExpenses = iota
	tabChart
	tabMonths
)

type focusArea int

const (
	focusForm focusArea = iota
	focusList
)

// App is the root Bubble Tea model.
type App struct {
	session *ledger.Session
	prefs   ThemeSaver
	expired <-chan model.Expense
	log     zerolog.Logger

	invoiceDir string
	company    string
	signature  string
	now        func() time.Time

	mode model.Theme

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Expenses tab
	focus  focusArea
	form   expenseForm
	cursor int

	// Delete confirmation (huh form)
	confirmForm *huh.Form
	confirmVals *confirmValues

	exporting bool
	spinner   spinner.Model

	status     string
	statusKind components.StatusKind
}

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 140

	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.Mode == "" {
		opts.Mode = theme.Detect()
	}
	theme.SetMode(opts.Mode)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	form := newExpenseForm()
	form.focusField(fieldDate)

	return App{
		session:    opts.Session,
		prefs:      opts.Prefs,
		expired:    opts.Expired,
		log:        opts.Log,
		invoiceDir: opts.InvoiceDir,
		company:    opts.Company,
		signature:  opts.Signature,
		now:        time.Now,
		mode:       opts.Mode,
		focus:      focusForm,
		form:       form,
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		textinput.Blink,
		waitForUndoExpiry(a.expired),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.confirmForm != nil {
			a.confirmForm = a.confirmForm.WithWidth(min(msg.Width, 60))
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.confirmForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabExpenses {
				a.moveCursor(-1)
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabExpenses {
				a.moveCursor(1)
			}
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Delete dialog intercepts all keys
		if a.confirmForm != nil {
			return a.updateConfirm(msg)
		}

		if a.activeTab == tabExpenses && a.focus == focusForm {
			return a.updateForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "t":
			return a.toggleTheme()
		case "u", "ctrl+z":
			return a.undo()
		case "p":
			return a.startExport()
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		if a.activeTab == tabExpenses {
			return a.updateList(key)
		}
		return a, nil

	case UndoExpiredMsg:
		a.log.Debug().Int64("id", msg.Expense.ID).Msg("undo affordance dismissed")
		return a, waitForUndoExpiry(a.expired)

	case ExportDoneMsg:
		a.exporting = false
		if msg.Err != nil {
			a.setStatus("export failed: "+msg.Err.Error(), components.StatusError)
			return a, nil
		}
		a.setStatus("Invoice saved to "+msg.Path, components.StatusOK)
		return a, nil

	case spinner.TickMsg:
		if a.exporting {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.)
	if a.confirmForm != nil {
		return a.updateConfirm(msg)
	}
	if a.focus == focusForm {
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) setStatus(msg string, kind components.StatusKind) {
	a.status = msg
	a.statusKind = kind
}

// updateForm handles keys while the entry form has focus.
func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return a.submit()
	case "tab", "down":
		return a, a.form.move(1)
	case "shift+tab", "up":
		return a, a.form.move(-1)
	case "esc":
		if _, editing := a.session.EditingID(); editing {
			a.session.CancelEdit()
			a.form.reset()
			a.setStatus("Edit cancelled", components.StatusInfo)
		}
		a.form.blur()
		a.focus = focusList
		return a, nil
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.update(msg)
	return a, cmd
}

func (a App) submit() (tea.Model, tea.Cmd) {
	_, wasEditing := a.session.EditingID()
	date, title, amount := a.form.values()

	e, err := a.session.Submit(date, title, amount)
	if err != nil {
		a.setStatus(err.Error(), components.StatusError)
		return a, nil
	}

	a.form.reset()
	if wasEditing {
		a.setStatus(fmt.Sprintf("Updated %q", e.Title), components.StatusOK)
	} else {
		a.setStatus(fmt.Sprintf("Added %q", e.Title), components.StatusOK)
		a.cursor = a.session.Len() - 1
	}
	return a, a.form.focusField(fieldDate)
}

// updateList handles keys for the expense list.
func (a App) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = max(0, a.session.Len()-1)
	case "n", "a", "tab":
		a.focus = focusForm
		return a, a.form.focusField(fieldDate)
	case "e", "enter":
		sel, ok := a.selected()
		if !ok {
			return a, nil
		}
		e, err := a.session.BeginEdit(sel.ID)
		if err != nil {
			a.setStatus(err.Error(), components.StatusError)
			return a, nil
		}
		a.form.fill(e)
		a.focus = focusForm
		a.setStatus(fmt.Sprintf("Editing %q", e.Title), components.StatusInfo)
		return a, a.form.focusField(fieldDate)
	case "d", "x", "delete":
		sel, ok := a.selected()
		if !ok {
			return a, nil
		}
		a.confirmVals = &confirmValues{}
		a.confirmForm = newDeleteConfirm(sel, a.confirmVals)
		if a.width > 0 {
			a.confirmForm = a.confirmForm.WithWidth(min(a.width, 60))
		}
		return a, a.confirmForm.Init()
	}
	return a, nil
}

func (a App) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.confirmForm = nil
		a.confirmVals = nil
		return a, nil
	}

	form, cmd := a.confirmForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.confirmForm = f
	}

	switch a.confirmForm.State {
	case huh.StateCompleted:
		a = a.applyDelete()
		return a, nil
	case huh.StateAborted:
		a.confirmForm = nil
		a.confirmVals = nil
		return a, nil
	}
	return a, cmd
}

// applyDelete acts on the answered dialog. Declining is a no-op.
func (a App) applyDelete() App {
	vals := a.confirmVals
	a.confirmForm = nil
	a.confirmVals = nil
	if vals == nil || !vals.ok {
		return a
	}

	_, wasEditing := a.session.EditingID()
	if _, err := a.session.Delete(vals.id); err != nil {
		a.setStatus(err.Error(), components.StatusError)
		return a
	}
	if _, editing := a.session.EditingID(); wasEditing && !editing {
		a.form.reset()
	}
	a.setStatus("", components.StatusInfo)
	a.clampCursor()
	return a
}

func (a App) undo() (tea.Model, tea.Cmd) {
	e, err := a.session.Undo()
	if err != nil {
		if errors.Is(err, ledger.ErrNothingToUndo) {
			a.setStatus("Nothing to undo", components.StatusInfo)
		} else {
			a.setStatus(err.Error(), components.StatusError)
		}
		return a, nil
	}
	a.setStatus(fmt.Sprintf("Restored %q", e.Title), components.StatusOK)
	a.cursor = a.session.Len() - 1
	return a, nil
}

func (a App) toggleTheme() (tea.Model, tea.Cmd) {
	next := a.mode.Opposite()
	if a.prefs != nil {
		if err := a.prefs.SaveTheme(next); err != nil {
			a.log.Error().Err(err).Msg("saving theme failed")
			a.setStatus("could not save theme: "+err.Error(), components.StatusError)
		}
	}
	a.mode = next
	theme.SetMode(next)
	return a, nil
}

func (a App) startExport() (tea.Model, tea.Cmd) {
	if a.exporting {
		return a, nil
	}
	inv, err := invoice.Build(a.session.Expenses())
	if err != nil {
		a.setStatus(err.Error(), components.StatusError)
		return a, nil
	}
	a.exporting = true
	a.setStatus("Exporting invoice…", components.StatusInfo)
	meta := invoice.NewMeta(a.now(), a.company, a.signature)
	return a, tea.Batch(a.spinner.Tick, exportCmd(a.invoiceDir, inv, meta, a.log))
}

func (a App) selected() (model.Expense, bool) {
	expenses := a.session.Expenses()
	if a.cursor < 0 || a.cursor >= len(expenses) {
		return model.Expense{}, false
	}
	return expenses[a.cursor], true
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clampCursor()
}

func (a *App) clampCursor() {
	n := a.session.Len()
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.confirmForm != nil {
		return a.viewConfirm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  spendbook needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewConfirm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Padding(1, 3)

	card := cardStyle.Render(a.confirmForm.View())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Form", []struct{ key, desc string }{
			{"Tab ↑ ↓", "Next / previous field"},
			{"Enter", "Save expense"},
			{"Esc", "Cancel edit, go to list"},
		}},
		{"List", []struct{ key, desc string }{
			{"j k", "Move selection"},
			{"e Enter", "Edit selected"},
			{"d", "Delete selected"},
			{"u ^z", "Undo last delete"},
			{"n", "New expense"},
		}},
		{"General", []struct{ key, desc string }{
			{"1 2 3 ← →", "Switch tab"},
			{"p", "Export PDF invoice"},
			{"t", "Toggle light / dark"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := a.renderUndoBanner(w) + components.RenderStatusBar(w, a.statusText(), a.statusKind, a.mode.ToggleIcon())

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	case tabChart:
		content = a.renderChartTab(cw, contentH)
	case tabMonths:
		content = a.renderMonthsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusText() string {
	if a.exporting {
		return a.spinner.View() + " " + a.status
	}
	return a.status
}

// renderUndoBanner shows the undo affordance while a deletion is recoverable.
func (a App) renderUndoBanner(w int) string {
	e, ok := a.session.PendingUndo()
	if !ok {
		return ""
	}
	t := theme.Active
	style := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.AccentDim).
		Width(w)
	key := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.AccentDim).Bold(true)

	return style.Render(fmt.Sprintf(" Deleted %q  ", e.Title)+key.Render("[u] undo")) + "\n"
}

// ─── Commands ───────────────────────────────────────────────────

// waitForUndoExpiry blocks until the session reports a lapsed undo.
func waitForUndoExpiry(ch <-chan model.Expense) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return UndoExpiredMsg{Expense: e}
	}
}

// exportCmd writes the invoice PDF in the background.
func exportCmd(dir string, inv invoice.Invoice, meta invoice.Meta, log zerolog.Logger) tea.Cmd {
	return func() tea.Msg {
		path, err := invoice.Export(dir, inv, meta)
		if err != nil {
			log.Error().Err(err).Msg("invoice export failed")
			return ExportDoneMsg{Err: err}
		}
		log.Info().Str("path", path).Int("months", len(inv.Groups)).Msg("invoice exported")
		return ExportDoneMsg{Path: path}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}
