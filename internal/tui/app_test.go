package tui

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendbook/internal/ledger"
	"github.com/theirongolddev/spendbook/internal/model"
	"github.com/theirongolddev/spendbook/internal/store"
	"github.com/theirongolddev/spendbook/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

type fakeTimer struct{ stopped bool }

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	now    time.Time
	timers []*fakeTimer
	funcs  []func()
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) ledger.Timer {
	tm := &fakeTimer{}
	c.timers = append(c.timers, tm)
	c.funcs = append(c.funcs, f)
	return tm
}

func (c *fakeClock) fireLast() {
	i := len(c.funcs) - 1
	if !c.timers[i].stopped {
		c.funcs[i]()
	}
}

type harness struct {
	app     App
	adapter *store.Adapter
	clock   *fakeClock
	expired chan model.Expense
}

func newHarness(t *testing.T, initial ...model.Expense) *harness {
	t.Helper()
	h := &harness{
		adapter: store.NewAdapter(store.NewMemory(), zerolog.Nop()),
		clock:   &fakeClock{now: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)},
		expired: make(chan model.Expense, 1),
	}
	session := ledger.New(initial, h.adapter,
		ledger.WithClock(h.clock),
		ledger.OnUndoExpired(func(e model.Expense) { h.expired <- e }),
	)
	h.app = NewApp(Options{
		Session:    session,
		Prefs:      h.adapter,
		Mode:       model.ThemeDark,
		Expired:    h.expired,
		InvoiceDir: t.TempDir(),
		Company:    "EXPENSE TRACKER",
		Signature:  "Expense Tracker App",
		Log:        zerolog.Nop(),
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	m, cmd := h.app.Update(msg)
	h.app = m.(App)
	return cmd
}

func (h *harness) key(k tea.KeyType) { h.send(tea.KeyMsg{Type: k}) }

// press sends a rune key and runs the resulting commands to completion.
func (h *harness) press(r rune) {
	h.drive(h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}))
}

// drive feeds the messages produced by cmd back into the app until it
// settles. Commands that block (blink and spinner ticks) are dropped after
// a short wait.
func (h *harness) drive(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 100; steps++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c, 50*time.Millisecond)
		if !ok || msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if cmds, ok := cmdSlice(msg); ok {
			queue = append(queue, cmds...)
			continue
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		queue = append(queue, h.send(msg))
	}
}

func runCmd(c tea.Cmd, wait time.Duration) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(wait):
		return nil, false
	}
}

// cmdSlice unpacks tea.Sequence results, whose message type is unexported.
func cmdSlice(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	cmdType := reflect.TypeOf(tea.Cmd(nil))
	if v.Kind() != reflect.Slice || !v.Type().Elem().ConvertibleTo(cmdType) {
		return nil, false
	}
	cmds := make([]tea.Cmd, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		cmds = append(cmds, v.Index(i).Convert(cmdType).Interface().(tea.Cmd))
	}
	return cmds, true
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func expense(id int64, date, title string, amount int64) model.Expense {
	return model.Expense{ID: id, Date: date, Title: title, Amount: decimal.NewFromInt(amount)}
}

func TestSubmitAddsExpense(t *testing.T) {
	h := newHarness(t)

	h.typeText("2024-01-05")
	h.key(tea.KeyTab)
	h.typeText("Coffee")
	h.key(tea.KeyTab)
	h.typeText("15000")
	h.key(tea.KeyEnter)

	got := h.app.session.Expenses()
	if len(got) != 1 || got[0].Title != "Coffee" || !got[0].Amount.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("expenses = %+v", got)
	}
	if h.app.status != `Added "Coffee"` {
		t.Errorf("status = %q", h.app.status)
	}
	if d, ti, am := h.app.form.values(); d != "" || ti != "" || am != "" {
		t.Errorf("form not cleared: %q %q %q", d, ti, am)
	}
	if persisted := h.adapter.Load(); len(persisted) != 1 {
		t.Errorf("persisted %d expenses, want 1", len(persisted))
	}
	if !strings.Contains(h.app.View(), "Rp 15.000") {
		t.Error("view should list the new amount")
	}
}

func TestSubmitValidationErrorLeavesStoreUntouched(t *testing.T) {
	h := newHarness(t)

	h.key(tea.KeyEnter)
	if h.app.status != model.ErrDateRequired.Error() {
		t.Fatalf("status = %q", h.app.status)
	}

	h.typeText("2024-01-05")
	h.key(tea.KeyTab)
	h.typeText("Coffee")
	h.key(tea.KeyTab)
	h.typeText("0")
	h.key(tea.KeyEnter)
	if h.app.status != model.ErrAmountNotPositive.Error() {
		t.Fatalf("status = %q", h.app.status)
	}
	if h.app.session.Len() != 0 {
		t.Fatal("validation failure must not add anything")
	}
	if ti := h.app.form.inputs[fieldTitle].Value(); ti != "Coffee" {
		t.Fatalf("form should keep input after an error, title = %q", ti)
	}
}

func TestEditKeepsIDAndPosition(t *testing.T) {
	h := newHarness(t,
		expense(1, "2024-01-05", "Coffee", 15000),
		expense(2, "2024-02-10", "Book", 85000),
	)
	h.key(tea.KeyEsc) // to list
	h.typeText("e")

	if h.app.focus != focusForm {
		t.Fatal("edit should focus the form")
	}
	if _, title, amount := h.app.form.values(); title != "Coffee" || amount != "15000" {
		t.Fatalf("form not populated: %q %q", title, amount)
	}
	if !strings.Contains(h.app.View(), "Edit expense") {
		t.Error("form card should show edit mode")
	}

	h.app.form.inputs[fieldTitle].SetValue("Latte")
	h.key(tea.KeyEnter)

	got := h.app.session.Expenses()
	if got[0].ID != 1 || got[0].Title != "Latte" || got[1].Title != "Book" {
		t.Fatalf("expenses after edit = %+v", got)
	}
	if _, editing := h.app.session.EditingID(); editing {
		t.Fatal("should leave edit mode")
	}
}

func TestEscCancelsEdit(t *testing.T) {
	h := newHarness(t, expense(1, "2024-01-05", "Coffee", 15000))
	h.key(tea.KeyEsc)
	h.typeText("e")
	h.key(tea.KeyEsc)

	if _, editing := h.app.session.EditingID(); editing {
		t.Fatal("esc should cancel the edit")
	}
	if h.app.focus != focusList {
		t.Fatal("esc should return to the list")
	}
	if h.app.session.Expenses()[0].Title != "Coffee" {
		t.Fatal("cancel must not change the record")
	}
}

func TestDeleteConfirmThenUndo(t *testing.T) {
	h := newHarness(t,
		expense(1, "2024-01-05", "Coffee", 15000),
		expense(2, "2024-02-10", "Book", 85000),
	)
	h.key(tea.KeyEsc)
	h.typeText("d")
	if h.app.confirmForm == nil {
		t.Fatal("delete should ask for confirmation")
	}
	if h.app.session.Len() != 2 {
		t.Fatal("nothing is deleted before confirmation")
	}

	h.app.confirmVals.ok = true
	h.app = h.app.applyDelete()

	if h.app.confirmForm != nil {
		t.Fatal("dialog should close")
	}
	if h.app.session.Len() != 1 {
		t.Fatalf("len = %d, want 1", h.app.session.Len())
	}
	if !strings.Contains(h.app.View(), "[u] undo") {
		t.Fatal("undo affordance should be visible")
	}

	h.typeText("u")
	got := h.app.session.Expenses()
	if len(got) != 2 || got[1].Title != "Coffee" {
		t.Fatalf("undo should re-append at the end, got %+v", got)
	}
	if strings.Contains(h.app.View(), "[u] undo") {
		t.Fatal("undo affordance should be gone")
	}
}

func TestDeleteDialogKeystrokes(t *testing.T) {
	h := newHarness(t,
		expense(1, "2024-01-05", "Coffee", 15000),
		expense(2, "2024-02-10", "Book", 85000),
	)
	h.key(tea.KeyEsc)

	h.press('d')
	if h.app.confirmForm == nil {
		t.Fatal("d should open the dialog")
	}
	h.press('n')
	if h.app.confirmForm != nil {
		t.Fatal("n should close the dialog")
	}
	if h.app.session.Len() != 2 {
		t.Fatalf("n must keep the record, len = %d", h.app.session.Len())
	}
	if _, pending := h.app.session.PendingUndo(); pending {
		t.Fatal("keeping a record must not arm undo")
	}

	h.press('d')
	h.press('y')
	if h.app.confirmForm != nil {
		t.Fatal("y should close the dialog")
	}
	got := h.app.session.Expenses()
	if len(got) != 1 || got[0].Title != "Book" {
		t.Fatalf("y should delete the selected record, got %+v", got)
	}
	if persisted := h.adapter.Load(); len(persisted) != 1 {
		t.Fatalf("persisted %d expenses, want 1", len(persisted))
	}
	if !strings.Contains(h.app.View(), "[u] undo") {
		t.Fatal("undo affordance should be visible after y")
	}
}

func TestDeclinedDeleteIsNoop(t *testing.T) {
	h := newHarness(t, expense(1, "2024-01-05", "Coffee", 15000))
	h.key(tea.KeyEsc)
	h.typeText("d")

	h.app.confirmVals.ok = false
	h.app = h.app.applyDelete()
	if h.app.session.Len() != 1 {
		t.Fatal("declined delete must not remove anything")
	}

	h.typeText("d")
	h.key(tea.KeyEsc)
	if h.app.confirmForm != nil || h.app.session.Len() != 1 {
		t.Fatal("esc should dismiss the dialog without deleting")
	}
}

func TestUndoExpiryDismissesAffordance(t *testing.T) {
	h := newHarness(t, expense(1, "2024-01-05", "Coffee", 15000))
	h.key(tea.KeyEsc)
	h.typeText("d")
	h.app.confirmVals.ok = true
	h.app = h.app.applyDelete()

	h.clock.fireLast()

	msg := waitForUndoExpiry(h.expired)()
	exp, ok := msg.(UndoExpiredMsg)
	if !ok || exp.Expense.ID != 1 {
		t.Fatalf("msg = %#v", msg)
	}
	if cmd := h.send(msg); cmd == nil {
		t.Fatal("expiry handler should re-arm the waiter")
	}
	if strings.Contains(h.app.View(), "[u] undo") {
		t.Fatal("affordance should be dismissed after expiry")
	}

	h.typeText("u")
	if h.app.status != "Nothing to undo" || h.app.session.Len() != 0 {
		t.Fatalf("undo after expiry: status=%q len=%d", h.app.status, h.app.session.Len())
	}
}

func TestThemeTogglePersists(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyEsc)

	h.typeText("t")
	if h.app.mode != model.ThemeLight || theme.Active.Mode != model.ThemeLight {
		t.Fatalf("mode = %s, active = %s", h.app.mode, theme.Active.Mode)
	}
	if saved, ok := h.adapter.LoadTheme(); !ok || saved != model.ThemeLight {
		t.Fatalf("persisted theme = %q, %v", saved, ok)
	}
	if !strings.Contains(h.app.View(), "☾") {
		t.Error("light mode should offer the moon icon")
	}

	h.typeText("t")
	if h.app.mode != model.ThemeDark {
		t.Fatal("second toggle should return to dark")
	}
}

func TestExportWithoutDataShowsMessage(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyEsc)

	if cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}); cmd != nil {
		t.Fatal("no export should start")
	}
	if h.app.status != "no data yet" {
		t.Fatalf("status = %q", h.app.status)
	}
}

func TestExportDoneMessage(t *testing.T) {
	h := newHarness(t, expense(1, "2024-01-05", "Coffee", 15000))
	h.key(tea.KeyEsc)
	h.typeText("p")
	if !h.app.exporting {
		t.Fatal("export should be running")
	}

	h.send(ExportDoneMsg{Path: "/tmp/x.pdf"})
	if h.app.exporting || !strings.Contains(h.app.status, "/tmp/x.pdf") {
		t.Fatalf("exporting=%v status=%q", h.app.exporting, h.app.status)
	}
}

func TestTabsRender(t *testing.T) {
	h := newHarness(t,
		expense(1, "2024-01-05", "Coffee", 15000),
		expense(2, "2024-02-10", "Book", 85000),
	)
	h.key(tea.KeyEsc)

	h.typeText("2")
	if view := h.app.View(); !strings.Contains(view, "Spending per entry") || !strings.Contains(view, "Coffee") {
		t.Fatal("chart tab should label bars by title")
	}

	h.typeText("3")
	view := h.app.View()
	for _, want := range []string{"JANUARI 2024", "FEBRUARI 2024", "Rp 100.000"} {
		if !strings.Contains(view, want) {
			t.Errorf("months tab missing %q", want)
		}
	}
}
