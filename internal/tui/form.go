package tui

import (
	"strings"

	"github.com/theirongolddev/spendbook/internal/model"
	"github.com/theirongolddev/spendbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldDate = iota
	fieldTitle
	fieldAmount
	fieldCount // sentinel
)

var fieldLabels = [fieldCount]string{"Date", "Title", "Amount"}

// expenseForm is the three-field entry form shared by create and edit.
type expenseForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newExpenseForm() expenseForm {
	var f expenseForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 30
		f.inputs[i] = ti
	}
	f.inputs[fieldDate].Placeholder = "YYYY-MM-DD"
	f.inputs[fieldDate].CharLimit = 10
	f.inputs[fieldTitle].Placeholder = "e.g. Coffee"
	f.inputs[fieldAmount].Placeholder = "15000"
	f.inputs[fieldAmount].CharLimit = 20
	return f
}

// focusField moves the caret to field i.
func (f *expenseForm) focusField(i int) tea.Cmd {
	f.blur()
	f.focus = i
	return f.inputs[i].Focus()
}

func (f *expenseForm) move(delta int) tea.Cmd {
	return f.focusField((f.focus + delta + fieldCount) % fieldCount)
}

func (f *expenseForm) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// fill loads an existing record for editing.
func (f *expenseForm) fill(e model.Expense) {
	f.inputs[fieldDate].SetValue(e.Date)
	f.inputs[fieldTitle].SetValue(e.Title)
	f.inputs[fieldAmount].SetValue(e.Amount.String())
}

func (f *expenseForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
}

func (f expenseForm) values() (date, title, amount string) {
	return f.inputs[fieldDate].Value(), f.inputs[fieldTitle].Value(), f.inputs[fieldAmount].Value()
}

func (f expenseForm) update(msg tea.Msg) (expenseForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f expenseForm) view(focused bool) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(8)
	activeLabel := labelStyle.Foreground(t.Accent).Bold(true)

	var b strings.Builder
	for i, in := range f.inputs {
		in.TextStyle = lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		in.PlaceholderStyle = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		in.Cursor.Style = lipgloss.NewStyle().Foreground(t.AccentBright)

		label := labelStyle
		if focused && i == f.focus {
			label = activeLabel
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(in.View())
		if i < fieldCount-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
