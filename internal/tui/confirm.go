package tui

import (
	"fmt"

	"github.com/theirongolddev/spendbook/internal/cli"
	"github.com/theirongolddev/spendbook/internal/model"

	"github.com/charmbracelet/huh"
)

// confirmValues receives the answer of the delete dialog.
type confirmValues struct {
	id    int64
	title string
	ok    bool
}

func newDeleteConfirm(e model.Expense, vals *confirmValues) *huh.Form {
	vals.id = e.ID
	vals.title = e.Title
	vals.ok = false

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", e.Title)).
				Description(fmt.Sprintf("%s on %s", cli.FormatRupiah(e.Amount), e.Date)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&vals.ok),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
}
