package cmd

import (
	"fmt"

	"github.com/theirongolddev/spendbook/internal/ledger"
	"github.com/theirongolddev/spendbook/internal/model"
	"github.com/theirongolddev/spendbook/internal/tui"
	"github.com/theirongolddev/spendbook/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive expense tracker",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	// Persisted preference wins; otherwise follow the terminal background.
	mode, ok := ws.adapter.LoadTheme()
	if !ok {
		mode = theme.Detect()
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	expired := make(chan model.Expense, 1)
	session := ws.session(ledger.OnUndoExpired(func(e model.Expense) {
		select {
		case expired <- e:
		default:
		}
	}))

	app := tui.NewApp(tui.Options{
		Session:    session,
		Prefs:      ws.adapter,
		Mode:       mode,
		Expired:    expired,
		InvoiceDir: ws.cfg.InvoiceDir(),
		Company:    ws.cfg.Invoice.Company,
		Signature:  ws.cfg.Invoice.Signature,
		Log:        ws.log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	ws.log.Info().Int("expenses", session.Len()).Str("theme", string(mode)).Msg("tui started")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
