package cmd

import (
	"fmt"

	"github.com/theirongolddev/spendbook/internal/cli"
	"github.com/theirongolddev/spendbook/internal/ledger"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagDeleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an expense after confirmation",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&flagDeleteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	session := ws.session()
	e, ok := session.Find(id)
	if !ok {
		return fmt.Errorf("delete %d: %w", id, ledger.ErrNotFound)
	}

	if !flagDeleteYes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", e.Title)).
			Description(fmt.Sprintf("%s on %s", cli.FormatRupiah(e.Amount), e.Date)).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("confirmation: %w", err)
		}
		if !confirmed {
			fmt.Println(cli.RenderWarning("Kept."))
			return nil
		}
	}

	if _, err := session.Delete(id); err != nil {
		return err
	}
	fmt.Printf("  Deleted #%d  %s\n", e.ID, e.Title)
	return nil
}
