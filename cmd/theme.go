package cmd

import (
	"fmt"

	"github.com/theirongolddev/spendbook/internal/model"
	"github.com/theirongolddev/spendbook/internal/tui/theme"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [toggle|light|dark]",
	Short:     "Show or change the light/dark preference",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"toggle", "light", "dark"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	current, persisted := ws.adapter.LoadTheme()
	if !persisted {
		current = theme.Detect()
	}

	if len(args) == 0 {
		source := "saved"
		if !persisted {
			source = "terminal default"
		}
		fmt.Printf("  Theme: %s (%s)  toggle: %s\n", current, source, current.ToggleIcon())
		return nil
	}

	var next model.Theme
	if args[0] == "toggle" {
		next = current.Opposite()
	} else {
		next, err = model.ParseTheme(args[0])
		if err != nil {
			return err
		}
	}

	if err := ws.adapter.SaveTheme(next); err != nil {
		return err
	}
	fmt.Printf("  Theme: %s  toggle: %s\n", next, next.ToggleIcon())
	return nil
}
