package cmd

import (
	"fmt"

	"github.com/theirongolddev/spendbook/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var flagConfigForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		path, err := writeDefaultConfig(flagConfigForce)
		if err != nil {
			return err
		}
		fmt.Printf("  Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagConfigForce, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// writeDefaultConfig saves DefaultConfig to the config path. An existing
// file is left alone unless force is set.
func writeDefaultConfig(force bool) (string, error) {
	if config.Exists() && !force {
		return "", fmt.Errorf("config file %s already exists (use --force to overwrite)", config.Path())
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return "", fmt.Errorf("saving config: %w", err)
	}
	return config.Path(), nil
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file, see `spendbook config init`)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.DataDir())
	fmt.Printf("    Database:       %s\n", cfg.DBPath())
	fmt.Println()

	fmt.Println("  [Undo]")
	fmt.Printf("    Window: %s\n", cfg.UndoWindow())
	fmt.Println()

	fmt.Println("  [Invoice]")
	fmt.Printf("    Output dir: %s\n", cfg.InvoiceDir())
	fmt.Printf("    Company:    %s\n", cfg.Invoice.Company)
	fmt.Printf("    Signature:  %s\n", cfg.Invoice.Signature)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    File:  %s\n", cfg.LogPath())
	fmt.Println()

	fmt.Printf("  Overrides: %s, %s, %s (also read from .env)\n",
		config.EnvDataDir, config.EnvLogLevel, config.EnvUndoWindow)
	return nil
}
