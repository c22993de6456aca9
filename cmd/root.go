// Package cmd implements the spendbook CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/spendbook/internal/cli"
	"github.com/theirongolddev/spendbook/internal/config"
	"github.com/theirongolddev/spendbook/internal/ledger"
	"github.com/theirongolddev/spendbook/internal/logging"
	"github.com/theirongolddev/spendbook/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:          "spendbook",
	Short:        "Terminal expense tracker",
	Long:         "Record expenses, review totals and charts, and export a monthly invoice as PDF.",
	RunE:         runTUI,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
}

// workspace is the opened storage and logging shared by every command.
type workspace struct {
	cfg      config.Config
	log      zerolog.Logger
	db       *store.SQLite
	adapter  *store.Adapter
	closeLog func() error
}

// loadConfig loads config, falling back to defaults on error so a corrupt
// file never blocks the app.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintln(os.Stderr, cli.RenderWarning("Config error, using defaults: "+err.Error()))
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg
}

// openWorkspace is the shared startup path: config, log file, database.
func openWorkspace() (*workspace, error) {
	cfg := loadConfig()

	log, closeLog, err := logging.OpenFile(cfg.LogPath(), logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Logging disabled: %v\n", err)
		}
		log, closeLog = zerolog.Nop(), func() error { return nil }
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return &workspace{
		cfg:      cfg,
		log:      log,
		db:       db,
		adapter:  store.NewAdapter(db, log),
		closeLog: closeLog,
	}, nil
}

func (w *workspace) Close() {
	_ = w.db.Close()
	_ = w.closeLog()
}

// session loads the persisted expenses into a new ledger session.
func (w *workspace) session(opts ...ledger.Option) *ledger.Session {
	base := []ledger.Option{
		ledger.WithLogger(w.log),
		ledger.WithUndoWindow(w.cfg.UndoWindow()),
	}
	return ledger.New(w.adapter.Load(), w.adapter, append(base, opts...)...)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expense id %q", s)
	}
	return id, nil
}

// infof prints to stderr unless --quiet.
func infof(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
