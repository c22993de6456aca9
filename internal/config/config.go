// Package config loads spendbook's TOML configuration and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all spendbook configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Undo    UndoConfig    `toml:"undo"`
	Invoice InvoiceConfig `toml:"invoice"`
	Log     LogConfig     `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
}

// UndoConfig controls the delete-undo window.
type UndoConfig struct {
	WindowSec int `toml:"window_sec"`
}

// InvoiceConfig controls the exported invoice document.
type InvoiceConfig struct {
	OutputDir string `toml:"output_dir,omitempty"`
	Company   string `toml:"company"`
	Signature string `toml:"signature"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// Environment variables that override the config file.
const (
	EnvDataDir    = "SPENDBOOK_DATA_DIR"
	EnvLogLevel   = "SPENDBOOK_LOG_LEVEL"
	EnvUndoWindow = "SPENDBOOK_UNDO_WINDOW_SEC"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Undo: UndoConfig{WindowSec: 5},
		Invoice: InvoiceConfig{
			Company:   "EXPENSE TRACKER",
			Signature: "Expense Tracker App",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spendbook")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "spendbook")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides (optionally from a .env file) are applied last.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom is Load with an explicit file path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	var loadErr error
	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			cfg = DefaultConfig()
			loadErr = fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		loadErr = fmt.Errorf("reading config: %w", err)
	}

	// Overrides apply even when the file is unusable.
	// A missing .env is the normal case.
	_ = godotenv.Load()
	applyEnv(&cfg)

	return cfg, loadErr
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvUndoWindow); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Undo.WindowSec = n
		}
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DataDir returns the effective data directory.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// DBPath returns the path of the key-value database.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir(), "spendbook.db")
}

// LogPath returns the path of the diagnostic log file.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir(), "spendbook.log")
}

// InvoiceDir returns where exported invoices are written.
func (c Config) InvoiceDir() string {
	if c.Invoice.OutputDir != "" {
		return c.Invoice.OutputDir
	}
	return "."
}

// UndoWindow returns the undo window, never shorter than one second.
func (c Config) UndoWindow() time.Duration {
	if c.Undo.WindowSec < 1 {
		return 5 * time.Second
	}
	return time.Duration(c.Undo.WindowSec) * time.Second
}
