package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/theirongolddev/spendbook/internal/config"
)

func TestWriteDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvUndoWindow, "")

	path, err := writeDefaultConfig(false)
	if err != nil {
		t.Fatalf("writeDefaultConfig: %v", err)
	}
	if path != config.Path() {
		t.Fatalf("path = %q, want %q", path, config.Path())
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Undo.WindowSec != 5 || cfg.Invoice.Company != "EXPENSE TRACKER" {
		t.Fatalf("written config does not hold defaults: %+v", cfg)
	}
}

func TestWriteDefaultConfig_KeepsExistingUnlessForced(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	custom := config.DefaultConfig()
	custom.Invoice.Company = "WARUNG"
	if err := config.Save(custom); err != nil {
		t.Fatal(err)
	}

	if _, err := writeDefaultConfig(false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already-exists error, got %v", err)
	}
	data, err := os.ReadFile(config.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "WARUNG") {
		t.Fatal("existing config was overwritten without --force")
	}

	if _, err := writeDefaultConfig(true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
	data, err = os.ReadFile(config.Path())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "WARUNG") {
		t.Fatal("--force did not overwrite the config")
	}
}
