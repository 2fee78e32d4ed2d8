package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Method != "smith" {
		t.Errorf("Method = %q, want smith", cfg.Method)
	}
	if cfg.Tuner != "cohen_coon" {
		t.Errorf("Tuner = %q, want cohen_coon", cfg.Tuner)
	}
	if cfg.Structure != "PID" {
		t.Errorf("Structure = %q, want PID", cfg.Structure)
	}
	if cfg.Ident.SettleBand != DefaultSettleBand {
		t.Errorf("SettleBand = %v, want %v", cfg.Ident.SettleBand, DefaultSettleBand)
	}
	if cfg.Ident.IgnoreDelayBelow != DefaultIgnoreDelayBelow {
		t.Errorf("IgnoreDelayBelow = %v, want %v", cfg.Ident.IgnoreDelayBelow, DefaultIgnoreDelayBelow)
	}
	if !cfg.Report.Terminal {
		t.Error("terminal reporting should default on")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
method: nishikawa
structure: PI
ident:
  settle_band: 0.05
refine:
  enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Method != "nishikawa" {
		t.Errorf("Method = %q, want nishikawa", cfg.Method)
	}
	if cfg.Structure != "PI" {
		t.Errorf("Structure = %q, want PI", cfg.Structure)
	}
	if cfg.Ident.SettleBand != 0.05 {
		t.Errorf("SettleBand = %v, want 0.05", cfg.Ident.SettleBand)
	}
	if !cfg.Refine.Enabled {
		t.Error("Refine.Enabled = false, want true")
	}
	// untouched keys keep their defaults
	if cfg.Tuner != "cohen_coon" {
		t.Errorf("Tuner = %q, want default cohen_coon", cfg.Tuner)
	}
	if cfg.Refine.Steps != DefaultRefineSteps {
		t.Errorf("Refine.Steps = %v, want default %v", cfg.Refine.Steps, DefaultRefineSteps)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Method = "hagglund"
	cfg.SampleTime = 0.1
	cfg.Report.PlotPath = "out.png"

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("round trip changed the config:\ngot  %+v\nwant %+v", got, cfg)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("method: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
