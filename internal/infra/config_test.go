package infra

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"flowex/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  name: flowex
exchange:
  instruments: [Rose, Tulip]
feed:
  input_path: orders.csv
server:
  enabled: true
  listen_addr: ":9090"
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.ListenAddr != ":9090" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	instruments := cfg.Instruments()
	if len(instruments) != 2 || instruments[0] != domain.InstrumentRose {
		t.Errorf("unexpected instruments: %v", instruments)
	}
}

func TestLoadConfig_DefaultsInstruments(t *testing.T) {
	path := writeConfig(t, `
feed:
  input_path: orders.csv
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(cfg.Instruments()) != 5 {
		t.Errorf("expected the full tradable set, got %v", cfg.Instruments())
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, domain.ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadConfig_RejectsUnknownInstrument(t *testing.T) {
	path := writeConfig(t, `
exchange:
  instruments: [Rose, Daisy]
feed:
  input_path: orders.csv
`)

	if _, err := LoadConfig(path); !errors.Is(err, domain.ErrUnknownInstrument) {
		t.Errorf("expected ErrUnknownInstrument, got %v", err)
	}
}

func TestLoadConfig_RejectsIdleSetup(t *testing.T) {
	path := writeConfig(t, `
server:
  enabled: false
`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error when no input file and server disabled")
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("FLOWEX_LISTEN_ADDR", ":7070")
	t.Setenv("FLOWEX_LOG_LEVEL", "warn")

	path := writeConfig(t, `
feed:
  input_path: orders.csv
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Server.Enabled || cfg.Server.ListenAddr != ":7070" {
		t.Errorf("env override not applied: %+v", cfg.Server)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected warn level, got %s", cfg.Logging.Level)
	}
}
