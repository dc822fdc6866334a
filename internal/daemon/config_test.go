package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7474 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7474)
	}
	if cfg.Storage.Dir == "" {
		t.Error("Storage.Dir should have a default")
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus should default to true")
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv("PULSEFIT_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != 7474 {
		t.Errorf("API.Port = %d, want default %d", cfg.API.Port, 7474)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PULSEFIT_HOME", home)

	content := "[api]\nport = 9000\n\n[telemetry]\nprometheus = false\n"
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 9000)
	}
	if cfg.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus should be overridden to false")
	}
	// Untouched sections keep defaults
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want default", cfg.API.Host)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("PULSEFIT_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 8123
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.API.Port != 8123 {
		t.Errorf("API.Port = %d, want %d", loaded.API.Port, 8123)
	}
}
