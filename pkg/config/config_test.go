package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mediadex/mediadex/pkg/catalog"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("loading missing config: %v", err)
	}
	if cfg.ListenAddr != ":1337" {
		t.Errorf("expected default listen_addr :1337, got %q", cfg.ListenAddr)
	}
	if cfg.MatchMode != catalog.MatchFTS {
		t.Errorf("expected default match_mode fts, got %q", cfg.MatchMode)
	}
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("database = \"/tmp/catalog.db\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Database != "/tmp/catalog.db" {
		t.Errorf("expected database from file, got %q", cfg.Database)
	}
	if cfg.ListenAddr != ":1337" {
		t.Errorf("expected default listen_addr, got %q", cfg.ListenAddr)
	}
	if cfg.MatchMode != catalog.MatchFTS {
		t.Errorf("expected default match_mode, got %q", cfg.MatchMode)
	}
}

func TestLoadConfigRejectsBadMatchMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("match_mode = \"regex\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid match_mode")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &Config{
		Database:   "/data/catalog.db",
		ListenAddr: ":8080",
		StaticDir:  "web",
		MatchMode:  catalog.MatchLike,
		Debug:      true,
	}
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v want %+v", loaded, cfg)
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &Config{Database: "/data/catalog.db"}
	if err := cfg.SaveTemplateConfig(path); err != nil {
		t.Fatalf("saving template config: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "/data/catalog.db") {
		t.Errorf("expected database path substituted into template, got:\n%s", data)
	}
	if strings.Contains(string(data), "{{DATABASE}}") {
		t.Errorf("template placeholder left in output")
	}
}
