package demo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	content := `
tick_ms = 100
spawn_every = 10
player_hp = 50
arena_width = 60
arena_height = 20
log_lines = 5
script = "hooks.lua"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.TickMS != 100 || cfg.SpawnEvery != 10 || cfg.PlayerHP != 50 {
		t.Errorf("timing fields wrong: %+v", cfg)
	}
	if cfg.ArenaWidth != 60 || cfg.ArenaHeight != 20 || cfg.LogLines != 5 {
		t.Errorf("layout fields wrong: %+v", cfg)
	}
	if cfg.Script != "hooks.lua" {
		t.Errorf("Script = %q, want hooks.lua", cfg.Script)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	if err := os.WriteFile(path, []byte("tick_ms = 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.TickMS != 16 {
		t.Errorf("TickMS = %d, want 16", cfg.TickMS)
	}
	if cfg.PlayerHP != DefaultConfig().PlayerHP {
		t.Error("unspecified fields should keep their defaults")
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	if err := os.WriteFile(path, []byte("tick_ms = = nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestConfig_SanitizedClampsBadValues(t *testing.T) {
	cfg := Config{TickMS: -1, SpawnEvery: 0, PlayerHP: -5, ArenaWidth: 1, ArenaHeight: 1, LogLines: 0}
	got := cfg.sanitized()
	if got != DefaultConfig() {
		t.Errorf("sanitized() = %+v, want defaults", got)
	}
}
