package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Game.Difficulty != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[game]
difficulty = "hard"
operators = ["mul", "div"]
questions = 8
time-limit = 30.5
sound = false

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.Difficulty == nil || *cfg.Game.Difficulty != "hard" {
		t.Fatalf("unexpected difficulty: %v", cfg.Game.Difficulty)
	}
	if cfg.Game.Operators == nil || len(*cfg.Game.Operators) != 2 {
		t.Fatalf("unexpected operators: %v", cfg.Game.Operators)
	}
	if cfg.Game.Questions == nil || *cfg.Game.Questions != 8 {
		t.Fatalf("unexpected questions: %v", cfg.Game.Questions)
	}
	if cfg.Game.TimeLimit == nil || *cfg.Game.TimeLimit != 30.5 {
		t.Fatalf("unexpected time limit: %v", cfg.Game.TimeLimit)
	}
	if cfg.Game.Sound == nil || *cfg.Game.Sound {
		t.Fatalf("unexpected sound: %v", cfg.Game.Sound)
	}
	if cfg.Game.MaxDigits != nil {
		t.Fatalf("unset key should stay nil")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\nlevels = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "game.levels") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsHonorXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	if got := DefaultConfigPath(); got != filepath.Join(dir, "tuimath", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "tuimath", "tuimath.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}
