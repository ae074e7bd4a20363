package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuimath/internal/config"
	"github.com/verte-zerg/tuimath/internal/model"
)

func resetPlayFlags() {
	playDifficulty = defaultDifficulty
	playOps = append([]string(nil), defaultOps...)
	playQuestions = defaultQuestions
	playTimeLimit = 0
	playDigits = 0
	playMaxMultiple = 0
}

func TestBuildConfigDefaults(t *testing.T) {
	resetPlayFlags()
	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	if cfg.Difficulty != model.Easy || cfg.Questions != 5 || cfg.TimeLimit != 10*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.Operators) != 4 {
		t.Fatalf("expected all operators, got %v", cfg.Operators)
	}
}

func TestBuildConfigRejectsBadSetup(t *testing.T) {
	resetPlayFlags()
	playOps = nil
	if _, err := buildConfig(); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty ops, got %v", err)
	}

	resetPlayFlags()
	playTimeLimit = -1
	if _, err := buildConfig(); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("expected configuration error for negative limit, got %v", err)
	}

	resetPlayFlags()
	playDifficulty = "brutal"
	if _, err := buildConfig(); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Game.Difficulty != nil || cfg.Log.Level != nil {
		t.Fatalf("commented template should not set values: %+v", cfg)
	}
}

func TestPresetsCmdPrintsTable(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"presets", "--questions", "10"})
	if err := root.Execute(); err != nil {
		t.Fatalf("presets: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Difficulty", "easy", "medium", "hard", "70s"} {
		if !strings.Contains(text, want) {
			t.Fatalf("presets output missing %q:\n%s", want, text)
		}
	}
}

func TestApplyConfigRespectsChangedFlags(t *testing.T) {
	var questions int
	var difficulty string
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&questions, "questions", 5, "")
	cmd.Flags().StringVar(&difficulty, "difficulty", "easy", "")
	if err := cmd.Flags().Parse([]string{"--questions", "8"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	fromFile := 12
	hard := "hard"
	applyConfig(cmd, "questions", &questions, &fromFile)
	applyConfig(cmd, "difficulty", &difficulty, &hard)
	if questions != 8 {
		t.Fatalf("explicit flag should win over the file, got %d", questions)
	}
	if difficulty != "hard" {
		t.Fatalf("file value should fill an unset flag, got %q", difficulty)
	}
	applyConfig[string](cmd, "difficulty", &difficulty, nil)
	if difficulty != "hard" {
		t.Fatalf("missing file value should keep the current one")
	}
}

func TestEditorCommand(t *testing.T) {
	cmd, err := editorCommand("code --wait", "/tmp/config.toml")
	if err != nil {
		t.Fatalf("editor command: %v", err)
	}
	if got := strings.Join(cmd.Args, " "); got != "code --wait /tmp/config.toml" {
		t.Fatalf("unexpected args %q", got)
	}
	cmd, err = editorCommand("  ", "config.toml")
	if err != nil {
		t.Fatalf("editor command: %v", err)
	}
	if cmd.Args[0] != "vi" {
		t.Fatalf("expected vi fallback, got %v", cmd.Args)
	}
}
