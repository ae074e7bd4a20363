package preset

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuimath/internal/model"
)

func TestBuildDerivesTimeLimit(t *testing.T) {
	cases := []struct {
		difficulty model.Difficulty
		digits     int
		multiple   int
		limit      time.Duration
	}{
		{model.Easy, 1, 12, 10 * time.Second},
		{model.Medium, 2, 15, 20 * time.Second},
		{model.Hard, 3, 20, 35 * time.Second},
	}
	for _, tc := range cases {
		cfg, err := Build(Options{Difficulty: tc.difficulty, Operators: []model.Operator{model.OpAdd}, Questions: 5})
		if err != nil {
			t.Fatalf("build %s: %v", tc.difficulty, err)
		}
		if cfg.MaxDigits != tc.digits || cfg.MaxMultiple != tc.multiple {
			t.Fatalf("%s: unexpected bounds %d/%d", tc.difficulty, cfg.MaxDigits, cfg.MaxMultiple)
		}
		if cfg.TimeLimit != tc.limit {
			t.Fatalf("%s: expected limit %s, got %s", tc.difficulty, tc.limit, cfg.TimeLimit)
		}
		if cfg.WrongAnswers != DefaultWrongAnswers || cfg.MinDigits != 1 {
			t.Fatalf("%s: unexpected defaults %+v", tc.difficulty, cfg)
		}
	}
}

func TestBuildOverrides(t *testing.T) {
	cfg, err := Build(Options{
		Difficulty:  model.Easy,
		Operators:   []model.Operator{model.OpMul},
		Questions:   3,
		TimeLimit:   42 * time.Second,
		MaxDigits:   2,
		MaxMultiple: 9,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg.TimeLimit != 42*time.Second || cfg.MaxDigits != 2 || cfg.MaxMultiple != 9 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestBuildRejectsInvalidSetup(t *testing.T) {
	if _, err := Build(Options{Difficulty: model.Easy, Questions: 5}); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty operators, got %v", err)
	}
	_, err := Build(Options{Difficulty: model.Easy, Operators: []model.Operator{model.OpDiv}, Questions: 5, MaxMultiple: -4})
	if !errors.Is(err, model.ErrArithmeticRange) {
		t.Fatalf("expected range error, got %v", err)
	}
	if _, err := Build(Options{Difficulty: model.Difficulty(7), Operators: []model.Operator{model.OpAdd}, Questions: 5}); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("expected configuration error for unknown difficulty, got %v", err)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Name", "Value"}
	rows := [][]string{
		{"a", "12"},
		{"longer", "3"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Name    Value" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a          12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "longer      3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTable(&buf, 5); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Difficulty", "easy", "medium", "hard", "35s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}
