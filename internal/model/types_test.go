package model

import (
	"errors"
	"testing"
	"time"
)

func validConfig() DifficultyConfig {
	return DifficultyConfig{
		Difficulty:   Easy,
		MinDigits:    1,
		MaxDigits:    1,
		MaxMultiple:  12,
		Operators:    []Operator{OpAdd},
		WrongAnswers: 3,
		Questions:    5,
		TimeLimit:    10 * time.Second,
	}
}

func TestValidateAcceptsPreset(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*DifficultyConfig)
		want   error
	}{
		{"no operators", func(c *DifficultyConfig) { c.Operators = nil }, ErrConfiguration},
		{"unknown operator", func(c *DifficultyConfig) { c.Operators = []Operator{Operator(9)} }, ErrConfiguration},
		{"no questions", func(c *DifficultyConfig) { c.Questions = 0 }, ErrConfiguration},
		{"too many wrong answers", func(c *DifficultyConfig) { c.WrongAnswers = MaxWrongAnswers + 1 }, ErrConfiguration},
		{"zero time limit", func(c *DifficultyConfig) { c.TimeLimit = 0 }, ErrConfiguration},
		{"zero max multiple", func(c *DifficultyConfig) { c.MaxMultiple = 0 }, ErrArithmeticRange},
		{"empty multiple range", func(c *DifficultyConfig) { c.MaxMultiple = 2 }, ErrArithmeticRange},
		{"zero min digits", func(c *DifficultyConfig) { c.MinDigits = 0 }, ErrArithmeticRange},
		{"negative max digits", func(c *DifficultyConfig) { c.MaxDigits = -1 }, ErrArithmeticRange},
		{"huge digits", func(c *DifficultyConfig) { c.MaxDigits = 12 }, ErrArithmeticRange},
	}
	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestParseOperatorsDedupsInCanonicalOrder(t *testing.T) {
	ops, err := ParseOperators([]string{"div", " add", "div", "", "x"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Operator{OpAdd, OpMul, OpDiv}
	if len(ops) != len(want) {
		t.Fatalf("expected %v, got %v", want, ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ops)
		}
	}
	if _, err := ParseOperators([]string{"pow"}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("HARD")
	if err != nil || d != Hard {
		t.Fatalf("expected hard, got %v (%v)", d, err)
	}
	if _, err := ParseDifficulty("nightmare"); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestBandFor(t *testing.T) {
	limit := 10 * time.Second
	cases := []struct {
		remaining time.Duration
		want      TimerBand
	}{
		{10 * time.Second, BandNormal},
		{5001 * time.Millisecond, BandNormal},
		{5 * time.Second, BandWarning},
		{2501 * time.Millisecond, BandWarning},
		{2500 * time.Millisecond, BandCritical},
		{100 * time.Millisecond, BandCritical},
	}
	for _, tc := range cases {
		if got := BandFor(tc.remaining, limit); got != tc.want {
			t.Fatalf("remaining %s: expected %s, got %s", tc.remaining, tc.want, got)
		}
	}
}

func TestAnswerText(t *testing.T) {
	q := Question{Answer: 144}
	if q.AnswerText() != "144" {
		t.Fatalf("unexpected answer text %q", q.AnswerText())
	}
}
