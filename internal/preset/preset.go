// Package preset maps difficulty names to operand bounds and time limits.
package preset

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/tuimath/internal/model"
)

// DefaultWrongAnswers is the number of distractors per question.
const DefaultWrongAnswers = 3

// Preset describes the bounds behind a difficulty name.
type Preset struct {
	Difficulty  model.Difficulty
	MaxDigits   int
	MaxMultiple int
	// PerQuestion is the time budget each question adds to the round.
	PerQuestion time.Duration
	Note        string
}

var presets = []Preset{
	{Difficulty: model.Easy, MaxDigits: 1, MaxMultiple: 12, PerQuestion: 2 * time.Second, Note: "single digits, up to 12 x 12"},
	{Difficulty: model.Medium, MaxDigits: 2, MaxMultiple: 15, PerQuestion: 4 * time.Second, Note: "double digits, up to 15 x 15"},
	{Difficulty: model.Hard, MaxDigits: 3, MaxMultiple: 20, PerQuestion: 7 * time.Second, Note: "triple digits, up to 20 x 20"},
}

// All returns every preset in increasing difficulty.
func All() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// For returns the preset for a difficulty.
func For(d model.Difficulty) (Preset, error) {
	for _, p := range presets {
		if p.Difficulty == d {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: unknown difficulty %s", model.ErrConfiguration, d)
}

// Options are the user-selectable parts of a round setup.
// Zero values fall back to the preset.
type Options struct {
	Difficulty  model.Difficulty
	Operators   []model.Operator
	Questions   int
	TimeLimit   time.Duration
	MaxDigits   int
	MaxMultiple int
}

// Build turns options into a validated DifficultyConfig.
func Build(opts Options) (model.DifficultyConfig, error) {
	p, err := For(opts.Difficulty)
	if err != nil {
		return model.DifficultyConfig{}, err
	}
	cfg := model.DifficultyConfig{
		Difficulty:   p.Difficulty,
		MinDigits:    1,
		MaxDigits:    p.MaxDigits,
		MaxMultiple:  p.MaxMultiple,
		Operators:    append([]model.Operator(nil), opts.Operators...),
		WrongAnswers: DefaultWrongAnswers,
		Questions:    opts.Questions,
	}
	if opts.MaxDigits != 0 {
		cfg.MaxDigits = opts.MaxDigits
	}
	if opts.MaxMultiple != 0 {
		cfg.MaxMultiple = opts.MaxMultiple
	}
	cfg.TimeLimit = opts.TimeLimit
	if cfg.TimeLimit == 0 {
		cfg.TimeLimit = time.Duration(cfg.Questions) * p.PerQuestion
	}
	if err := cfg.Validate(); err != nil {
		return model.DifficultyConfig{}, err
	}
	return cfg, nil
}

// RenderTable prints the preset table.
func RenderTable(w io.Writer, questions int) error {
	headers := []string{"Difficulty", "Digits", "Max multiple", "Per question", "Time limit", "Notes"}
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{
			p.Difficulty.String(),
			fmt.Sprintf("%d", p.MaxDigits),
			fmt.Sprintf("%d", p.MaxMultiple),
			fmt.Sprintf("%.0fs", p.PerQuestion.Seconds()),
			fmt.Sprintf("%.0fs", (time.Duration(questions) * p.PerQuestion).Seconds()),
			p.Note,
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
