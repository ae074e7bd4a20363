// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Operator is an arithmetic operation a question can use.
type Operator int

// Supported operators.
const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
)

// AllOperators lists every operator in canonical order.
var AllOperators = []Operator{OpAdd, OpSub, OpMul, OpDiv}

// String returns the short operator name used in flags and config.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Symbol returns the operator as rendered in question text.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "x"
	case OpDiv:
		return "÷"
	default:
		return "?"
	}
}

// ParseOperator maps a short operator name to an Operator.
func ParseOperator(name string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "add", "+":
		return OpAdd, nil
	case "sub", "-":
		return OpSub, nil
	case "mul", "x", "*":
		return OpMul, nil
	case "div", "/", "÷":
		return OpDiv, nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrConfiguration, name)
	}
}

// ParseOperators parses a list of operator names, dropping duplicates.
func ParseOperators(names []string) ([]Operator, error) {
	ops := make([]Operator, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		op, err := ParseOperator(name)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return normalizeOperators(ops), nil
}

func normalizeOperators(ops []Operator) []Operator {
	seen := make(map[Operator]bool, len(ops))
	out := make([]Operator, 0, len(ops))
	for _, op := range AllOperators {
		for _, candidate := range ops {
			if candidate == op && !seen[op] {
				seen[op] = true
				out = append(out, op)
			}
		}
	}
	return out
}

// Difficulty is a named preset of operand bounds.
type Difficulty int

// Difficulty presets.
const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the preset name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty maps a preset name to a Difficulty.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy", "":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("%w: unknown difficulty %q", ErrConfiguration, name)
	}
}

// DifficultyConfig holds everything needed to generate and time a round.
type DifficultyConfig struct {
	Difficulty   Difficulty
	MinDigits    int
	MaxDigits    int
	MaxMultiple  int
	Operators    []Operator
	WrongAnswers int
	Questions    int
	TimeLimit    time.Duration
}

// Question is a single generated arithmetic problem.
type Question struct {
	Operator     Operator
	Left         int
	Right        int
	Text         string
	Answer       int
	WrongAnswers []int
}

// AnswerText returns the decimal rendering the player has to type.
func (q Question) AnswerText() string {
	return fmt.Sprintf("%d", q.Answer)
}

// Outcome is the terminal result of a round.
type Outcome int

// Round outcomes.
const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	default:
		return "none"
	}
}

// TimerBand classifies the remaining time for display.
type TimerBand int

// Timer bands.
const (
	BandNormal TimerBand = iota
	BandWarning
	BandCritical
)

// String returns the band name.
func (b TimerBand) String() string {
	switch b {
	case BandWarning:
		return "warning"
	case BandCritical:
		return "critical"
	default:
		return "normal"
	}
}

// BandFor classifies remaining time against the round limit.
// Above half is normal, above a quarter is warning, the rest is critical.
func BandFor(remaining, limit time.Duration) TimerBand {
	if limit <= 0 {
		return BandCritical
	}
	ratio := float64(remaining) / float64(limit)
	switch {
	case ratio > 0.5:
		return BandNormal
	case ratio > 0.25:
		return BandWarning
	default:
		return BandCritical
	}
}

// Cue identifies a sound effect.
type Cue int

// Sound cues.
const (
	CueCorrect Cue = iota
	CueIncorrect
	CueLose
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueCorrect:
		return "correct"
	case CueIncorrect:
		return "incorrect"
	case CueLose:
		return "lose"
	default:
		return fmt.Sprintf("cue(%d)", int(c))
	}
}

// FeedbackColor is the color of the answer feedback area.
type FeedbackColor int

// Feedback colors.
const (
	FeedbackNone FeedbackColor = iota
	FeedbackCorrect
	FeedbackIncorrect
)

// FadeTarget names a UI element that can be faded.
type FadeTarget int

// Fade targets.
const (
	FadeFeedback FadeTarget = iota
	FadeAnswerText
)

// FadeDirection is the direction of a fade.
type FadeDirection int

// Fade directions.
const (
	FadeIn FadeDirection = iota
	FadeOut
)
