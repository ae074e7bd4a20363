package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports an invalid difficulty or operator setup.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrArithmeticRange reports numeric bounds that leave nothing to draw from.
	ErrArithmeticRange = errors.New("degenerate arithmetic range")
)

// Offsets for distractors are drawn from [-DistractorSpread, DistractorSpread).
const DistractorSpread = 15

// MaxWrongAnswers is the largest distractor count the offset window can always satisfy.
const MaxWrongAnswers = 2*DistractorSpread - 2

const (
	maxDigitsLimit = 9
	maxQuestions   = 100
)

// Validate checks the config before a round starts.
func (c DifficultyConfig) Validate() error {
	if len(c.Operators) == 0 {
		return fmt.Errorf("%w: at least one operator must be enabled", ErrConfiguration)
	}
	for _, op := range c.Operators {
		if op < OpAdd || op > OpDiv {
			return fmt.Errorf("%w: unknown operator %d", ErrConfiguration, int(op))
		}
	}
	if c.Questions < 1 || c.Questions > maxQuestions {
		return fmt.Errorf("%w: number of questions must be between 1 and %d", ErrConfiguration, maxQuestions)
	}
	if c.WrongAnswers < 1 || c.WrongAnswers > MaxWrongAnswers {
		return fmt.Errorf("%w: number of wrong answers must be between 1 and %d", ErrConfiguration, MaxWrongAnswers)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be > 0", ErrConfiguration)
	}
	if c.MaxMultiple < 3 {
		return fmt.Errorf("%w: max multiple must be >= 3, got %d", ErrArithmeticRange, c.MaxMultiple)
	}
	if c.MinDigits < 1 {
		return fmt.Errorf("%w: min digits must be >= 1, got %d", ErrArithmeticRange, c.MinDigits)
	}
	if c.MaxDigits < c.MinDigits || c.MaxDigits > maxDigitsLimit {
		return fmt.Errorf("%w: max digits must be between %d and %d, got %d", ErrArithmeticRange, c.MinDigits, maxDigitsLimit, c.MaxDigits)
	}
	return nil
}

// HasOperator reports whether op is enabled.
func (c DifficultyConfig) HasOperator(op Operator) bool {
	for _, enabled := range c.Operators {
		if enabled == op {
			return true
		}
	}
	return false
}
