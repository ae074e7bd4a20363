// Package generator builds arithmetic questions and their distractors.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuimath/internal/model"
)

// maxAttempts bounds regeneration when a question repeats the previous one.
const maxAttempts = 1000

// ErrRetriesExhausted means the operand space cannot avoid a repeated question.
var ErrRetriesExhausted = fmt.Errorf("%w: duplicate question retries exhausted", model.ErrConfiguration)

// Generator produces randomized arithmetic questions.
type Generator struct {
	rnd     *rand.Rand
	log     zerolog.Logger
	retries int
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed)), log: zerolog.Nop()}
}

// WithLogger sets the logger used for regeneration notices.
func (g *Generator) WithLogger(log zerolog.Logger) *Generator {
	g.log = log
	return g
}

// Retries returns how many questions were discarded as repeats so far.
func (g *Generator) Retries() int {
	return g.retries
}

// Generate builds one question. A question whose text equals prev is
// discarded and drawn again.
func (g *Generator) Generate(cfg model.DifficultyConfig, prev string) (model.Question, error) {
	if err := cfg.Validate(); err != nil {
		return model.Question{}, err
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		q := g.draw(cfg)
		if prev == "" || q.Text != prev {
			return q, nil
		}
		g.retries++
		g.log.Debug().Str("question", q.Text).Int("attempt", attempt+1).Msg("duplicate question, creating a replacement")
	}
	return model.Question{}, fmt.Errorf("%w after %d attempts (previous %q)", ErrRetriesExhausted, maxAttempts, prev)
}

// GenerateSequence builds the full question list for a round.
func (g *Generator) GenerateSequence(cfg model.DifficultyConfig) ([]model.Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	questions := make([]model.Question, 0, cfg.Questions)
	prev := ""
	for i := 0; i < cfg.Questions; i++ {
		q, err := g.Generate(cfg, prev)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q)
		prev = q.Text
	}
	return questions, nil
}

func (g *Generator) draw(cfg model.DifficultyConfig) model.Question {
	op := cfg.Operators[g.rnd.Intn(len(cfg.Operators))]
	var q model.Question
	switch op {
	case model.OpDiv:
		// The product is rendered first so the quotient is always exact.
		factor := g.between(2, cfg.MaxMultiple)
		quotient := g.between(2, cfg.MaxMultiple)
		q = model.Question{Left: factor * quotient, Right: factor, Answer: quotient}
	case model.OpMul:
		a, b := largerFirst(g.between(2, cfg.MaxMultiple), g.between(2, cfg.MaxMultiple))
		q = model.Question{Left: a, Right: b, Answer: a * b}
	case model.OpAdd:
		lo, hi := termBounds(cfg)
		a, b := largerFirst(g.between(lo, hi+1), g.between(lo, hi+1))
		q = model.Question{Left: a, Right: b, Answer: a + b}
	case model.OpSub:
		lo, hi := termBounds(cfg)
		a, b := largerFirst(g.between(lo, hi+1), g.between(lo, hi+1))
		q = model.Question{Left: a, Right: b, Answer: a - b}
	}
	q.Operator = op
	q.Text = fmt.Sprintf("%d %s %d", q.Left, op.Symbol(), q.Right)
	q.WrongAnswers = g.distractors(q.Answer, cfg.WrongAnswers)
	return q
}

// distractors draws count distinct wrong answers near answer, never zero.
func (g *Generator) distractors(answer, count int) []int {
	out := make([]int, 0, count)
	seen := map[int]struct{}{answer: {}, 0: {}}
	for len(out) < count {
		candidate := answer + g.between(-model.DistractorSpread, model.DistractorSpread)
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

// between returns a value in [lo, hi).
func (g *Generator) between(lo, hi int) int {
	return lo + g.rnd.Intn(hi-lo)
}

// termBounds returns the inclusive range for add/sub terms.
func termBounds(cfg model.DifficultyConfig) (int, int) {
	return pow10(cfg.MinDigits - 1), pow10(cfg.MaxDigits) - 1
}

func pow10(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

func largerFirst(a, b int) (int, int) {
	if a < b {
		return b, a
	}
	return a, b
}
