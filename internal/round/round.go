// Package round runs a single quiz round: timer, answer input and win/loss.
package round

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuimath/internal/model"
)

var (
	// ErrInvalidState is returned for operations outside their valid state.
	ErrInvalidState = errors.New("invalid round state")
	// ErrInvalidDigit is returned for input outside 0-9.
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrInvalidDelta is returned when the countdown is asked to run backwards.
	ErrInvalidDelta = errors.New("invalid tick delta")
)

const (
	// AnswerDelay is the pause after a judged answer.
	AnswerDelay = 500 * time.Millisecond
	// FeedbackFade is how long answer feedback takes to fade out.
	FeedbackFade = 500 * time.Millisecond
)

// Presenter renders round state. Calls happen on the goroutine driving the controller.
type Presenter interface {
	RenderQuestionText(text string)
	RenderAnswerBuffer(text string)
	PlaySound(cue model.Cue)
	SetFeedbackColor(color model.FeedbackColor)
	RequestFade(target model.FadeTarget, direction model.FadeDirection, duration time.Duration)
	UpdateScoreLabel(answered, total int)
	ShowFinishScreen(outcome model.Outcome, detail string)
	SetTimerDisplay(remaining time.Duration, band model.TimerBand)
	EnableInputButtons(enabled bool)
}

// Scheduler runs fn once after d on the goroutine driving the controller.
// The returned func cancels fn if it has not run yet.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Controller is the state machine of one round. It is not safe for
// concurrent use; callers serialize Tick and input calls.
type Controller struct {
	id        string
	cfg       model.DifficultyConfig
	questions []model.Question
	view      Presenter
	sched     Scheduler
	log       zerolog.Logger

	index     int
	input     []byte
	remaining time.Duration
	outcome   model.Outcome

	started     bool
	timerOn     bool
	paused      bool
	pauseSeq    int
	cancelPause func()
	closed      bool
}

// New returns an active controller over questions.
func New(cfg model.DifficultyConfig, questions []model.Question, view Presenter, sched Scheduler, log zerolog.Logger) (*Controller, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: round has no questions", model.ErrConfiguration)
	}
	if cfg.TimeLimit <= 0 {
		return nil, fmt.Errorf("%w: time limit must be > 0", model.ErrConfiguration)
	}
	if view == nil || sched == nil {
		return nil, fmt.Errorf("%w: presenter and scheduler are required", model.ErrConfiguration)
	}
	id := uuid.NewString()
	return &Controller{
		id:        id,
		cfg:       cfg,
		questions: append([]model.Question(nil), questions...),
		view:      view,
		sched:     sched,
		log:       log.With().Str("round", id).Logger(),
		remaining: cfg.TimeLimit,
		timerOn:   true,
	}, nil
}

// Start paints the initial round state. It may only be called once, before
// any input.
func (c *Controller) Start() error {
	if err := c.requireActive("start"); err != nil {
		return err
	}
	if c.started {
		return c.invalid("start", "round already started")
	}
	c.started = true
	c.view.RenderQuestionText(c.questions[c.index].Text)
	c.view.RenderAnswerBuffer("")
	c.view.UpdateScoreLabel(c.index, len(c.questions))
	c.view.SetTimerDisplay(c.remaining, model.BandFor(c.remaining, c.cfg.TimeLimit))
	c.view.EnableInputButtons(true)
	c.log.Info().
		Int("questions", len(c.questions)).
		Dur("limit", c.cfg.TimeLimit).
		Str("difficulty", c.cfg.Difficulty.String()).
		Msg("round started")
	return nil
}

// Tick advances the countdown by delta. A zero delta is a no-op.
func (c *Controller) Tick(delta time.Duration) error {
	if err := c.requireActive("tick"); err != nil {
		return err
	}
	if delta < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDelta, delta)
	}
	if delta == 0 || !c.timerOn {
		return nil
	}
	c.remaining -= delta
	if c.remaining <= 0 {
		c.remaining = 0
		c.lose()
		return nil
	}
	c.view.SetTimerDisplay(c.remaining, model.BandFor(c.remaining, c.cfg.TimeLimit))
	return nil
}

// AppendDigit adds d to the answer and judges it once it is as long as the answer.
func (c *Controller) AppendDigit(d int) error {
	if err := c.requireInput("append digit"); err != nil {
		return err
	}
	if d < 0 || d > 9 {
		return fmt.Errorf("%w: %d", ErrInvalidDigit, d)
	}
	c.input = append(c.input, byte('0'+d))
	c.view.RenderAnswerBuffer(string(c.input))
	if len(c.input) == len(c.questions[c.index].AnswerText()) {
		return c.Judge()
	}
	return nil
}

// Judge compares the answer buffer to the current question.
func (c *Controller) Judge() error {
	if err := c.requireInput("judge"); err != nil {
		return err
	}
	q := c.questions[c.index]
	if string(c.input) == q.AnswerText() {
		c.correct()
		return nil
	}
	c.wrong(q)
	return nil
}

// ClearInput empties the answer buffer. Like digit input it is rejected
// with ErrInvalidState during the pause after an answer, while input is locked.
func (c *Controller) ClearInput() error {
	if err := c.requireInput("clear input"); err != nil {
		return err
	}
	c.clearBuffer()
	return nil
}

// Close leaves the round. Pending pauses are cancelled and nothing else is rendered.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.timerOn = false
	c.stopPause()
	c.log.Debug().Int("index", c.index).Str("outcome", c.outcome.String()).Msg("round closed")
}

func (c *Controller) correct() {
	c.view.PlaySound(model.CueCorrect)
	c.index++
	c.view.UpdateScoreLabel(c.index, len(c.questions))
	if c.index == len(c.questions) {
		c.win()
		return
	}
	c.log.Debug().Int("index", c.index).Msg("correct answer")
	c.timerOn = false
	c.beginPause(model.FeedbackCorrect, func() {
		c.view.RenderQuestionText(c.questions[c.index].Text)
		c.timerOn = true
	})
}

func (c *Controller) wrong(q model.Question) {
	c.log.Debug().Int("index", c.index).Str("question", q.Text).Str("input", string(c.input)).Msg("wrong answer")
	c.view.PlaySound(model.CueIncorrect)
	c.beginPause(model.FeedbackIncorrect, nil)
}

// beginPause locks input, shows feedback and schedules the unlock.
func (c *Controller) beginPause(color model.FeedbackColor, then func()) {
	c.view.EnableInputButtons(false)
	c.view.SetFeedbackColor(color)
	c.view.RequestFade(model.FadeFeedback, model.FadeOut, FeedbackFade)
	c.view.RequestFade(model.FadeAnswerText, model.FadeOut, FeedbackFade)
	c.paused = true
	c.pauseSeq++
	seq := c.pauseSeq
	cancel := c.sched.After(AnswerDelay, func() {
		if !c.paused || seq != c.pauseSeq {
			return
		}
		c.paused = false
		c.cancelPause = nil
		if then != nil {
			then()
		}
		c.clearBuffer()
		c.view.EnableInputButtons(true)
	})
	if c.paused && seq == c.pauseSeq {
		c.cancelPause = cancel
	}
}

func (c *Controller) win() {
	c.outcome = model.OutcomeWin
	c.timerOn = false
	c.stopPause()
	c.view.EnableInputButtons(false)
	c.view.SetFeedbackColor(model.FeedbackCorrect)
	c.view.RequestFade(model.FadeFeedback, model.FadeOut, FeedbackFade)
	c.view.ShowFinishScreen(model.OutcomeWin, c.Bonus())
	c.log.Info().Dur("remaining", c.remaining).Msg("round won")
}

func (c *Controller) lose() {
	c.outcome = model.OutcomeLose
	c.timerOn = false
	c.stopPause()
	c.view.SetTimerDisplay(0, model.BandCritical)
	c.view.EnableInputButtons(false)
	c.view.PlaySound(model.CueLose)
	c.view.ShowFinishScreen(model.OutcomeLose, "")
	c.log.Info().Int("answered", c.index).Int("questions", len(c.questions)).Msg("round lost")
}

func (c *Controller) clearBuffer() {
	c.input = c.input[:0]
	c.view.RenderAnswerBuffer("")
}

func (c *Controller) stopPause() {
	c.paused = false
	if c.cancelPause != nil {
		c.cancelPause()
		c.cancelPause = nil
	}
}

func (c *Controller) requireActive(op string) error {
	if c.closed {
		return c.invalid(op, "round closed")
	}
	if c.outcome != model.OutcomeNone {
		return c.invalid(op, "round finished: "+c.outcome.String())
	}
	return nil
}

func (c *Controller) requireInput(op string) error {
	if err := c.requireActive(op); err != nil {
		return err
	}
	if c.paused {
		return c.invalid(op, "input locked during answer pause")
	}
	return nil
}

func (c *Controller) invalid(op, reason string) error {
	c.log.Debug().Str("op", op).Str("reason", reason).Msg("ignored")
	return fmt.Errorf("%w: %s: %s", ErrInvalidState, op, reason)
}

// ID identifies the round in logs.
func (c *Controller) ID() string { return c.id }

// Index is the 0-based index of the current question.
func (c *Controller) Index() int { return c.index }

// QuestionCount is the number of questions in the round.
func (c *Controller) QuestionCount() int { return len(c.questions) }

// Outcome is the terminal result, or OutcomeNone while active.
func (c *Controller) Outcome() model.Outcome { return c.outcome }

// Remaining is the time left on the countdown.
func (c *Controller) Remaining() time.Duration { return c.remaining }

// Input is the current answer buffer.
func (c *Controller) Input() string { return string(c.input) }

// Paused reports whether a post-answer pause is pending.
func (c *Controller) Paused() bool { return c.paused }

// Current returns the question being answered. It is only meaningful while active.
func (c *Controller) Current() model.Question {
	if c.index >= len(c.questions) {
		return c.questions[len(c.questions)-1]
	}
	return c.questions[c.index]
}

// Bonus formats the remaining time for the win screen.
func (c *Controller) Bonus() string {
	return "With " + strconv.FormatFloat(c.remaining.Seconds(), 'f', 2, 64) + "s left"
}
