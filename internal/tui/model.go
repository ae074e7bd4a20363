// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuimath/internal/generator"
	"github.com/verte-zerg/tuimath/internal/model"
	"github.com/verte-zerg/tuimath/internal/round"
)

const frameInterval = 50 * time.Millisecond

// frameMsg drives the countdown and fades.
type frameMsg time.Time

// fade tracks the opacity of one element.
type fade struct {
	alpha     float64
	direction model.FadeDirection
	duration  time.Duration
}

func (f *fade) advance(delta time.Duration) {
	if f.duration <= 0 {
		return
	}
	step := float64(delta) / float64(f.duration)
	if f.direction == model.FadeOut {
		f.alpha -= step
	} else {
		f.alpha += step
	}
	if f.alpha < 0 {
		f.alpha = 0
	}
	if f.alpha > 1 {
		f.alpha = 1
	}
}

type finishScreen struct {
	outcome model.Outcome
	detail  string
	fade    fade
}

// Model implements the Bubble Tea quiz UI and the round's presenter.
type Model struct {
	cfg   model.DifficultyConfig
	gen   *generator.Generator
	log   zerolog.Logger
	ctrl  *round.Controller
	sched *scheduler
	keys  keyMap
	help  help.Model

	sound bool
	bell  io.Writer

	width     int
	height    int
	lastFrame time.Time
	rounds    int

	questionText  string
	answerText    string
	answered      int
	total         int
	remaining     time.Duration
	band          model.TimerBand
	inputEnabled  bool
	feedbackColor model.FeedbackColor
	fades         map[model.FadeTarget]*fade
	finish        *finishScreen
}

// NewModel constructs the quiz UI and starts the first round.
func NewModel(cfg model.DifficultyConfig, gen *generator.Generator, log zerolog.Logger, sound bool, bell io.Writer) (*Model, error) {
	if bell == nil {
		bell = io.Discard
	}
	m := &Model{
		cfg:   cfg,
		gen:   gen,
		log:   log,
		sched: newScheduler(),
		keys:  newKeyMap(),
		help:  help.New(),
		sound: sound,
		bell:  bell,
	}
	if err := m.startRound(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.sched.drain(), nextFrame())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		m.handleFrame(time.Time(msg))
		return m, tea.Batch(m.sched.drain(), nextFrame())
	case pauseDoneMsg:
		m.sched.fire(msg.id)
		return m, m.sched.drain()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) handleFrame(now time.Time) {
	if m.lastFrame.IsZero() {
		m.lastFrame = now
		return
	}
	delta := now.Sub(m.lastFrame)
	m.lastFrame = now
	if delta <= 0 {
		return
	}
	if m.ctrl.Outcome() == model.OutcomeNone {
		m.report(m.ctrl.Tick(delta))
	}
	for _, f := range m.fades {
		f.advance(delta)
	}
	if m.finish != nil {
		m.finish.fade.advance(delta)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Mute):
		m.sound = !m.sound
		m.log.Debug().Bool("sound", m.sound).Msg("sound toggled")
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if err := m.restart(); err != nil {
			m.log.Error().Err(err).Msg("failed to restart round")
			return m, tea.Quit
		}
		return m, m.sched.drain()
	}
	if !m.inputEnabled {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Digit):
		m.report(m.ctrl.AppendDigit(int(msg.String()[0] - '0')))
	case key.Matches(msg, m.keys.Clear):
		m.report(m.ctrl.ClearInput())
	case key.Matches(msg, m.keys.Submit):
		m.report(m.ctrl.Judge())
	}
	return m, m.sched.drain()
}

func (m *Model) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, round.ErrInvalidState) || errors.Is(err, round.ErrInvalidDigit) {
		return
	}
	m.log.Warn().Err(err).Msg("round operation failed")
}

// startRound generates fresh questions and hands them to a new controller.
func (m *Model) startRound() error {
	questions, err := m.gen.GenerateSequence(m.cfg)
	if err != nil {
		return fmt.Errorf("failed to generate questions: %w", err)
	}
	ctrl, err := round.New(m.cfg, questions, m, m.sched, m.log)
	if err != nil {
		return err
	}
	m.ctrl = ctrl
	m.rounds++
	m.finish = nil
	m.feedbackColor = model.FeedbackNone
	m.fades = map[model.FadeTarget]*fade{}
	m.keys.Restart.SetEnabled(false)
	return ctrl.Start()
}

// restart abandons the current round and starts another with the same setup.
func (m *Model) restart() error {
	m.ctrl.Close()
	return m.startRound()
}

// RenderQuestionText implements round.Presenter.
func (m *Model) RenderQuestionText(text string) {
	m.questionText = text
}

// RenderAnswerBuffer implements round.Presenter.
func (m *Model) RenderAnswerBuffer(text string) {
	m.answerText = text
	delete(m.fades, model.FadeAnswerText)
}

// PlaySound implements round.Presenter. The terminal bell is the only sound device.
func (m *Model) PlaySound(cue model.Cue) {
	if !m.sound {
		return
	}
	if _, err := io.WriteString(m.bell, "\a"); err != nil {
		m.log.Debug().Err(err).Str("cue", cue.String()).Msg("failed to ring bell")
	}
}

// SetFeedbackColor implements round.Presenter.
func (m *Model) SetFeedbackColor(color model.FeedbackColor) {
	m.feedbackColor = color
}

// RequestFade implements round.Presenter.
func (m *Model) RequestFade(target model.FadeTarget, direction model.FadeDirection, duration time.Duration) {
	f := &fade{alpha: 1, direction: direction, duration: duration}
	if direction == model.FadeIn {
		f.alpha = 0
	}
	m.fades[target] = f
}

// UpdateScoreLabel implements round.Presenter.
func (m *Model) UpdateScoreLabel(answered, total int) {
	m.answered = answered
	m.total = total
}

// ShowFinishScreen implements round.Presenter.
func (m *Model) ShowFinishScreen(outcome model.Outcome, detail string) {
	m.finish = &finishScreen{
		outcome: outcome,
		detail:  detail,
		fade:    fade{direction: model.FadeIn, duration: time.Second},
	}
	m.keys.Restart.SetEnabled(true)
}

// SetTimerDisplay implements round.Presenter.
func (m *Model) SetTimerDisplay(remaining time.Duration, band model.TimerBand) {
	m.remaining = remaining
	m.band = band
}

// EnableInputButtons implements round.Presenter.
func (m *Model) EnableInputButtons(enabled bool) {
	m.inputEnabled = enabled
}
