package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuimath/internal/model"
)

const (
	timerBarWidth     = 30
	answerPlaceholder = 6
	fadeBackground    = "#2A2A2A"
	colorCorrect      = "#52C41A"
	colorIncorrect    = "#FF4D4F"
	colorWarning      = "#FADB14"
	colorText         = "#F0F0F0"
)

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)).Bold(true).Padding(0, 2)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	finishStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			Padding(1, 4).
			Align(lipgloss.Center)
)

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderRound()
	if m.finish != nil {
		content = m.renderFinish()
	}
	footer := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderRound() string {
	lines := []string{
		m.renderHeader(),
		m.renderTimerBar(),
		"",
		questionStyle.Render(m.fitWidth(m.questionText)),
		"",
		m.renderAnswer(),
		m.renderFeedback(),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderHeader() string {
	sound := "sound on"
	if !m.sound {
		sound = "muted"
	}
	header := fmt.Sprintf("Round %d  ·  %s  ·  Question %d/%d  ·  %.0fs  ·  %s",
		m.rounds, m.cfg.Difficulty, m.currentQuestionNumber(), m.total, m.remaining.Seconds(), sound)
	return headerStyle.Render(m.fitWidth(header))
}

func (m *Model) currentQuestionNumber() int {
	if m.answered >= m.total {
		return m.total
	}
	return m.answered + 1
}

func (m *Model) renderTimerBar() string {
	ratio := 0.0
	if m.cfg.TimeLimit > 0 {
		ratio = float64(m.remaining) / float64(m.cfg.TimeLimit)
	}
	filled := int(ratio*timerBarWidth + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > timerBarWidth {
		filled = timerBarWidth
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(bandColor(m.band))).Render(strings.Repeat("█", filled))
	rest := mutedStyle.Render(strings.Repeat("░", timerBarWidth-filled))
	return bar + rest
}

func (m *Model) renderAnswer() string {
	text := padAnswer(m.answerText)
	alpha := 1.0
	hex := colorText
	if f, ok := m.fades[model.FadeAnswerText]; ok {
		alpha = f.alpha
		hex = feedbackHex(m.feedbackColor)
	}
	return lipgloss.NewStyle().Foreground(blend(hex, alpha)).Render(text)
}

func (m *Model) renderFeedback() string {
	f, ok := m.fades[model.FadeFeedback]
	if !ok || f.alpha <= 0 {
		return ""
	}
	label := "Correct!"
	if m.feedbackColor == model.FeedbackIncorrect {
		label = "Try again"
	}
	return lipgloss.NewStyle().Foreground(blend(feedbackHex(m.feedbackColor), f.alpha)).Render(label)
}

func (m *Model) renderFinish() string {
	title := "Game Over"
	hex := colorIncorrect
	if m.finish.outcome == model.OutcomeWin {
		title = "You Won"
		hex = colorCorrect
	}
	color := blend(hex, m.finish.fade.alpha)
	lines := []string{lipgloss.NewStyle().Foreground(color).Bold(true).Render(title)}
	if m.finish.detail != "" {
		lines = append(lines, m.finish.detail)
	}
	lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("%d/%d answered", m.answered, m.total)))
	return finishStyle.BorderForeground(color).Render(strings.Join(lines, "\n"))
}

// fitWidth truncates text that would not fit the terminal.
func (m *Model) fitWidth(text string) string {
	if m.width <= 0 || runewidth.StringWidth(text) <= m.width {
		return text
	}
	return runewidth.Truncate(text, m.width, "…")
}

// padAnswer fills the answer slot with underscores up to the placeholder width.
func padAnswer(text string) string {
	missing := answerPlaceholder - runewidth.StringWidth(text)
	if missing <= 0 {
		return text
	}
	return text + strings.Repeat("_", missing)
}

func bandColor(band model.TimerBand) string {
	switch band {
	case model.BandWarning:
		return colorWarning
	case model.BandCritical:
		return colorIncorrect
	default:
		return colorCorrect
	}
}

func feedbackHex(color model.FeedbackColor) string {
	switch color {
	case model.FeedbackCorrect:
		return colorCorrect
	case model.FeedbackIncorrect:
		return colorIncorrect
	default:
		return colorText
	}
}

// blend mixes hex toward the fade background; alpha 1 is the full color.
// Colors that do not parse are returned unblended.
func blend(hex string, alpha float64) lipgloss.Color {
	if alpha >= 1 {
		return lipgloss.Color(hex)
	}
	if alpha < 0 {
		alpha = 0
	}
	bg, err := colorful.Hex(fadeBackground)
	if err != nil {
		return lipgloss.Color(hex)
	}
	fg, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(bg.BlendRgb(fg, alpha).Hex())
}
