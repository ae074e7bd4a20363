package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pauseDoneMsg reports that a scheduled continuation is due.
type pauseDoneMsg struct {
	id int
}

// scheduler turns delayed continuations into tea.Tick commands. Continuations
// run inside Update, so they never race the rest of the model.
type scheduler struct {
	next    int
	pending map[int]func()
	cmds    []tea.Cmd
}

func newScheduler() *scheduler {
	return &scheduler{pending: map[int]func(){}}
}

// After implements round.Scheduler.
func (s *scheduler) After(d time.Duration, fn func()) func() {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return pauseDoneMsg{id: id}
	}))
	return func() { delete(s.pending, id) }
}

// fire runs the continuation for id unless it was cancelled.
func (s *scheduler) fire(id int) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// drain returns the commands queued since the last call.
func (s *scheduler) drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}
