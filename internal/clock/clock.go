// Package clock is the timer capability used by the UI behaviors.
// Delays never block: they are Bubble Tea commands that deliver a message
// back to the event loop when they elapse.
package clock

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Clock reports the current time and schedules deferred messages.
type Clock interface {
	Now() time.Time
	Tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd
}

// Real is backed by the wall clock and tea.Tick.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) Tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return tea.Tick(d, fn)
}

type scheduled struct {
	at  time.Time
	seq int
	fn  func(time.Time) tea.Msg
}

// Manual is a deterministic clock. Ticks are registered when scheduled and
// only produce messages when Advance moves time past their deadline.
type Manual struct {
	now     time.Time
	seq     int
	pending []scheduled
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

// Tick registers fn to fire d after the current time. The returned command
// produces no message; the message is obtained from Advance.
func (m *Manual) Tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	m.seq++
	m.pending = append(m.pending, scheduled{at: m.now.Add(d), seq: m.seq, fn: fn})
	return func() tea.Msg { return nil }
}

// Pending reports how many ticks have not fired yet.
func (m *Manual) Pending() int { return len(m.pending) }

// Advance moves the clock forward by d and returns the messages of every
// tick that came due, ordered by deadline and then by scheduling order.
func (m *Manual) Advance(d time.Duration) []tea.Msg {
	m.now = m.now.Add(d)
	var due, rest []scheduled
	for _, s := range m.pending {
		if s.at.After(m.now) {
			rest = append(rest, s)
			continue
		}
		due = append(due, s)
	}
	m.pending = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	msgs := make([]tea.Msg, 0, len(due))
	for _, s := range due {
		msgs = append(msgs, s.fn(s.at))
	}
	return msgs
}
