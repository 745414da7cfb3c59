package clock

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type stamp struct {
	name string
	at   time.Time
}

func TestManual_AdvanceFiresDueTicksInOrder(t *testing.T) {
	start := time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC)
	c := NewManual(start)

	mk := func(name string) func(time.Time) tea.Msg {
		return func(at time.Time) tea.Msg { return stamp{name: name, at: at} }
	}
	if cmd := c.Tick(3*time.Second, mk("late")); cmd == nil {
		t.Fatalf("Tick returned nil command")
	}
	c.Tick(time.Second, mk("early"))
	c.Tick(time.Second, mk("early-2"))
	c.Tick(10*time.Second, mk("never"))

	if got := c.Advance(500 * time.Millisecond); len(got) != 0 {
		t.Fatalf("Advance(500ms) fired %d ticks, want 0", len(got))
	}

	msgs := c.Advance(3 * time.Second)
	want := []string{"early", "early-2", "late"}
	if len(msgs) != len(want) {
		t.Fatalf("Advance fired %d ticks, want %d", len(msgs), len(want))
	}
	for i, msg := range msgs {
		s := msg.(stamp)
		if s.name != want[i] {
			t.Fatalf("msg[%d] = %q, want %q", i, s.name, want[i])
		}
	}
	if first := msgs[0].(stamp); !first.at.Equal(start.Add(time.Second)) {
		t.Fatalf("tick time = %v, want %v", first.at, start.Add(time.Second))
	}
	if c.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", c.Pending())
	}
	if !c.Now().Equal(start.Add(3500 * time.Millisecond)) {
		t.Fatalf("Now = %v, want %v", c.Now(), start.Add(3500*time.Millisecond))
	}
}

func TestManual_TickCommandProducesNoMessage(t *testing.T) {
	c := NewManual(time.Time{})
	cmd := c.Tick(time.Second, func(time.Time) tea.Msg { return "fired" })
	if msg := cmd(); msg != nil {
		t.Fatalf("cmd() = %v, want nil", msg)
	}
}
