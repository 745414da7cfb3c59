// Package debounce coalesces bursts of content changes on one widget into a
// single deferred effect.
//
// Each Trigger supersedes the previous one. Superseded ticks still arrive on
// the event loop but Accept rejects them, so at most one scheduled effect per
// widget is live at any time and replacing it never fails.
package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beastmode-on/ai-journal-app/internal/clock"
)

// Fired is delivered when a scheduled delay elapses.
type Fired struct {
	Key   string
	Gen   uint64
	Value string
}

// Debouncer schedules one effect per idle period for a single widget.
type Debouncer struct {
	key     string
	delay   time.Duration
	clock   clock.Clock
	gen     uint64
	pending bool
	value   string
}

// New returns a Debouncer for the widget identified by key.
func New(key string, delay time.Duration, c clock.Clock) Debouncer {
	if c == nil {
		c = clock.Real{}
	}
	return Debouncer{key: key, delay: delay, clock: c}
}

// Pending reports whether a scheduled effect has not fired yet.
func (d *Debouncer) Pending() bool { return d.pending }

// Trigger records value as the latest content and restarts the delay.
func (d *Debouncer) Trigger(value string) tea.Cmd {
	d.gen++
	d.pending = true
	d.value = value
	fired := Fired{Key: d.key, Gen: d.gen, Value: value}
	return d.clock.Tick(d.delay, func(time.Time) tea.Msg { return fired })
}

// Cancel drops the scheduled effect, if any. Its tick will be rejected.
func (d *Debouncer) Cancel() {
	d.pending = false
}

// Accept reports whether msg is the live tick for this widget. It returns
// true at most once per Trigger, and only for the most recent one.
func (d *Debouncer) Accept(msg Fired) bool {
	if msg.Key != d.key || msg.Gen != d.gen || !d.pending {
		return false
	}
	d.pending = false
	return true
}
