package debounce

import (
	"testing"
	"time"

	"github.com/beastmode-on/ai-journal-app/internal/clock"
)

func deliver(d *Debouncer, c *clock.Manual, step time.Duration) []Fired {
	var accepted []Fired
	for _, msg := range c.Advance(step) {
		f, ok := msg.(Fired)
		if !ok {
			continue
		}
		if d.Accept(f) {
			accepted = append(accepted, f)
		}
	}
	return accepted
}

func TestDebouncer_BurstFiresOnceWithLastValue(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
	}{
		{"single", []string{"a"}},
		{"three", []string{"h", "he", "hel"}},
		{"many", []string{"d", "de", "dea", "dear", "dear ", "dear d", "dear di"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := clock.NewManual(time.Unix(0, 0))
			d := New("q", time.Second, c)

			var fired []Fired
			for _, in := range tt.inputs {
				d.Trigger(in)
				fired = append(fired, deliver(&d, c, 200*time.Millisecond)...)
			}
			if len(fired) != 0 {
				t.Fatalf("fired during burst: %#v", fired)
			}

			fired = deliver(&d, c, time.Second)
			if len(fired) != 1 {
				t.Fatalf("fired %d times, want 1", len(fired))
			}
			want := tt.inputs[len(tt.inputs)-1]
			if fired[0].Value != want {
				t.Fatalf("fired value = %q, want %q", fired[0].Value, want)
			}
			if d.Pending() {
				t.Fatalf("Pending = true after firing")
			}
		})
	}
}

func TestDebouncer_DelayMeasuredFromLastEvent(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	d := New("content", 30*time.Second, c)

	d.Trigger("a")
	if got := deliver(&d, c, 20*time.Second); len(got) != 0 {
		t.Fatalf("fired early: %#v", got)
	}
	d.Trigger("ab")
	if got := deliver(&d, c, 20*time.Second); len(got) != 0 {
		t.Fatalf("fired 20s after the second event: %#v", got)
	}
	if got := deliver(&d, c, 10*time.Second); len(got) != 1 || got[0].Value != "ab" {
		t.Fatalf("fired = %#v, want one tick with ab", got)
	}
}

func TestDebouncer_AcceptRejectsForeignAndRepeatedTicks(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	d := New("q", time.Second, c)

	d.Trigger("abc")
	live := Fired{Key: "q", Gen: 1, Value: "abc"}

	if d.Accept(Fired{Key: "other", Gen: 1}) {
		t.Fatalf("accepted tick for another widget")
	}
	if !d.Accept(live) {
		t.Fatalf("rejected live tick")
	}
	if d.Accept(live) {
		t.Fatalf("accepted the same tick twice")
	}
}

func TestDebouncer_AcceptWithoutTriggerIsSilent(t *testing.T) {
	d := New("q", time.Second, clock.NewManual(time.Unix(0, 0)))
	if d.Accept(Fired{Key: "q"}) {
		t.Fatalf("accepted tick with nothing pending")
	}
	if d.Pending() {
		t.Fatalf("Pending = true without a trigger")
	}
}

func TestDebouncer_CancelDropsPendingTick(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	d := New("content", 30*time.Second, c)

	d.Trigger("draft")
	d.Cancel()
	if d.Pending() {
		t.Fatalf("Pending() after Cancel = true")
	}
	if got := deliver(&d, c, 30*time.Second); len(got) != 0 {
		t.Fatalf("accepted %v after Cancel", got)
	}

	d.Trigger("again")
	if got := deliver(&d, c, 30*time.Second); len(got) != 1 || got[0].Value != "again" {
		t.Fatalf("accepted %v after re-trigger", got)
	}
}
