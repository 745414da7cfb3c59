package notify

import (
	"testing"
	"time"

	"github.com/beastmode-on/ai-journal-app/internal/clock"
)

func expireDue(c *Center, mc *clock.Manual, d time.Duration) int {
	removed := 0
	for _, msg := range mc.Advance(d) {
		if e, ok := msg.(Expired); ok && c.Expire(e) {
			removed++
		}
	}
	return removed
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"info", Info},
		{"success", Success},
		{" Warning ", Warning},
		{"DANGER", Danger},
		{"", Info},
		{"primary", Info},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got := ParseLevel(tt.want.String()); got != tt.want {
			t.Errorf("ParseLevel(%q) round trip = %v", tt.want.String(), got)
		}
	}
}

func TestCenter_ShowInsertsNewestFirst(t *testing.T) {
	mc := clock.NewManual(time.Unix(100, 0))
	c := NewCenter(DefaultTTL, mc)

	first, _ := c.Show("first", Info)
	second, _ := c.Show("second", Success)

	active := c.Active()
	if len(active) != 2 {
		t.Fatalf("Active len = %d, want 2", len(active))
	}
	if active[0].ID != second.ID || active[1].ID != first.ID {
		t.Fatalf("order = %q,%q want newest first", active[0].Message, active[1].Message)
	}
	if first.ID == second.ID {
		t.Fatalf("notifications share ID %q", first.ID)
	}
	if !first.CreatedAt.Equal(time.Unix(100, 0)) {
		t.Fatalf("CreatedAt = %v, want clock time", first.CreatedAt)
	}
}

func TestCenter_ExpiresAfterTTL(t *testing.T) {
	mc := clock.NewManual(time.Unix(0, 0))
	c := NewCenter(5*time.Second, mc)

	c.Show("saved", Success)
	if n := expireDue(c, mc, 4999*time.Millisecond); n != 0 {
		t.Fatalf("expired %d before TTL", n)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1 before TTL", c.Len())
	}
	if n := expireDue(c, mc, time.Millisecond); n != 1 {
		t.Fatalf("expired %d at TTL, want 1", n)
	}
	if c.Len() != 0 {
		t.Fatalf("Len = %d, want 0 after TTL", c.Len())
	}
}

func TestCenter_ManualDismissThenExpiryIsNoop(t *testing.T) {
	mc := clock.NewManual(time.Unix(0, 0))
	c := NewCenter(5*time.Second, mc)

	n, _ := c.Show("oops", Danger)
	keep, _ := c.Show("keep", Info)
	if !c.Dismiss(n.ID) {
		t.Fatalf("Dismiss returned false for active notification")
	}
	if c.Dismiss(n.ID) {
		t.Fatalf("second Dismiss returned true")
	}

	if removed := expireDue(c, mc, 5*time.Second); removed != 1 {
		t.Fatalf("expiry removed %d, want only the remaining one", removed)
	}
	if c.Len() != 0 {
		t.Fatalf("Len = %d, want 0", c.Len())
	}
	if c.Dismiss(keep.ID) {
		t.Fatalf("Dismiss after expiry returned true")
	}
}

func TestCenter_DismissNewest(t *testing.T) {
	c := NewCenter(0, clock.NewManual(time.Unix(0, 0)))
	if c.DismissNewest() {
		t.Fatalf("DismissNewest on empty center returned true")
	}
	c.Show("old", Info)
	c.Show("new", Warning)
	if !c.DismissNewest() {
		t.Fatalf("DismissNewest returned false")
	}
	active := c.Active()
	if len(active) != 1 || active[0].Message != "old" {
		t.Fatalf("Active = %#v, want only old", active)
	}
}
