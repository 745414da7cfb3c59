// Package notify keeps the stack of dismissible, self-expiring messages shown
// at the top of the journal's content area.
package notify

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/beastmode-on/ai-journal-app/internal/clock"
)

const DefaultTTL = 5 * time.Second

type Level int

const (
	Info Level = iota
	Success
	Warning
	Danger
)

// ParseLevel maps a level name to a Level. Unknown names are Info.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "success":
		return Success
	case "warning":
		return Warning
	case "danger":
		return Danger
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	default:
		return "info"
	}
}

type Notification struct {
	ID        string
	Message   string
	Level     Level
	CreatedAt time.Time
}

// Expired is delivered when a notification's TTL elapses.
type Expired struct {
	ID string
}

// Center holds the active notifications, newest first.
type Center struct {
	ttl   time.Duration
	clock clock.Clock
	items []Notification
}

func NewCenter(ttl time.Duration, c clock.Clock) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if c == nil {
		c = clock.Real{}
	}
	return &Center{ttl: ttl, clock: c}
}

// Show inserts a notification at the top and returns the command that
// removes it once the TTL has elapsed.
func (c *Center) Show(message string, level Level) (Notification, tea.Cmd) {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Level:     level,
		CreatedAt: c.clock.Now(),
	}
	c.items = append([]Notification{n}, c.items...)
	id := n.ID
	return n, c.clock.Tick(c.ttl, func(time.Time) tea.Msg { return Expired{ID: id} })
}

// Dismiss removes the notification with id. Removing one that is already
// gone returns false.
func (c *Center) Dismiss(id string) bool {
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// DismissNewest removes the top notification, if any.
func (c *Center) DismissNewest() bool {
	if len(c.items) == 0 {
		return false
	}
	return c.Dismiss(c.items[0].ID)
}

// Expire handles an Expired tick.
func (c *Center) Expire(msg Expired) bool {
	return c.Dismiss(msg.ID)
}

// Active returns a copy of the visible notifications, newest first.
func (c *Center) Active() []Notification {
	if len(c.items) == 0 {
		return nil
	}
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Center) Len() int { return len(c.items) }
