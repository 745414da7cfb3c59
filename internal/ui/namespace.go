package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beastmode-on/ai-journal-app/internal/notify"
)

type showNotificationMsg struct {
	message string
	level   notify.Level
}

type previewMsg struct {
	entryID string
}

type filterTagMsg struct {
	tag string
}

type saveDraftMsg struct{}

// Namespace exposes the journal's UI operations to code running outside the
// event loop. Every method is safe to call from any goroutine; calls on a nil
// Namespace or one without a program are dropped.
type Namespace struct {
	program *tea.Program
}

func NewNamespace(p *tea.Program) *Namespace {
	return &Namespace{program: p}
}

// ShowNotification displays message with the named level. Unknown levels are
// shown as info.
func (n *Namespace) ShowNotification(message, level string) {
	n.send(showNotificationMsg{message: message, level: notify.ParseLevel(level)})
}

func (n *Namespace) ShowEntryPreview(entryID string) {
	n.send(previewMsg{entryID: entryID})
}

func (n *Namespace) FilterByTag(tag string) {
	n.send(filterTagMsg{tag: tag})
}

func (n *Namespace) SaveDraft() {
	n.send(saveDraftMsg{})
}

func (n *Namespace) send(msg tea.Msg) {
	if n == nil || n.program == nil {
		return
	}
	n.program.Send(msg)
}
