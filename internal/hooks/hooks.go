// Package hooks declares the journal's extension points. The default
// implementation only records that a hook ran.
package hooks

import "log/slog"

// Hooks are invoked by the UI and never report back.
type Hooks interface {
	ShowEntryPreview(entryID string)
	FilterByTag(tag string)
	// SaveDraft carries no payload; what a draft contains is up to the
	// implementation behind it.
	SaveDraft()
}

// Logging writes one record per invocation and has no other effect.
type Logging struct {
	Logger *slog.Logger
}

func NewLogging(logger *slog.Logger) Logging {
	if logger == nil {
		logger = slog.Default()
	}
	return Logging{Logger: logger}
}

func (l Logging) ShowEntryPreview(entryID string) {
	l.logger().Info("showing preview for entry", "entry_id", entryID)
}

func (l Logging) FilterByTag(tag string) {
	l.logger().Info("filtering by tag", "tag", tag)
}

func (l Logging) SaveDraft() {
	l.logger().Info("auto-saving draft")
}

func (l Logging) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// Noop discards every invocation.
type Noop struct{}

func (Noop) ShowEntryPreview(string) {}
func (Noop) FilterByTag(string)      {}
func (Noop) SaveDraft()              {}
