// Package ui is the journal's terminal interface. A behavior is attached only
// when the collaborator it needs was supplied; the rest of the interface keeps
// working without it.
package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beastmode-on/ai-journal-app/internal/clock"
	"github.com/beastmode-on/ai-journal-app/internal/config"
	"github.com/beastmode-on/ai-journal-app/internal/debounce"
	"github.com/beastmode-on/ai-journal-app/internal/drafts"
	"github.com/beastmode-on/ai-journal-app/internal/form"
	"github.com/beastmode-on/ai-journal-app/internal/hooks"
	"github.com/beastmode-on/ai-journal-app/internal/notify"
	"github.com/beastmode-on/ai-journal-app/internal/reveal"
	"github.com/beastmode-on/ai-journal-app/internal/storage"
)

// EntryStore is where submitted entries go and where listings come from.
type EntryStore interface {
	AddEntry(title, content string) (storage.Entry, error)
	Recent(limit int) ([]storage.Entry, error)
	Get(id int) (storage.Entry, error)
	Search(query, date string) ([]storage.Entry, error)
	Analytics() (storage.Analytics, error)
}

type DraftStore interface {
	Save(key string, d drafts.Draft) error
	Load(key string) (drafts.Draft, bool, error)
	Clear(key string) error
}

type PrefStore interface {
	DarkMode() bool
	SetDarkMode(on bool) error
}

type Options struct {
	Config  config.Config
	Entries EntryStore
	Drafts  DraftStore
	Prefs   PrefStore
	Hooks   hooks.Hooks
	Clock   clock.Clock
	// Copy writes text to the clipboard. Nil disables copying.
	Copy   func(string) error
	Logger *slog.Logger
	// Ready is called once the program exists, from its own goroutine.
	Ready func(*Namespace)
}

type page int

const (
	pageDashboard page = iota
	pageNew
	pageSearch
	pageEntry
	pageAnalytics
)

type searchFocus int

const (
	focusQuery searchFocus = iota
	focusDate
	focusResults
)

const (
	fieldTitle   = "title"
	fieldContent = "content"

	minSearchLen = 3

	cardHeight      = 3
	dashboardChrome = 6
	fallbackWidth   = 80
)

const (
	msgRequiredFields = "Please fill in all required fields."
	msgEntryCreated   = "Journal entry created successfully!"
	msgTitleTooLong   = "Title must be 200 characters or fewer."
	msgCopied         = "Copied to clipboard!"
	msgCopyFailed     = "Failed to copy to clipboard."
	msgDraftKept      = "Draft kept."
	msgDraftRestored  = "Draft restored."
)

type Model struct {
	cfg     config.Config
	entries EntryStore
	drafts  DraftStore
	prefs   PrefStore
	hooks   hooks.Hooks
	clock   clock.Clock
	copyFn  func(string) error
	logger  *slog.Logger

	keys   keyMap
	help   help.Model
	styles Styles
	dark   bool

	page          page
	back          page
	width, height int
	startup       tea.Cmd

	notes  *notify.Center
	reveal *reveal.Animator

	// dashboard
	recent []storage.Entry
	cursor int
	offset int

	// new entry
	title      textinput.Model
	content    textarea.Model
	form       form.Form
	entryFocus int
	autosave   debounce.Debouncer

	// search
	query          textinput.Model
	date           textinput.Model
	searchFocus    searchFocus
	searchDebounce debounce.Debouncer
	results        []storage.Entry
	resultCursor   int
	searched       bool

	current   storage.Entry
	analytics storage.Analytics
}

// New builds the model and loads the dashboard.
func New(opts Options) Model {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	h := opts.Hooks
	if h == nil {
		h = hooks.NewLogging(logger)
	}

	title := textinput.New()
	title.Placeholder = "Give your entry a title"
	title.CharLimit = 0
	title.Width = 40

	content := textarea.New()
	content.Placeholder = "What's on your mind?"
	content.CharLimit = 0
	content.ShowLineNumbers = false

	query := textinput.New()
	query.Placeholder = "Search entries"
	query.Width = 40

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Width = 12

	m := Model{
		cfg:     cfg,
		entries: opts.Entries,
		drafts:  opts.Drafts,
		prefs:   opts.Prefs,
		hooks:   h,
		clock:   clk,
		copyFn:  opts.Copy,
		logger:  logger,
		keys:    newKeyMap(cfg.Keys),
		help:    help.New(),
		notes:   notify.NewCenter(cfg.Timing.Notification(), clk),
		reveal: reveal.New(reveal.Options{
			Threshold:    cfg.Reveal.Threshold,
			BottomMargin: cfg.Reveal.BottomMargin,
		}),
		title:          title,
		content:        content,
		form:           newEntryForm(),
		autosave:       debounce.New(fieldContent, cfg.Timing.Autosave(), clk),
		query:          query,
		date:           date,
		searchDebounce: debounce.New("search", cfg.Timing.Search(), clk),
	}
	if m.prefs != nil {
		m.dark = m.prefs.DarkMode()
	}
	m.styles = themeFor(m.dark).Styles()
	m.fitContent()
	m.startup = m.loadRecent()
	return m
}

// Run starts the interactive program and blocks until it exits.
func Run(opts Options) error {
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	m := New(opts)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if opts.Ready != nil {
		go opts.Ready(NewNamespace(program))
	}
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.startup
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.scrollToCursor()
		m.checkReveal()
		return m, nil
	case notify.Expired:
		m.notes.Expire(msg)
		return m, nil
	case debounce.Fired:
		return m.handleFired(msg)
	case showNotificationMsg:
		return m, m.show(msg.message, msg.level)
	case previewMsg:
		m.hooks.ShowEntryPreview(msg.entryID)
		return m, nil
	case filterTagMsg:
		m.hooks.FilterByTag(msg.tag)
		return m, nil
	case saveDraftMsg:
		m.hooks.SaveDraft()
		return m, nil
	}
	return m.updateWidgets(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NewEntry):
		return m.openNewEntry()
	case m.prefs != nil && key.Matches(msg, m.keys.DarkMode):
		return m.toggleDarkMode()
	case key.Matches(msg, m.keys.Dismiss):
		m.notes.DismissNewest()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		switch m.page {
		case pageNew:
			return m.submitEntry()
		case pageSearch:
			return m.runSearch()
		}
	}

	switch m.page {
	case pageNew:
		return m.updateNewEntry(msg)
	case pageSearch:
		return m.updateSearch(msg)
	case pageEntry:
		return m.updateEntry(msg)
	case pageAnalytics:
		return m.updateAnalytics(msg)
	default:
		return m.updateDashboard(msg)
	}
}

func (m Model) handleFired(msg debounce.Fired) (tea.Model, tea.Cmd) {
	switch {
	case m.searchDebounce.Accept(msg):
		// One or two characters are too few to search on.
		n := utf8.RuneCountInString(m.query.Value())
		if n == 0 || n >= minSearchLen {
			return m.runSearch()
		}
	case m.autosave.Accept(msg):
		m.hooks.SaveDraft()
	}
	return m, nil
}

// updateWidgets forwards non-key messages, such as cursor blinks, to the
// focused input.
func (m Model) updateWidgets(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case pageNew:
		if m.entryFocus == 0 {
			m.title, cmd = m.title.Update(msg)
		} else {
			m.content, cmd = m.content.Update(msg)
		}
	case pageSearch:
		switch m.searchFocus {
		case focusQuery:
			m.query, cmd = m.query.Update(msg)
		case focusDate:
			m.date, cmd = m.date.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m.openSearch()
	case key.Matches(msg, m.keys.Analytics):
		return m.openAnalytics()
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(m.recent))
		m.scrollToCursor()
		m.checkReveal()
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(m.recent))
		m.scrollToCursor()
		m.checkReveal()
	case key.Matches(msg, m.keys.Open):
		if e, ok := m.selected(); ok {
			return m.openEntry(e.ID)
		}
	case key.Matches(msg, m.keys.Preview):
		if e, ok := m.selected(); ok {
			m.hooks.ShowEntryPreview(strconv.Itoa(e.ID))
		}
	case key.Matches(msg, m.keys.Tag):
		if e, ok := m.selected(); ok && len(e.Tags) > 0 {
			m.hooks.FilterByTag(e.Tags[0])
		}
	}
	return m, nil
}

func (m Model) openNewEntry() (tea.Model, tea.Cmd) {
	if m.page == pageNew {
		return m, nil
	}
	m.leaveSearch()
	m.resetEntryForm()

	var cmds []tea.Cmd
	if m.drafts != nil {
		d, ok, err := m.drafts.Load(drafts.NewEntryKey)
		switch {
		case err != nil:
			m.logger.Warn("load draft", "key", drafts.NewEntryKey, "err", err)
		case ok && !d.Empty():
			m.title.SetValue(d.Title)
			m.content.SetValue(d.Content)
			m.fitContent()
			cmds = append(cmds, m.show(msgDraftRestored, notify.Info))
		}
	}

	m.page = pageNew
	m.entryFocus = 0
	m.content.Blur()
	cmds = append(cmds, m.title.Focus())
	return m, tea.Batch(cmds...)
}

func (m Model) updateNewEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.cancelNewEntry()
	case key.Matches(msg, m.keys.NextField):
		cmd := m.focusEntryField(1 - m.entryFocus)
		return m, cmd
	case m.entryFocus == 0 && msg.Type == tea.KeyEnter:
		cmd := m.focusEntryField(1)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.entryFocus == 0 {
		m.title, cmd = m.title.Update(msg)
		return m, cmd
	}
	before := m.content.Value()
	m.content, cmd = m.content.Update(msg)
	if after := m.content.Value(); after != before {
		m.fitContent()
		tick := m.autosave.Trigger(after)
		return m, tea.Batch(cmd, tick)
	}
	return m, cmd
}

func (m *Model) focusEntryField(i int) tea.Cmd {
	m.entryFocus = i
	if i == 0 {
		m.content.Blur()
		return m.title.Focus()
	}
	m.title.Blur()
	return m.content.Focus()
}

func (m Model) submitEntry() (tea.Model, tea.Cmd) {
	m.form.Set(fieldTitle, m.title.Value())
	m.form.Set(fieldContent, m.content.Value())
	if !m.form.Validate() {
		return m, m.show(msgRequiredFields, notify.Danger)
	}
	if m.entries == nil {
		return m, nil
	}

	e, err := m.entries.AddEntry(m.title.Value(), m.content.Value())
	if err != nil {
		m.logger.Warn("add entry", "err", err)
		if errors.Is(err, storage.ErrTitleTooLong) {
			return m, m.show(msgTitleTooLong, notify.Danger)
		}
		return m, m.show(fmt.Sprintf("Failed to save entry: %v", err), notify.Danger)
	}
	m.logger.Info("entry created", "id", e.ID, "tags", len(e.Tags))

	if m.drafts != nil {
		if err := m.drafts.Clear(drafts.NewEntryKey); err != nil {
			m.logger.Warn("clear draft", "key", drafts.NewEntryKey, "err", err)
		}
	}
	m.autosave.Cancel()
	m.resetEntryForm()
	m.title.Blur()
	m.content.Blur()
	m.page = pageDashboard
	m.cursor = 0
	m.offset = 0
	reload := m.loadRecent()
	return m, tea.Batch(m.show(msgEntryCreated, notify.Success), reload)
}

// cancelNewEntry leaves the form, keeping what was typed as a draft.
func (m Model) cancelNewEntry() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.drafts != nil {
		d := drafts.Draft{
			Title:   m.title.Value(),
			Content: m.content.Value(),
			SavedAt: m.clock.Now().UTC(),
		}
		switch {
		case d.Empty():
			if err := m.drafts.Clear(drafts.NewEntryKey); err != nil {
				m.logger.Warn("clear draft", "key", drafts.NewEntryKey, "err", err)
			}
		default:
			if err := m.drafts.Save(drafts.NewEntryKey, d); err != nil {
				m.logger.Warn("keep draft", "key", drafts.NewEntryKey, "err", err)
				cmd = m.show("Failed to keep draft.", notify.Warning)
			} else {
				cmd = m.show(msgDraftKept, notify.Info)
			}
		}
	}
	m.autosave.Cancel()
	m.title.Blur()
	m.content.Blur()
	m.page = pageDashboard
	reload := m.loadRecent()
	return m, tea.Batch(cmd, reload)
}

func (m *Model) resetEntryForm() {
	m.title.SetValue("")
	m.content.Reset()
	m.form = newEntryForm()
	m.fitContent()
}

func (m *Model) fitContent() {
	m.content.SetHeight(form.FitHeight(m.content.LineCount(), m.cfg.Editor.MinRows, m.cfg.Editor.MaxRows))
}

func newEntryForm() form.Form {
	return form.Form{Fields: []form.Field{
		{Name: fieldTitle, Required: true},
		{Name: fieldContent, Required: true},
	}}
}

func (m Model) openSearch() (tea.Model, tea.Cmd) {
	m.query.SetValue("")
	m.date.SetValue("")
	m.results = nil
	m.resultCursor = 0
	m.searched = false
	m.page = pageSearch
	cmd := m.focusSearch(focusQuery)
	return m, cmd
}

func (m *Model) focusSearch(f searchFocus) tea.Cmd {
	m.searchFocus = f
	m.query.Blur()
	m.date.Blur()
	switch f {
	case focusQuery:
		return m.query.Focus()
	case focusDate:
		return m.date.Focus()
	}
	return nil
}

func (m *Model) leaveSearch() {
	m.searchDebounce.Cancel()
	m.query.Blur()
	m.date.Blur()
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveSearch()
		m.page = pageDashboard
		cmd := m.loadRecent()
		return m, cmd
	case key.Matches(msg, m.keys.NextField):
		next := (m.searchFocus + 1) % 3
		if next == focusResults && len(m.results) == 0 {
			next = focusQuery
		}
		cmd := m.focusSearch(next)
		return m, cmd
	case msg.Type == tea.KeyEnter:
		if m.searchFocus == focusResults {
			if len(m.results) == 0 {
				return m, nil
			}
			return m.openEntry(m.results[clampCursor(m.resultCursor, len(m.results))].ID)
		}
		return m.runSearch()
	}

	var cmd tea.Cmd
	switch m.searchFocus {
	case focusResults:
		switch {
		case key.Matches(msg, m.keys.Down):
			m.resultCursor = clampCursor(m.resultCursor+1, len(m.results))
		case key.Matches(msg, m.keys.Up):
			m.resultCursor = clampCursor(m.resultCursor-1, len(m.results))
		}
		return m, nil
	case focusDate:
		m.date, cmd = m.date.Update(msg)
		return m, cmd
	}

	before := m.query.Value()
	m.query, cmd = m.query.Update(msg)
	if after := m.query.Value(); after != before {
		tick := m.searchDebounce.Trigger(after)
		return m, tea.Batch(cmd, tick)
	}
	return m, cmd
}

// runSearch submits the search form now. A pending auto-submit is dropped.
func (m Model) runSearch() (tea.Model, tea.Cmd) {
	m.searchDebounce.Cancel()
	if m.entries == nil {
		return m, nil
	}
	results, err := m.entries.Search(m.query.Value(), m.date.Value())
	if err != nil {
		m.logger.Warn("search entries", "err", err)
		return m, m.show(fmt.Sprintf("Search failed: %v", err), notify.Danger)
	}
	m.results = results
	m.resultCursor = 0
	m.searched = true
	m.logger.Debug("search", "query", m.query.Value(), "date", m.date.Value(), "results", len(results))
	return m, nil
}

func (m Model) openEntry(id int) (tea.Model, tea.Cmd) {
	if m.entries == nil {
		return m, nil
	}
	e, err := m.entries.Get(id)
	if err != nil {
		m.logger.Warn("open entry", "id", id, "err", err)
		return m, m.show("Failed to open entry.", notify.Danger)
	}
	m.current = e
	m.back = m.page
	m.page = pageEntry
	return m, nil
}

func (m Model) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.page = m.back
		if m.page == pageDashboard {
			cmd := m.loadRecent()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Copy):
		return m.copyEntry()
	case key.Matches(msg, m.keys.Tag):
		if len(m.current.Tags) > 0 {
			m.hooks.FilterByTag(m.current.Tags[0])
		}
	}
	return m, nil
}

func (m Model) copyEntry() (tea.Model, tea.Cmd) {
	if m.copyFn == nil {
		return m, nil
	}
	if err := m.copyFn(m.current.Content); err != nil {
		m.logger.Warn("copy to clipboard", "err", err)
		return m, m.show(msgCopyFailed, notify.Danger)
	}
	return m, m.show(msgCopied, notify.Success)
}

func (m Model) openAnalytics() (tea.Model, tea.Cmd) {
	if m.entries == nil {
		return m, nil
	}
	a, err := m.entries.Analytics()
	if err != nil {
		m.logger.Warn("load analytics", "err", err)
		return m, m.show("Failed to load analytics.", notify.Danger)
	}
	m.analytics = a
	m.page = pageAnalytics
	return m, nil
}

func (m Model) updateAnalytics(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.page = pageDashboard
		cmd := m.loadRecent()
		return m, cmd
	}
	return m, nil
}

func (m Model) toggleDarkMode() (tea.Model, tea.Cmd) {
	m.dark = !m.dark
	m.styles = themeFor(m.dark).Styles()
	if err := m.prefs.SetDarkMode(m.dark); err != nil {
		m.logger.Warn("save dark mode preference", "err", err)
	}
	return m, nil
}

// loadRecent refreshes the dashboard cards and starts observing new ones.
func (m *Model) loadRecent() tea.Cmd {
	if m.entries == nil {
		return nil
	}
	recent, err := m.entries.Recent(m.cfg.DashboardLimit)
	if err != nil {
		m.logger.Error("load recent entries", "err", err)
		return m.show(fmt.Sprintf("Failed to load entries: %v", err), notify.Danger)
	}
	m.recent = recent
	m.cursor = clampCursor(m.cursor, len(recent))
	ids := make([]string, 0, len(recent))
	for _, e := range recent {
		ids = append(ids, cardID(e))
	}
	m.reveal.Observe(ids...)
	m.scrollToCursor()
	m.checkReveal()
	return nil
}

func (m Model) selected() (storage.Entry, bool) {
	if len(m.recent) == 0 {
		return storage.Entry{}, false
	}
	return m.recent[clampCursor(m.cursor, len(m.recent))], true
}

func (m Model) listHeight() int {
	return max(m.height-dashboardChrome, cardHeight)
}

func (m Model) visibleCards() int {
	return max(m.listHeight()/cardHeight, 1)
}

func (m *Model) scrollToCursor() {
	n := m.visibleCards()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
	m.offset = clampCursor(m.offset, len(m.recent))
}

// checkReveal marks the dashboard cards that scrolled into view.
func (m *Model) checkReveal() {
	if m.page != pageDashboard || m.height == 0 || len(m.recent) == 0 {
		return
	}
	elements := make([]reveal.Element, 0, len(m.recent))
	for i, e := range m.recent {
		id := cardID(e)
		if !m.reveal.Observing(id) {
			continue
		}
		elements = append(elements, reveal.Element{
			ID:     id,
			Bounds: reveal.Bounds{Top: i * cardHeight, Height: cardHeight},
		})
	}
	if len(elements) == 0 {
		return
	}
	viewport := reveal.Bounds{Top: m.offset * cardHeight, Height: m.listHeight()}
	if ids := m.reveal.Check(viewport, elements); len(ids) > 0 {
		m.logger.Debug("revealed entry cards", "ids", ids)
	}
}

func (m *Model) resize() {
	w := m.width
	if w <= 0 {
		w = fallbackWidth
	}
	m.title.Width = max(w-10, 10)
	m.query.Width = max(w-10, 10)
	m.content.SetWidth(max(w-4, 10))
	m.help.Width = w
}

func (m Model) show(message string, level notify.Level) tea.Cmd {
	_, cmd := m.notes.Show(message, level)
	return cmd
}

func cardID(e storage.Entry) string {
	return "entry-" + strconv.Itoa(e.ID)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
