package ui

import (
	"fmt"
	"strings"

	"github.com/beastmode-on/ai-journal-app/internal/form"
	"github.com/beastmode-on/ai-journal-app/internal/storage"
)

const dateLayout = "Jan 2, 2006 15:04"

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if notes := m.renderNotifications(); notes != "" {
		b.WriteString(notes)
	}
	b.WriteString("\n")

	switch m.page {
	case pageNew:
		b.WriteString(m.renderNewEntry())
	case pageSearch:
		b.WriteString(m.renderSearch())
	case pageEntry:
		b.WriteString(m.renderEntry())
	case pageAnalytics:
		b.WriteString(m.renderAnalytics())
	default:
		b.WriteString(m.renderDashboard())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.helpBindings()))
	return b.String()
}

// darkModeLabel names the mode the toggle switches to.
func (m Model) darkModeLabel() string {
	if m.dark {
		return "Light Mode"
	}
	return "Dark Mode"
}

func (m Model) renderHeader() string {
	header := m.styles.Title.Render("Journal")
	if m.prefs != nil {
		header += "  " + m.styles.Button.Render(m.keys.DarkMode.Help().Key+" "+m.darkModeLabel())
	}
	return header
}

func (m Model) renderNotifications() string {
	var b strings.Builder
	for _, n := range m.notes.Active() {
		style := m.styles.ForLevel(n.Level)
		b.WriteString(style.Render(fmt.Sprintf("[%s] %s", n.Level, n.Message)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("Recent entries"))
	b.WriteString("\n\n")
	if len(m.recent) == 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("No entries yet. Press %s to write one.", m.keys.NewEntry.Help().Key)))
		return b.String()
	}

	end := min(m.offset+m.visibleCards(), len(m.recent))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderCard(m.recent[i], i == m.cursor))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderCard draws one entry in cardHeight rows. Cards that have not been
// revealed yet are drawn faint.
func (m Model) renderCard(e storage.Entry, selected bool) string {
	style := m.styles.Card
	prefix := "  "
	if selected {
		style = m.styles.CardSelected
		prefix = "> "
	}
	if !m.reveal.Revealed(cardID(e)) {
		style = style.Faint(true)
	}

	meta := e.CreatedAt.Local().Format(dateLayout)
	if tags := renderTags(e.Tags); tags != "" {
		meta += "  " + tags
	}
	return style.Render(prefix+e.Title) + "\n" +
		style.Render("  "+meta) + "\n\n"
}

func renderTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}

func (m Model) renderNewEntry() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("New entry"))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Title", fieldTitle))
	b.WriteString("\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Content", fieldContent))
	b.WriteString("\n")
	b.WriteString(m.content.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(form.Count(m.content.Value()).String()))
	return b.String()
}

func (m Model) fieldLabel(label, field string) string {
	if m.form.IsInvalid(field) {
		return m.styles.Invalid.Render(label + " (required)")
	}
	return m.styles.Label.Render(label)
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Query"))
	b.WriteString("\n")
	b.WriteString(m.query.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Date"))
	b.WriteString("\n")
	b.WriteString(m.date.View())
	b.WriteString("\n\n")

	if !m.searched {
		return b.String()
	}
	if len(m.results) == 0 {
		b.WriteString(m.styles.Muted.Render("No entries found."))
		return b.String()
	}
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d results", len(m.results))))
	b.WriteString("\n")
	for i, e := range m.results {
		prefix := "  "
		style := m.styles.Card
		if m.searchFocus == focusResults && i == m.resultCursor {
			prefix = "> "
			style = m.styles.CardSelected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s  %s", prefix, e.Title, e.CreatedAt.Local().Format(dateLayout))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderEntry() string {
	e := m.current
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(e.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(e.CreatedAt.Local().Format(dateLayout)))
	if tags := renderTags(e.Tags); tags != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.Tag.Render(tags))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Text.Render(e.Content))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render(form.Count(e.Content).String()))
	return b.String()
}

func (m Model) renderAnalytics() string {
	a := m.analytics
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Analytics"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render(fmt.Sprintf("Total entries: %d", a.Total)))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("Entries per month"))
	b.WriteString("\n")
	if len(a.Monthly) == 0 {
		b.WriteString(m.styles.Muted.Render("(none)"))
		b.WriteString("\n")
	}
	peak := 0
	for _, mc := range a.Monthly {
		peak = max(peak, mc.Count)
	}
	for _, mc := range a.Monthly {
		bar := strings.Repeat("█", scaleBar(mc.Count, peak, 30))
		b.WriteString(fmt.Sprintf("%s %s %d\n", mc.Month, m.styles.Bar.Render(bar), mc.Count))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Top tags"))
	b.WriteString("\n")
	if len(a.TopTags) == 0 {
		b.WriteString(m.styles.Muted.Render("(none)"))
	}
	for _, tc := range a.TopTags {
		b.WriteString(fmt.Sprintf("%s %d\n", m.styles.Tag.Render("#"+tc.Tag), tc.Count))
	}
	return strings.TrimRight(b.String(), "\n")
}

// scaleBar sizes a bar for n against peak. Any positive n gets a cell.
func scaleBar(n, peak, width int) int {
	if peak <= 0 || n <= 0 {
		return 0
	}
	return max(n*width/peak, 1)
}
