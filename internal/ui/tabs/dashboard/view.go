package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/m-sarratt/moodline-tui/internal/extract"
	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/ui/components"
	"github.com/m-sarratt/moodline-tui/internal/ui/styles"
)

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	m.viewport.SetContent(m.renderContent())

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderContent builds the full card stack. View clips it through the
// viewport, so cards past the window height scroll rather than render.
func (m *Model) renderContent() string {
	sections := []string{
		m.renderTitle(),
		m.renderTodayCard(),
		m.renderSnapshotCard(),
	}
	if agenda := m.renderAgendaCard(); agenda != "" {
		sections = append(sections, agenda)
	}
	sections = append(sections, m.renderRecentCard())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

// renderTitle renders the dashboard title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Moodline")
	subtitle := styles.HelpStyle.Render("Daily mind and body energy journal")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderTodayCard renders today's rollup with animated energy bars.
func (m *Model) renderTodayCard() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("☀")
	heading := "Today · " + time.Now().UTC().Format("Mon, Jan 2")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render(heading)))
	rows = append(rows, "")

	today := m.state.GetToday()
	contentWidth := max(cardWidth-8, 20)

	switch {
	case today == nil && m.state.AnyLoading():
		rows = append(rows, m.renderTodayLoading(contentWidth)...)
	case today == nil || today.Count == 0:
		rows = append(rows, m.renderTodayEmpty()...)
	default:
		rows = append(rows, m.renderTodayRows(today, contentWidth)...)
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderTodayEmpty() []string {
	emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
	return []string{
		fmt.Sprintf("  %s %s", emptyIcon, styles.HelpStyle.Render("No check-ins yet today")),
		"",
		styles.InfoTextStyle.Render("  ╰─▶ Record one from the Journal tab, or drop a file in the inbox"),
	}
}

func (m *Model) renderTodayRows(day *models.DailyBucket, width int) []string {
	var lines []string

	lines = append(lines, m.renderSeriesRow("◐ Mind", styles.MindSeriesStyle, "today:mind", day.Mind, width))
	lines = append(lines, m.renderSeriesRow("◑ Body", styles.BodySeriesStyle, "today:body", day.Body, width))
	lines = append(lines, m.renderSeriesRow("◈ Blended", lipgloss.NewStyle().Foreground(styles.Primary).Bold(true), "today:blended", day.Blended, width))

	lines = append(lines, "")
	lines = append(lines, m.renderMoodLine(day))
	lines = append(lines, "")
	lines = append(lines, "  "+m.dayBar.ViewWithLabel(time.Now(), "◷ Day", width))

	return lines
}

// renderSeriesRow renders one energy bar row. A series with no readings
// today gets the missing marker rather than an empty bar at zero.
func (m *Model) renderSeriesRow(label string, style lipgloss.Style, animKey string, value *float64, width int) string {
	styledLabel := style.Render(label)

	if value == nil {
		return "  " + m.energyBar.ViewMissing(styledLabel, width)
	}

	displayValue := *value
	if anim, ok := m.animations[animKey]; ok {
		displayValue = anim.CurrentPercent
	}
	return "  " + m.energyBar.View(displayValue, styledLabel, width)
}

func (m *Model) renderMoodLine(day *models.DailyBucket) string {
	badge := styles.MoodUnknownStyle.Render("◌ UNRATED")
	if day.MoodLabel != "" {
		badge = styles.GetMoodLabelStyle(day.MoodLabel).Render("● " + strings.ToUpper(day.MoodLabel))
	}

	countStr := styles.HelpStyle.Render(fmt.Sprintf("%d check-in(s) today", day.Count))

	return fmt.Sprintf("  %s   %s", badge, countStr)
}

func (m *Model) renderTodayLoading(width int) []string {
	var lines []string

	lines = append(lines, "  "+styles.MindSeriesStyle.Render("◐ Mind"))
	lines = append(lines, components.SimpleEnergyBarLoading("mind", width, m.animationFrame))
	lines = append(lines, "")
	lines = append(lines, "  "+styles.BodySeriesStyle.Render("◑ Body"))
	lines = append(lines, components.SimpleEnergyBarLoading("body", width, m.animationFrame))

	return lines
}

// renderAgendaCard lists the tasks and events lifted from today's
// check-in notes. Returns "" when nothing in them looks actionable,
// and the card is skipped entirely.
func (m *Model) renderAgendaCard() string {
	items := m.todayAgenda()
	if len(items) == 0 {
		return ""
	}

	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("☑")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Today's Agenda")))
	rows = append(rows, "")

	for _, item := range items {
		marker := "☐"
		if item.Kind == extract.KindEvent {
			marker = "◷"
		}
		rows = append(rows, fmt.Sprintf("  %s %s", marker, item.Title))
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// todayAgenda scans the notes of today's check-ins, deduplicated across
// entries so a task repeated in two check-ins shows once.
func (m *Model) todayAgenda() []extract.Item {
	today := time.Now().UTC().Format(time.DateOnly)

	var items []extract.Item
	for _, entry := range m.state.GetRecent() {
		if entry.Note == "" || entry.CreatedAt.UTC().Format(time.DateOnly) != today {
			continue
		}
		items = append(items, extract.Scan(entry.Note)...)
	}
	return extract.Dedupe(items)
}

// renderSnapshotCard renders the all-time stats summary.
func (m *Model) renderSnapshotCard() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("All-Time Snapshot")))
	rows = append(rows, "")

	history := m.state.GetHistory()
	if history == nil || !history.HasData() {
		emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
		rows = append(rows, fmt.Sprintf("  %s %s", emptyIcon, styles.HelpStyle.Render("No insights yet")))
	} else {
		rows = append(rows, m.renderSnapshotRows(history, max(cardWidth-8, 20))...)
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderSnapshotRows(history *models.MoodHistoryStats, width int) []string {
	var lines []string
	stats := history.Stats

	// Sparkline over the daily blended scores, most recent day last.
	blended := make([]*float64, len(history.Daily))
	for i := range history.Daily {
		blended[i] = history.Daily[i].Blended
	}
	spark := components.RenderColoredSparkline(components.SeriesWithGaps(blended), max(width-10, 10))
	if spark != "" {
		lines = append(lines, "  "+spark)
		lines = append(lines, "  "+styles.HelpStyle.Render(fmt.Sprintf("blended mood, last %d day(s)", len(history.Daily))))
		lines = append(lines, "")
	}

	// DeltaAvg is an absolute gap; the card shows direction, so render
	// the signed difference instead.
	gap := stats.AvgMind - stats.AvgBody
	gapStyle := styles.TrendFlatStyle
	switch {
	case gap > 0:
		gapStyle = styles.TrendUpStyle
	case gap < 0:
		gapStyle = styles.TrendDownStyle
	}

	bestDay := stats.BestDay
	if bestDay == "" {
		bestDay = "---"
	}
	volatileDay := stats.MostVolatileDay
	if volatileDay == "" {
		volatileDay = "---"
	}

	labelStyle := styles.HelpStyle.Width(16)

	lines = append(lines,
		fmt.Sprintf("  %s %s", labelStyle.Render("Avg mind"), styles.MindSeriesStyle.Render(fmt.Sprintf("%.2f", stats.AvgMind))),
		fmt.Sprintf("  %s %s", labelStyle.Render("Avg body"), styles.BodySeriesStyle.Render(fmt.Sprintf("%.2f", stats.AvgBody))),
		fmt.Sprintf("  %s %s", labelStyle.Render("Mind-body gap"), gapStyle.Render(fmt.Sprintf("%+.2f", gap))),
		fmt.Sprintf("  %s %s", labelStyle.Render("Streak"), lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d day(s)", stats.StreakDays))),
		fmt.Sprintf("  %s %s", labelStyle.Render("Best day"), styles.SuccessTextStyle.Render(bestDay)),
		fmt.Sprintf("  %s %s", labelStyle.Render("Most volatile"), styles.WarningTextStyle.Render(volatileDay)),
	)

	lines = append(lines, "")
	lines = append(lines, "  "+styles.HelpStyle.Render(fmt.Sprintf(
		"%d check-in(s) since %s",
		history.TotalEntries,
		history.FirstEntryAt.Format("Jan 2, 2006"),
	)))

	return lines
}

// renderRecentCard renders the most recent check-ins with selection.
func (m *Model) renderRecentCard() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("☰")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Recent Check-ins")))

	recent := m.state.GetRecent()

	if len(recent) == 0 {
		rows = append(rows, "")
		emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
		rows = append(rows, fmt.Sprintf("  %s %s", emptyIcon, styles.HelpStyle.Render("No check-ins recorded yet")))
		rows = append(rows, "")
		rows = append(rows, styles.InfoTextStyle.Render("  ╰─▶ Drop exported JSON into the inbox to import it"))

		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	rows = append(rows, "")

	for i, entry := range recent {
		rows = append(rows, m.renderEntryRow(entry, i == m.selectedIndex, cardWidth-4))
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderEntryRow(entry models.MoodEntry, selected bool, width int) string {
	selectionPrefix := "  "
	if selected {
		selectionPrefix = styles.FocusedStyle.Render("▸ ")
	}

	whenStr := styles.HelpStyle.Render(entry.CreatedAt.UTC().Format("Jan 02 15:04"))

	parts := []string{
		selectionPrefix + whenStr,
		styles.MindSeriesStyle.Render("M " + formatEnergyShort(entry.MindEnergy)),
		styles.BodySeriesStyle.Render("B " + formatEnergyShort(entry.BodyEnergy)),
	}

	if entry.MoodLabel != "" {
		parts = append(parts, styles.GetMoodLabelStyle(entry.MoodLabel).Render(entry.MoodLabel))
	}

	if note := truncateNote(entry.Note, max(width-46, 8)); note != "" {
		parts = append(parts, styles.HelpStyle.Render(note))
	}

	return strings.Join(parts, "  ")
}

// formatEnergyShort renders a reading as a short figure, or a dash marker
// when the series was not recorded. A missing reading never shows as zero.
func formatEnergyShort(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.0f", *v)
}

// truncateNote shortens a note for the one-line entry row. Cuts on rune
// boundaries so multi-byte text never splits mid-sequence.
func truncateNote(note string, limit int) string {
	runes := []rune(note)
	if len(runes) <= limit {
		return note
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
