package trends

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/m-sarratt/moodline-tui/internal/ui/components"
	"github.com/m-sarratt/moodline-tui/internal/ui/styles"
)

// View renders the trends tab.
func (m *Model) View() string {
	switch {
	case m.loading:
		return m.frame(styles.HelpStyle.Render("Loading mood trends..."))
	case m.errorMsg != "":
		return m.frame(fmt.Sprintf("%s %s", styles.ErrorTextStyle.Render("Error:"), m.errorMsg))
	case m.historyData == nil || !m.historyData.HasData():
		return m.frame(lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("Trends"),
			"",
			styles.HelpStyle.Render(fmt.Sprintf("No check-ins in the selected range (%s).", m.timeRange.String())),
			styles.HelpStyle.Render("Press t to widen the range, or record a check-in first."),
		))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderDailyChart(),
		m.renderHourlyRhythm(),
		m.renderWeekdayPattern(),
	)
	m.viewport.SetContent(content)

	return m.frame(m.viewport.View())
}

func (m *Model) frame(content string) string {
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) chartWidth() int {
	// Padding for axis labels.
	return max(m.cardWidth()-12, 30)
}

// cardTitle renders the icon-plus-title first rows of a card.
func cardTitle(icon, title string) []string {
	styledIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render(icon)
	return []string{fmt.Sprintf("%s %s", styledIcon, styles.CardTitleStyle.Render(title)), ""}
}

// indented splits a multi-line block and indents every line two spaces so
// charts line up inside cards.
func indented(block string) []string {
	var rows []string
	for _, line := range strings.Split(block, "\n") {
		rows = append(rows, "  "+line)
	}
	return rows
}

func (m *Model) card(rows []string) string {
	rows = append(rows, "")
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Trends")

	rangeIndicator := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary).
		Render(fmt.Sprintf("[t] %s", m.timeRange.String()))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", rangeIndicator)

	var subtitle string
	if !m.historyData.FirstEntryAt.IsZero() {
		subtitle = styles.HelpStyle.Render(fmt.Sprintf("Data: %s → %s (%d check-ins)",
			m.historyData.FirstEntryAt.Format("Jan 2, 2006"),
			m.historyData.LastEntryAt.Format("Jan 2, 2006"),
			m.historyData.TotalEntries,
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderDailyChart() string {
	rows := cardTitle("📈", "Daily Mood")

	daily := m.historyData.Daily
	if len(daily) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No daily data available"))
		return m.card(rows)
	}

	// Days without readings become gaps, never zeroes.
	mindPtrs := make([]*float64, len(daily))
	bodyPtrs := make([]*float64, len(daily))
	for i := range daily {
		mindPtrs[i] = daily[i].Mind
		bodyPtrs[i] = daily[i].Body
	}

	chart := components.RenderDualLineChart(
		components.SeriesWithGaps(mindPtrs),
		components.SeriesWithGaps(bodyPtrs),
		m.chartWidth(), 8,
		fmt.Sprintf("%d day(s) - mind vs body energy", len(daily)))
	rows = append(rows, indented(chart)...)

	legend := components.RenderLegend([]components.LegendItem{
		{Label: "Mind", Color: components.ChartMindColor},
		{Label: "Body", Color: components.ChartBodyColor},
	})
	rows = append(rows, "", "  "+legend)

	if best := m.historyData.Stats.BestDay; best != "" {
		rows = append(rows, "", fmt.Sprintf("  Best day: %s",
			lipgloss.NewStyle().Bold(true).Foreground(styles.Success).Render(best)))
	}

	return m.card(rows)
}

func (m *Model) renderHourlyRhythm() string {
	rows := cardTitle("🕐", "Hourly Rhythm")

	hourly := m.historyData.Hourly
	if len(hourly) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No hourly data available"))
		return m.card(rows)
	}

	mindPtrs := make([]*float64, len(hourly))
	bodyPtrs := make([]*float64, len(hourly))
	counts := make([]float64, len(hourly))
	for i := range hourly {
		mindPtrs[i] = hourly[i].Mind
		bodyPtrs[i] = hourly[i].Body
		counts[i] = float64(hourly[i].Count)
	}

	chart := components.RenderDualLineChart(
		components.SeriesWithGaps(mindPtrs),
		components.SeriesWithGaps(bodyPtrs),
		m.chartWidth(), 8,
		"Average energy by hour of day (UTC)")
	rows = append(rows, indented(chart)...)

	// Check-in activity per hour.
	rows = append(rows, "", "  "+components.RenderHourlyHeatmap(counts))

	if peakHour, peakCount := m.historyData.PeakHour(); peakCount > 0 {
		rows = append(rows, fmt.Sprintf("  Busiest hour: %s (%d check-ins)",
			lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).
				Render(fmt.Sprintf("%02d:00-%02d:00", peakHour, (peakHour+1)%24)),
			peakCount,
		))
	}

	return m.card(rows)
}

func (m *Model) renderWeekdayPattern() string {
	rows := cardTitle("📅", "Weekday Pattern")

	weekly := m.historyData.Weekday
	if len(weekly) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No weekday data available"))
		return m.card(rows)
	}

	mindPtrs := make([]*float64, len(weekly))
	bodyPtrs := make([]*float64, len(weekly))
	counts := make([]float64, len(weekly))
	dayNames := make([]string, len(weekly))
	for i := range weekly {
		mindPtrs[i] = weekly[i].Mind
		bodyPtrs[i] = weekly[i].Body
		counts[i] = float64(weekly[i].Count)
		dayNames[i] = weekly[i].Day
		if len(dayNames[i]) > 3 {
			dayNames[i] = dayNames[i][:3] // "Mon", "Tue", etc.
		}
	}

	rows = append(rows, "  "+styles.MindSeriesStyle.Render("Mind"))
	rows = append(rows, indented(components.RenderBarChart(
		components.SeriesWithGaps(mindPtrs), dayNames, m.chartWidth()))...)

	rows = append(rows, "", "  "+styles.BodySeriesStyle.Render("Body"))
	rows = append(rows, indented(components.RenderBarChart(
		components.SeriesWithGaps(bodyPtrs), dayNames, m.chartWidth()))...)

	rows = append(rows, "",
		"  "+components.RenderWeeklyPattern(counts, dayNames),
		"  "+styles.HelpStyle.Render("check-in activity by weekday"))

	rows = append(rows, m.renderWeekdaySpread()...)

	if peakDay, peakCount := m.historyData.PeakWeekday(); peakCount > 0 {
		rows = append(rows, "", fmt.Sprintf("  Busiest day: %s (%d check-ins)",
			lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Render(peakDay),
			peakCount,
		))
	}

	return m.card(rows)
}

// renderWeekdaySpread lists the min/max spread for the weekday with the
// widest mind-energy swing, which reads better than seven annotated rows.
func (m *Model) renderWeekdaySpread() []string {
	var (
		bestDay string
		spread  float64
		low     float64
		high    float64
	)

	for _, b := range m.historyData.Weekday {
		if b.MinMind == nil || b.MaxMind == nil {
			continue
		}
		if s := *b.MaxMind - *b.MinMind; s > spread || bestDay == "" {
			bestDay = b.Day
			spread = s
			low = *b.MinMind
			high = *b.MaxMind
		}
	}

	if bestDay == "" {
		return nil
	}

	return []string{
		"",
		fmt.Sprintf("  Widest mind swing: %s (%.0f to %.0f)",
			lipgloss.NewStyle().Bold(true).Render(bestDay), low, high),
	}
}
