package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/m-sarratt/moodline-tui/internal/ui/styles"
	"github.com/m-sarratt/moodline-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderStoreCard(),
		m.renderAboutCard(),
	)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Info"),
		styles.HelpStyle.Render("Configuration and application information"),
		"",
	)
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

// card renders a titled card from key-value rows.
func (m *Model) card(title string, rows []string) string {
	all := append([]string{styles.CardTitleStyle.Render(title), ""}, rows...)
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, all...),
	)
}

func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)
	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func (m *Model) renderConfigCard() string {
	if m.config == nil {
		return m.card("Configuration", []string{
			styles.HelpStyle.Render("Configuration not loaded"),
		})
	}

	alerts := "off"
	if m.config.NotificationsEnabled {
		alerts = "on"
	}

	return m.card("Configuration", []string{
		m.renderConfigRow("Database", m.config.DatabasePath),
		m.renderConfigRow("Inbox", m.config.InboxPath),
		m.renderConfigRow("Log File", m.config.LogPath),
		m.renderConfigRow("Stats Refresh", m.config.StatsRefreshInterval.String()),
		m.renderConfigRow("Desktop Alerts", alerts),
	})
}

func (m *Model) renderStoreCard() string {
	if m.store == nil || m.store.TotalEntries == 0 {
		return m.card("Store", []string{
			styles.HelpStyle.Render("○ No check-ins recorded yet"),
		})
	}

	rows := []string{
		m.renderConfigRow("Check-ins", fmt.Sprintf("%d", m.store.TotalEntries)),
		m.renderConfigRow("Days Tracked", fmt.Sprintf("%d", m.store.DaysTracked)),
		m.renderConfigRow("With Notes", fmt.Sprintf("%d", m.store.EntriesWithNote)),
		m.renderConfigRow("First Entry", m.store.FirstEntryAt.UTC().Format("Jan 2, 2006")),
		m.renderConfigRow("Latest Entry", m.store.LastEntryAt.UTC().Format("Jan 2, 2006 15:04")),
	}

	if !m.importAt.IsZero() {
		rows = append(rows, m.renderConfigRow("Last Import",
			fmt.Sprintf("%s (%d of %d new)",
				m.importAt.UTC().Format("Jan 2, 2006 15:04"),
				m.importNew, m.importTotal)))
	}

	return m.card("Store", rows)
}

func (m *Model) renderAboutCard() string {
	return m.card("About Moodline", []string{
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	})
}
