package journal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/m-sarratt/moodline-tui/internal/extract"
	"github.com/m-sarratt/moodline-tui/internal/ui/styles"
)

// View renders the journal tab.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, "")

	if m.adding {
		sections = append(sections, m.renderAddForm())
	} else if m.confirmDelete {
		sections = append(sections, m.renderDeleteConfirm())
	} else {
		sections = append(sections, m.renderTable())
		if m.showDetail {
			sections = append(sections, "")
			sections = append(sections, m.renderDetail())
		}
	}

	sections = append(sections, "")
	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

// renderTitle renders the tab title with store totals.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Journal")

	subtitle := "Record and browse your check-ins"
	if stats := m.state.GetStats(); stats != nil && stats.EntryCount > 0 {
		subtitle = fmt.Sprintf("%d check-in(s) across %d day(s)",
			stats.EntryCount, stats.DaysTracked)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		styles.SubTitleStyle.Render(subtitle),
	)
}

// renderTable renders the check-in table.
func (m *Model) renderTable() string {
	entries := m.state.GetRecent()

	if len(entries) == 0 {
		empty := lipgloss.JoinVertical(
			lipgloss.Left,
			styles.HelpStyle.Render("○ No check-ins yet"),
			"",
			styles.HelpStyle.Render("╰─▶ Press 'a' to record one, or drop exported JSON into the inbox"),
		)
		return styles.CardStyle.Width(max(m.width-6, 40)).Render(empty)
	}

	m.updateTableData()

	return styles.CardStyle.Width(max(m.width-6, 40)).Render(m.table.View())
}

// renderDetail renders the full record for the row under the cursor.
func (m *Model) renderDetail() string {
	entries := m.state.GetRecent()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(entries) {
		return ""
	}
	entry := entries[idx]

	labelStyle := styles.HelpStyle.Width(10)

	mood := entry.MoodLabel
	if mood == "" {
		mood = "unrated"
	}

	lines := []string{
		styles.CardTitleStyle.Render("☰ Check-in Detail"),
		"",
		labelStyle.Render("When") + entry.CreatedAt.UTC().Format("Mon, Jan 2 2006 15:04 MST"),
		labelStyle.Render("Mind") + styles.MindSeriesStyle.Render(formatEnergyCell(entry.MindEnergy)),
		labelStyle.Render("Body") + styles.BodySeriesStyle.Render(formatEnergyCell(entry.BodyEnergy)),
		labelStyle.Render("Mood") + styles.GetMoodLabelStyle(entry.MoodLabel).Render(mood),
	}

	if entry.Source != "" {
		lines = append(lines, labelStyle.Render("Source")+entry.Source)
	}
	if len(entry.Tags) > 0 {
		lines = append(lines, labelStyle.Render("Tags")+strings.Join(entry.Tags, ", "))
	}
	if entry.Note != "" {
		lines = append(lines, "", styles.HelpStyle.Render(entry.Note))
	}

	if items := extract.Scan(entry.Note); len(items) > 0 {
		lines = append(lines, "", styles.CardTitleStyle.Render("Action Items"))
		for _, item := range items {
			marker := "☐"
			if item.Kind == extract.KindEvent {
				marker = "◷"
			}
			lines = append(lines, fmt.Sprintf("%s %s", marker, item.Title))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return styles.InsightCardStyle.Width(max(m.width-6, 40)).Render(content)
}

// renderAddForm renders the quick-add form.
func (m *Model) renderAddForm() string {
	var b strings.Builder

	b.WriteString(styles.CardTitleStyle.Render("Record Check-in"))
	b.WriteString("\n\n")

	// Mind energy field
	mindLabel := "Mind energy:"
	if m.focusedField == fieldMind {
		b.WriteString(styles.FocusedStyle.Render("> " + mindLabel))
	} else {
		b.WriteString(styles.BlurredStyle.Render("  " + mindLabel))
	}
	b.WriteString("\n")
	b.WriteString("  " + m.mindInput.View())
	b.WriteString("\n\n")

	// Body energy field
	bodyLabel := "Body energy:"
	if m.focusedField == fieldBody {
		b.WriteString(styles.FocusedStyle.Render("> " + bodyLabel))
	} else {
		b.WriteString(styles.BlurredStyle.Render("  " + bodyLabel))
	}
	b.WriteString("\n")
	b.WriteString("  " + m.bodyInput.View())
	b.WriteString("\n\n")

	// Note field
	noteLabel := "Note:"
	if m.focusedField == fieldNote {
		b.WriteString(styles.FocusedStyle.Render("> " + noteLabel))
	} else {
		b.WriteString(styles.BlurredStyle.Render("  " + noteLabel))
	}
	b.WriteString("\n")
	b.WriteString("  " + m.noteInput.View())
	b.WriteString("\n\n")

	// Buttons
	var submitButton, cancelButton string
	if m.focusedField == fieldSubmit {
		submitButton = styles.ButtonActiveStyle.Render("Save")
	} else {
		submitButton = styles.ButtonInactiveStyle.Render("Save")
	}

	if m.focusedField == fieldCancel {
		cancelButton = styles.ButtonActiveStyle.Render("Cancel")
	} else {
		cancelButton = styles.ButtonInactiveStyle.Render("Cancel")
	}

	b.WriteString(submitButton + " " + cancelButton)

	if m.formError != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorTextStyle.Render("✗ " + m.formError))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("Leave an energy blank if you did not measure it."))

	return styles.ModalContentStyle.Render(b.String())
}

// renderDeleteConfirm renders the delete confirmation dialog.
func (m *Model) renderDeleteConfirm() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		styles.WarningTextStyle.Render("⚠  Delete Check-in"),
		"",
		fmt.Sprintf("Delete the check-in from %s?", m.deleteLabel),
		"",
		styles.HelpStyle.Render("This cannot be undone."),
		"",
		styles.ButtonActiveStyle.Render("y = yes")+"  "+styles.ButtonInactiveStyle.Render("n = no"),
	)

	modal := styles.ModalContentStyle.Render(content)
	return styles.CenterHorizontal(modal, m.width)
}

// renderFooter renders contextual shortcuts.
func (m *Model) renderFooter() string {
	var parts []string

	if m.adding {
		parts = []string{
			styles.HelpKeyStyle.Render("tab") + " next field",
			styles.HelpKeyStyle.Render("enter") + " submit",
			styles.HelpKeyStyle.Render("esc") + " cancel",
		}
	} else if m.confirmDelete {
		parts = []string{
			styles.HelpKeyStyle.Render("y") + " confirm",
			styles.HelpKeyStyle.Render("n") + " abort",
		}
	} else {
		parts = []string{
			styles.HelpKeyStyle.Render("a") + " add",
			styles.HelpKeyStyle.Render("d") + " delete",
			styles.HelpKeyStyle.Render("enter") + " details",
			styles.HelpKeyStyle.Render("e") + " export",
			styles.HelpKeyStyle.Render("i") + " import inbox",
		}
	}

	return styles.HelpStyle.Render(strings.Join(parts, " | "))
}
