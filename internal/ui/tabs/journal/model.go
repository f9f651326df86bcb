// Package journal provides the journal tab for browsing and recording check-ins.
package journal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/m-sarratt/moodline-tui/internal/app"
	"github.com/m-sarratt/moodline-tui/internal/models"
	"github.com/m-sarratt/moodline-tui/internal/ui/styles"
)

// formField identifies the focused slot in the quick-add form.
type formField int

const (
	fieldMind formField = iota
	fieldBody
	fieldNote
	fieldSubmit
	fieldCancel
)

const formFieldCount = 5

type keyMap struct {
	Enter  key.Binding
	Delete key.Binding
	Add    key.Binding
	Export key.Binding
	Import key.Binding
	Escape key.Binding
}

// Model represents the journal tab state.
type Model struct {
	state         *app.State
	table         table.Model
	width         int
	height        int
	adding        bool
	showDetail    bool
	focusedField  formField
	mindInput     textinput.Model
	bodyInput     textinput.Model
	noteInput     textinput.Model
	formError     string
	keys          keyMap
	confirmDelete bool
	deleteID      string
	deleteLabel   string
}

// journalColumns returns the table layout with the note column sized to
// soak up whatever width is left over.
func journalColumns(noteWidth int) []table.Column {
	return []table.Column{
		{Title: "When", Width: 14},
		{Title: "Mind", Width: 6},
		{Title: "Body", Width: 6},
		{Title: "Mood", Width: 10},
		{Title: "Note", Width: noteWidth},
	}
}

func newEnergyInput() textinput.Model {
	in := textinput.New()
	in.Placeholder = "0-100, blank to skip"
	in.CharLimit = 6
	in.Width = 22
	return in
}

// New creates a new journal model.
func New(state *app.State) *Model {
	noteInput := textinput.New()
	noteInput.Placeholder = "Optional note..."
	noteInput.CharLimit = 200
	noteInput.Width = 40

	t := table.New(
		table.WithColumns(journalColumns(30)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	ts.Selected = ts.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(ts)

	return &Model{
		state:        state,
		table:        t,
		mindInput:    newEnergyInput(),
		bodyInput:    newEnergyInput(),
		noteInput:    noteInput,
		focusedField: fieldMind,
		keys: keyMap{
			Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
			Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
			Add:    key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add check-in")),
			Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
			Import: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import inbox")),
			Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		},
	}
}

// Init initializes the journal tab.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the journal tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	// Modal states swallow everything until dismissed.
	switch {
	case m.adding:
		return m.handleFormMsg(msg)
	case m.confirmDelete:
		return m.handleDeletePrompt(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Enter):
			if len(m.state.GetRecent()) > 0 {
				m.showDetail = !m.showDetail
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			entries := m.state.GetRecent()
			if idx := m.table.Cursor(); idx >= 0 && idx < len(entries) {
				m.confirmDelete = true
				m.deleteID = entries[idx].ID
				m.deleteLabel = entries[idx].CreatedAt.UTC().Format("Jan 02 15:04")
			}
			return m, nil

		case key.Matches(msg, m.keys.Add):
			m.openForm()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Export):
			return m, func() tea.Msg { return app.ExportMsg{} }

		case key.Matches(msg, m.keys.Import):
			return m, func() tea.Msg { return app.ImportInboxMsg{} }
		}
		return m, tea.Batch(m.forwardToTable(msg)...)

	case app.RecentEntriesMsg:
		m.updateTableData()
		m.restoreCursor()

	case app.TabSwitchMsg:
		if msg.Tab == app.TabJournal {
			m.updateTableData()
			m.restoreCursor()
		}
	}

	return m, nil
}

// forwardToTable hands a key to the table and publishes cursor moves so
// the selection survives reloads and tab switches.
func (m *Model) forwardToTable(msg tea.KeyMsg) []tea.Cmd {
	before := m.table.Cursor()
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	cmds := []tea.Cmd{cmd}

	after := m.table.Cursor()
	if after == before {
		return cmds
	}
	if entries := m.state.GetRecent(); after >= 0 && after < len(entries) {
		id := entries[after].ID
		cmds = append(cmds, func() tea.Msg {
			return app.SelectedEntryChangedMsg{Index: after, ID: id}
		})
	}
	return cmds
}

// openForm resets and focuses the quick-add form.
func (m *Model) openForm() {
	m.adding = true
	m.focusedField = fieldMind
	m.formError = ""
	m.mindInput.SetValue("")
	m.bodyInput.SetValue("")
	m.noteInput.SetValue("")
	m.applyFormFocus()
}

// closeForm blurs every input and leaves form mode.
func (m *Model) closeForm() {
	m.adding = false
	m.mindInput.Blur()
	m.bodyInput.Blur()
	m.noteInput.Blur()
}

// cycleField moves focus forward or backward through the form slots.
func (m *Model) cycleField(delta int) tea.Cmd {
	m.focusedField = formField((int(m.focusedField) + delta + formFieldCount) % formFieldCount)
	m.applyFormFocus()
	return textinput.Blink
}

// handleFormMsg drives the quick-add check-in form.
func (m *Model) handleFormMsg(msg tea.Msg) (app.Tab, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.closeForm()
			return m, nil

		case "tab", "down":
			return m, m.cycleField(1)

		case "shift+tab", "up":
			return m, m.cycleField(-1)

		case "enter":
			switch m.focusedField {
			case fieldSubmit:
				return m.submitForm()
			case fieldCancel:
				m.closeForm()
				return m, nil
			}
			return m, m.cycleField(1)
		}
	}

	// Everything else goes to whichever input has focus.
	var cmd tea.Cmd
	switch m.focusedField {
	case fieldMind:
		m.mindInput, cmd = m.mindInput.Update(msg)
	case fieldBody:
		m.bodyInput, cmd = m.bodyInput.Update(msg)
	case fieldNote:
		m.noteInput, cmd = m.noteInput.Update(msg)
	}
	return m, cmd
}

// submitForm validates the inputs and emits the record request.
func (m *Model) submitForm() (app.Tab, tea.Cmd) {
	mind, err := parseEnergy(m.mindInput.Value())
	if err != nil {
		m.formError = "Mind energy must be a number from 0 to 100"
		m.focusedField = fieldMind
		m.applyFormFocus()
		return m, textinput.Blink
	}
	body, err := parseEnergy(m.bodyInput.Value())
	if err != nil {
		m.formError = "Body energy must be a number from 0 to 100"
		m.focusedField = fieldBody
		m.applyFormFocus()
		return m, textinput.Blink
	}

	entry := models.MoodEntry{
		CreatedAt:  time.Now().UTC(),
		MindEnergy: mind,
		BodyEnergy: body,
		Note:       strings.TrimSpace(m.noteInput.Value()),
		Source:     "journal",
	}

	m.closeForm()
	return m, func() tea.Msg {
		return app.RecordEntryMsg{Entry: entry}
	}
}

// parseEnergy parses a 0-100 reading. A blank field means the series was
// not measured, which is different from zero.
func parseEnergy(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid energy reading %q", raw)
	}
	if v < 0 || v > 100 {
		return nil, fmt.Errorf("energy reading %v out of range", v)
	}
	return &v, nil
}

// handleDeletePrompt resolves the delete confirmation.
func (m *Model) handleDeletePrompt(msg tea.Msg) (app.Tab, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k.String() {
	case "y", "Y":
		id := m.deleteID
		m.clearDeletePrompt()
		return m, func() tea.Msg {
			return app.DeleteEntryMsg{ID: id}
		}
	case "n", "N", "esc":
		m.clearDeletePrompt()
	}
	return m, nil
}

func (m *Model) clearDeletePrompt() {
	m.confirmDelete = false
	m.deleteID = ""
	m.deleteLabel = ""
}

// applyFormFocus focuses the input matching focusedField and blurs the rest.
func (m *Model) applyFormFocus() {
	m.mindInput.Blur()
	m.bodyInput.Blur()
	m.noteInput.Blur()

	switch m.focusedField {
	case fieldMind:
		m.mindInput.Focus()
	case fieldBody:
		m.bodyInput.Focus()
	case fieldNote:
		m.noteInput.Focus()
	}
}

// updateTableData rebuilds the table rows from the shared state.
func (m *Model) updateTableData() {
	entries := m.state.GetRecent()
	rows := make([]table.Row, 0, len(entries))
	for _, entry := range entries {
		mood := entry.MoodLabel
		if mood == "" {
			mood = "-"
		}
		rows = append(rows, table.Row{
			entry.CreatedAt.UTC().Format("Jan 02 15:04"),
			formatEnergyCell(entry.MindEnergy),
			formatEnergyCell(entry.BodyEnergy),
			mood,
			entry.Note,
		})
	}
	m.table.SetRows(rows)
}

// restoreCursor moves the cursor back to the shared selection after the
// rows are rebuilt.
func (m *Model) restoreCursor() {
	idx := m.state.GetSelectedEntryIndex()
	if idx >= 0 && idx < len(m.table.Rows()) {
		m.table.SetCursor(idx)
	}
}

// formatEnergyCell renders a reading for a table cell. A missing reading
// shows as a dash, never as zero.
func formatEnergyCell(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.0f", *v)
}

// SetSize sets the available size for the journal tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-10, 3))
	m.table.SetColumns(journalColumns(min(max(width-50, 20), 60)))
}

// Focused reports whether the tab is capturing text input. Global
// single-letter shortcuts stay out of the way while the form or the
// delete prompt is open.
func (m *Model) Focused() bool {
	return m.adding || m.confirmDelete
}

// ShortHelp lists the bindings for the current mode.
func (m *Model) ShortHelp() []key.Binding {
	if m.adding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
			m.keys.Escape,
		}
	}
	return []key.Binding{m.keys.Add, m.keys.Delete, m.keys.Enter}
}

// FullHelp lists every journal binding.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Add, m.keys.Delete},
		{m.keys.Export, m.keys.Import},
		{m.keys.Enter, m.keys.Escape},
	}
}
