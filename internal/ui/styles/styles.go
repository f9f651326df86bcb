// Package styles defines the visual styling for the application.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/m-sarratt/moodline-tui/internal/models"
)

// Moodline palette. The mind and body series get their own hues so the
// dual-line charts read at a glance.
var (
	Primary   = lipgloss.Color("170") // orchid
	Secondary = lipgloss.Color("104") // muted purple
	Subtle    = lipgloss.Color("240")

	Mind = lipgloss.Color("141")
	Body = lipgloss.Color("114")

	Success = lipgloss.Color("78")
	Error   = lipgloss.Color("203")
	Warning = lipgloss.Color("221")
	Info    = lipgloss.Color("75")

	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// Headings and layout.
var (
	// TitleStyle is used for main headings.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1)

	// SubTitleStyle is used for section headings.
	SubTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Secondary).MarginBottom(1)

	// DocStyle provides consistent document margins.
	DocStyle = lipgloss.NewStyle().Margin(1, 2).Padding(0, 1)

	// CardStyle creates a bordered card container.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(1, 2).
			MarginBottom(1)

	// CardTitleStyle styles card headers.
	CardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1)

	// InsightCardStyle frames the narrative insight blocks.
	InsightCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Secondary).
				Padding(1, 2).
				MarginBottom(1)
)

// Overlays and toasts.
var (
	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)

	// HelpPanelStyle creates the help overlay panel.
	HelpPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 3).
			Background(BgDark)

	// ModalContentStyle styles modal content.
	ModalContentStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(Primary).
				Padding(1, 2).
				Background(BgDark)
)

// Input and interaction.
var (
	// FocusedStyle is used for focused input elements.
	FocusedStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	// BlurredStyle is used for unfocused input elements.
	BlurredStyle = lipgloss.NewStyle().Foreground(TextMuted)

	// ProgressLabelStyle styles progress bar labels.
	ProgressLabelStyle = lipgloss.NewStyle().Foreground(TextSecondary).Width(20)

	// ButtonStyle is the base button style.
	ButtonStyle = lipgloss.NewStyle().Padding(0, 2).MarginRight(1)

	// ButtonActiveStyle styles active/focused buttons.
	ButtonActiveStyle = ButtonStyle.
				Background(Primary).
				Foreground(lipgloss.Color("230")).
				Bold(true)

	ButtonInactiveStyle = ButtonStyle.
				Background(BgLight).
				Foreground(TextSecondary)
)

// Help text.
var (
	// HelpStyle is the base style for help text.
	HelpStyle = lipgloss.NewStyle().Foreground(TextMuted)

	// HelpKeyStyle styles keyboard shortcut keys.
	HelpKeyStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
)

// Series and mood coloring.
var (
	// MindSeriesStyle styles mind-energy figures and legends.
	MindSeriesStyle = lipgloss.NewStyle().Foreground(Mind).Bold(true)

	// BodySeriesStyle styles body-energy figures and legends.
	BodySeriesStyle = lipgloss.NewStyle().Foreground(Body).Bold(true)

	MoodPositiveStyle = lipgloss.NewStyle().Foreground(Success).Bold(true)
	MoodNeutralStyle  = lipgloss.NewStyle().Foreground(Warning)
	MoodNegativeStyle = lipgloss.NewStyle().Foreground(Error).Bold(true)

	// MoodUnknownStyle styles days without a blended score.
	MoodUnknownStyle = lipgloss.NewStyle().Foreground(Subtle)

	EnergyHighStyle   = lipgloss.NewStyle().Foreground(Success)
	EnergyMediumStyle = lipgloss.NewStyle().Foreground(Warning)
	EnergyLowStyle    = lipgloss.NewStyle().Foreground(Error)

	TrendUpStyle   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	TrendFlatStyle = lipgloss.NewStyle().Foreground(Subtle)
	TrendDownStyle = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Message text.
var (
	ErrorTextStyle   = lipgloss.NewStyle().Foreground(Error)
	SuccessTextStyle = lipgloss.NewStyle().Foreground(Success)
	WarningTextStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoTextStyle    = lipgloss.NewStyle().Foreground(Info)
)

// GetEnergyStyle returns the appropriate style for a 0-100 energy value,
// using the same thresholds that classify a day's mood.
func GetEnergyStyle(value float64) lipgloss.Style {
	switch {
	case value >= 67:
		return EnergyHighStyle
	case value >= 33:
		return EnergyMediumStyle
	default:
		return EnergyLowStyle
	}
}

// GetMoodLabelStyle returns the appropriate style for a day's mood label.
func GetMoodLabelStyle(label string) lipgloss.Style {
	switch label {
	case models.MoodPositive:
		return MoodPositiveStyle
	case models.MoodNegative:
		return MoodNegativeStyle
	case models.MoodNeutral:
		return MoodNeutralStyle
	default:
		return MoodUnknownStyle
	}
}

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
