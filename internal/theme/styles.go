package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lumina-ai/lumina-console/internal/domain"
)

// Main UI styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	PrincipalStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0, 0, 0)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Help styles
var (
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)
)

// Table styles
var (
	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true).
				Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Background(ColorSelected).
				Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0, 0, 0)
)

// Detail modal styles
var (
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Width(16)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			MarginTop(1)

	CodeStyle = lipgloss.NewStyle().
			Foreground(ColorNormal).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ColorBorder).
			PaddingLeft(1)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// StatusStyle returns the style for a request log status
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case domain.LogStatusSuccess:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	case domain.LogStatusFail:
		return lipgloss.NewStyle().Foreground(ColorFail).Bold(true)
	default:
		return MutedStyle
	}
}

// NotificationStyle returns the bordered box style for a notification kind
func NotificationStyle(kind domain.NotificationKind) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(notificationColor(kind)).
		Padding(0, 1)
}

// NotificationIconStyle returns the icon style for a notification kind
func NotificationIconStyle(kind domain.NotificationKind) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(notificationColor(kind)).Bold(true)
}

func notificationColor(kind domain.NotificationKind) Color {
	switch kind {
	case domain.NotificationError:
		return ColorNotifyError
	case domain.NotificationSuccess:
		return ColorNotifySuccess
	case domain.NotificationWarning:
		return ColorNotifyWarning
	default:
		return ColorNotifyInfo
	}
}

// CopiedStyle marks text that was just copied
var CopiedStyle = lipgloss.NewStyle().
	Foreground(ColorSuccess).
	Bold(true)
