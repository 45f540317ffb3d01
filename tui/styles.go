package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Brand colors
	ColorPrimary     = lipgloss.Color("#2B2B49") // Dark indigo
	ColorPrimaryDark = lipgloss.Color("#1E1E33")
	ColorSecondary   = lipgloss.Color("#FFB800") // Gold
	ColorAccent      = lipgloss.Color("#DDA000") // Dark gold

	ColorSuccess = lipgloss.Color("#4CAF50")
	ColorWarning = lipgloss.Color("#FFB800")
	ColorError   = lipgloss.Color("#E06666")
	ColorInfo    = lipgloss.Color("#8C8CC7")

	ColorBorder      = lipgloss.Color("#4A4A6A")
	ColorBorderLight = lipgloss.Color("#666666")
	ColorText        = lipgloss.Color("#F5F5F7")
	ColorTextMuted   = lipgloss.Color("#9A9AAE")
	ColorSelected    = lipgloss.Color("#FFB800")
)

type Theme struct {
	PanelBorder lipgloss.Border

	TitleStyle      lipgloss.Style
	HeaderStyle     lipgloss.Style
	NormalTextStyle lipgloss.Style
	MutedTextStyle  lipgloss.Style

	SelectedItemStyle lipgloss.Style
	ActivePanelStyle  lipgloss.Style
	ErrorStyle        lipgloss.Style
	SuccessStyle      lipgloss.Style
	WarningStyle      lipgloss.Style

	CuisineStyle lipgloss.Style
	LinkStyle    lipgloss.Style
	HelpStyle    lipgloss.Style
}

func DefaultTheme() *Theme {
	return &Theme{
		PanelBorder: lipgloss.RoundedBorder(),

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			Padding(0, 1),

		HeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1),

		NormalTextStyle: lipgloss.NewStyle().
			Foreground(ColorText),

		MutedTextStyle: lipgloss.NewStyle().
			Foreground(ColorTextMuted),

		SelectedItemStyle: lipgloss.NewStyle().
			Foreground(ColorSelected).
			Bold(true).
			Background(ColorPrimary),

		ActivePanelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1),

		ErrorStyle: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		SuccessStyle: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),

		WarningStyle: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true),

		CuisineStyle: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),

		LinkStyle: lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Underline(true),

		HelpStyle: lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true),
	}
}

const (
	IconRecipe     = "🍽"
	IconCuisine    = "🌍"
	IconVideo      = "▷"
	IconLink       = "↗"
	IconCheck      = "✓"
	IconCross      = "✗"
	IconWarning    = "!"
	IconArrowRight = "▶"
	IconNoPhoto    = "·"
)

func ErrorText(text string, theme *Theme) string {
	return theme.ErrorStyle.Render(IconCross + " " + text)
}

func StatusBadge(text string, statusType string, theme *Theme) string {
	var style lipgloss.Style

	switch statusType {
	case "info":
		style = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Background(lipgloss.Color("#1E3A8A")).
			Bold(true)
	default:
		style = theme.NormalTextStyle
	}

	return style.Padding(0, 1).Render(text)
}

func KeyHelp(key, description string, theme *Theme) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Padding(0, 1).
		Background(ColorPrimaryDark)

	descStyle := theme.MutedTextStyle

	return keyStyle.Render(key) + " " + descStyle.Render(description)
}

func Separator(width int, char string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(char, max(width, 0)))
}

