package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorFg      = "#F8F8F2"
	colorMuted   = "#6272A4"
	colorAccent  = "#8BE9FD"
	colorAccent2 = "#BD93F9"
	colorSuccess = "#50FA7B"
	colorWarn    = "#F1FA8C"
	colorError   = "#FF5555"
	colorBorder  = "#44475A"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorFg))
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorFg))
	lineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	choiceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorFg))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorSuccess))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWarn))
)
