package tui

import (
	"github.com/charmbracelet/lipgloss"

	orchestration "github.com/koscakluka/aeris/core"
)

const (
	colorIdle       = lipgloss.Color("#6C7086")
	colorListening  = lipgloss.Color("#A6E3A1")
	colorProcessing = lipgloss.Color("#F9E2AF")
	colorSpeaking   = lipgloss.Color("#89B4FA")
	colorUser       = lipgloss.Color("#F5C2E7")
	colorError      = lipgloss.Color("#F38BA8")
	colorMuted      = lipgloss.Color("#585B70")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	stateStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	userStyle  = lipgloss.NewStyle().Foreground(colorUser)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	meterStyle = lipgloss.NewStyle().Foreground(colorListening)
	logStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted)
)

func stateColor(state orchestration.TurnState) lipgloss.Color {
	switch state {
	case orchestration.StateListening:
		return colorListening
	case orchestration.StateProcessing:
		return colorProcessing
	case orchestration.StateSpeaking:
		return colorSpeaking
	default:
		return colorIdle
	}
}
