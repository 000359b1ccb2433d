package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary  = "#7D56F4"
	colorTalking  = "#F4A056"
	colorScene    = "#04B575"
	colorSelected = "#FAFAFA"
	colorError    = "#FF0000"
	colorInfo     = "#626262"
	colorPaceSlow = "#5FAFFF"
	colorPaceFast = "#FF5F5F"
	colorPlayhead = "#FFD700"
)

// Styles for the editor
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary)).
		MarginBottom(1)

	SceneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorScene))

	TalkingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorTalking))

	SelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorSelected)).
		Background(lipgloss.Color(colorPrimary))

	PlayheadStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPlayhead))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError))

	PaceGoodStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorScene))

	PaceSlowStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorPaceSlow))

	PaceFastStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorPaceFast))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorPrimary)).
		Padding(0, 1)
)
