package cli

import "github.com/charmbracelet/lipgloss"

var (
	// accentStyle for project numbers and highlights
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// mutedStyle for paths, scores, secondary info
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// favoriteStyle for the favorite marker
	favoriteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
)
