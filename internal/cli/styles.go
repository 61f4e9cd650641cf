package cli

import "github.com/charmbracelet/lipgloss"

// colors is the palette of the status messages.
var colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Success: lipgloss.Color("#00B894"), // Green
	Warning: lipgloss.Color("#FDCB6E"), // Yellow
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(colors.Primary).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colors.Muted)
	successStyle = lipgloss.NewStyle().Foreground(colors.Success).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colors.Warning).Bold(true)
)
