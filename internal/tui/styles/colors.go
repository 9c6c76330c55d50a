// Package styles holds the color palette and text styles r2ta uses for
// terminal output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	White = lipgloss.Color("#E2E2E2")
	Gray  = lipgloss.Color("#888888")
	Muted = lipgloss.Color("#555555")

	Red = lipgloss.Color("#FF8787")
)
