package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// StatusBarProps is what the bottom line shows
type StatusBarProps struct {
	Width int
	// Left is the location, e.g. "Projects › Website"
	Left string
	// Notice is an already rendered inline notice, shown instead of Hint
	Notice string
	Hint   string
}

// RenderStatusBar renders a status bar with left and right aligned text
func RenderStatusBar(props StatusBarProps) string {
	leftRendered := StatusBarStyle.Bold(true).Padding(0, 1).Render("taskpilot · " + props.Left)

	right := props.Notice
	if right == "" {
		right = StatusBarStyle.Padding(0, 1).Render(props.Hint)
	}

	gapWidth := max(props.Width-lipgloss.Width(leftRendered)-lipgloss.Width(right), 1)
	gap := StatusBarStyle.Render(strings.Repeat(" ", gapWidth))

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, gap, right)
}
