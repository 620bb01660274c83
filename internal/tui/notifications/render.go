// Package notifications renders the transient notices of the TUI.
package notifications

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskpilot/internal/tui/state"
)

// RenderInline renders a compact single-line notice for the status bar
func RenderInline(n state.Notification) string {
	style := styleFor(n.Level)

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Background(lipgloss.Color(style.background)).
		Padding(0, 1).
		Render(style.icon + " " + n.Message)
}
