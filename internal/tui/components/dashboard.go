package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskpilot/internal/dashboard"
	"github.com/thenoetrevino/taskpilot/internal/tui/theme"
)

const statTileWidth = 18

// RenderDashboard renders the stat tiles, the status distribution and the
// per-project bars.
func RenderDashboard(stats dashboard.Stats, width int) string {
	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		statTile("Projects", stats.TotalProjects, theme.Highlight),
		statTile("Tasks", stats.TotalTasks, theme.Normal),
		statTile("Completed", stats.CompletedTasks, dashboard.ColorCompleted),
		statTile("In Progress", stats.InProgressTasks, dashboard.ColorInProgress),
		statTile("To Do", stats.TodoTasks, dashboard.ColorTodo),
	)

	if !stats.HasTasks() {
		empty := SubtleStyle.Render("No tasks yet. Open a project and press a to add one.")
		return lipgloss.JoinVertical(lipgloss.Left, tiles, "", empty)
	}

	barWidth := max(min(width-40, 50), 10)

	var statusLines []string
	statusLines = append(statusLines, TitleStyle.Render("Tasks by status"))
	for _, slice := range stats.StatusSlices {
		statusLines = append(statusLines, barLine(slice.Name, slice.Value, stats.TotalTasks, barWidth, slice.Color))
	}
	statusLines = append(statusLines, "",
		fmt.Sprintf("Completion: %.0f%%", stats.CompletionRate()*100))

	var projectLines []string
	projectLines = append(projectLines, TitleStyle.Render("Tasks by project"))
	most := 0
	for _, load := range stats.ProjectLoads {
		most = max(most, load.Tasks)
	}
	for _, load := range stats.ProjectLoads {
		projectLines = append(projectLines, barLine(load.Name, load.Tasks, most, barWidth, dashboard.ColorProjectBar))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tiles,
		"",
		CardStyle.Render(strings.Join(statusLines, "\n")),
		CardStyle.Render(strings.Join(projectLines, "\n")),
	)
}

func statTile(label string, value int, color string) string {
	number := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(fmt.Sprintf("%d", value))
	return CardStyle.Width(statTileWidth).Render(number + "\n" + SubtleStyle.Render(label))
}

// barLine draws "label ████░░░ n" scaled against total.
func barLine(label string, value, total, width int, color string) string {
	filled := 0
	if total > 0 {
		filled = value * width / total
	}
	if value > 0 && filled == 0 {
		filled = 1
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%-18s %s %d", label, bar, value)
}
