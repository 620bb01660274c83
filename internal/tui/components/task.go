package components

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/tui/theme"
)

// CardState is how a card is drawn on the board
type CardState int

const (
	CardNormal   CardState = iota
	CardSelected           // under the cursor
	CardCarried            // picked up and being dragged
)

// RenderTask renders a single task as a card
//
//	┏━━━━━━━━━━━━━━━━━━━━━┓
//	┃ {Task Title}        ┃
//	┃ priority │ due date ┃
//	┃ assignee            ┃
//	┗━━━━━━━━━━━━━━━━━━━━━┛
//
// This has a fixed width and length
func RenderTask(task models.Task, state CardState) string {
	bg := theme.TaskBg
	border := theme.TaskBorder
	switch state {
	case CardSelected:
		bg = theme.SelectedBg
		border = theme.SelectedBorder
	case CardCarried:
		bg = theme.SelectedBg
		border = theme.CarriedBorder
	}

	content := renderTaskTitle(task, bg) +
		"\n " + renderTaskMetadata(task, bg) +
		"\n " + renderTaskAssignee(task, bg)

	return TaskStyle.
		BorderForeground(lipgloss.Color(border)).
		BorderBackground(lipgloss.Color(bg)).
		Background(lipgloss.Color(bg)).
		Render(content)
}

func renderTaskTitle(task models.Task, bg string) string {
	title := Truncate(task.Title, taskTitleMaxLength)
	return lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color(bg)).
		Render(" " + title)
}

// renderTaskMetadata renders priority and due date separated by │
func renderTaskMetadata(task models.Task, bg string) string {
	priority := lipgloss.NewStyle().
		Foreground(lipgloss.Color(PriorityColor(task.Priority))).
		Background(lipgloss.Color(bg)).
		Render(task.Priority.Title())

	subtle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Background(lipgloss.Color(bg))

	due := "no due date"
	if task.DueDate != nil {
		due = "due " + task.DueDate.Format("Jan 2")
	}

	return priority + subtle.Render(" │ "+due)
}

func renderTaskAssignee(task models.Task, bg string) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Background(lipgloss.Color(bg))
	if task.AssigneeID == "" {
		return style.Italic(true).Render("unassigned")
	}
	return style.Render(fmt.Sprintf("@%s", task.AssigneeID))
}

// PriorityColor returns the badge color of a priority.
func PriorityColor(p models.TaskPriority) string {
	switch p {
	case models.PriorityHigh:
		return theme.PriorityHigh
	case models.PriorityLow:
		return theme.PriorityLow
	default:
		return theme.PriorityMedium
	}
}

// StatusColor returns the column color of a status.
func StatusColor(s models.TaskStatus) string {
	switch s {
	case models.StatusDone:
		return theme.StatusDone
	case models.StatusInProgress:
		return theme.StatusInProgress
	default:
		return theme.StatusTodo
	}
}

// Truncate shortens s to n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
