package components

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

const detailDateLayout = "Jan 2, 2006"

// RenderTaskHeader renders the title and metadata block of the task page.
func RenderTaskHeader(task models.Task, project models.Project) string {
	label := lipgloss.NewStyle().Bold(true).Width(10)

	status := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(StatusColor(task.Status))).
		Render(task.Status.Title())
	priority := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(PriorityColor(task.Priority))).
		Render(task.Priority.Title())

	assignee := "Unassigned"
	if task.AssigneeID != "" {
		assignee = task.AssigneeID
	}
	due := "None"
	if task.DueDate != nil {
		due = task.DueDate.Format(detailDateLayout)
	}

	rows := []string{
		TitleStyle.Render(task.Title),
		"",
		label.Render("Project") + project.Name,
		label.Render("Status") + status,
		label.Render("Priority") + priority,
		label.Render("Assignee") + assignee,
		label.Render("Due") + due,
		label.Render("Created") + task.CreatedAt.Local().Format(detailDateLayout),
		label.Render("Updated") + task.UpdatedAt.Local().Format(detailDateLayout),
	}
	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RenderProfile renders the signed-in user's card.
func RenderProfile(user models.User) string {
	label := lipgloss.NewStyle().Bold(true).Width(8)
	rows := []string{
		TitleStyle.Render(user.Name),
		"",
		label.Render("Email") + user.Email,
		label.Render("ID") + user.ID,
	}
	if user.Avatar != "" {
		rows = append(rows, label.Render("Avatar")+user.Avatar)
	}
	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// HelpEntry is one line of the help overlay
type HelpEntry struct {
	Key, Action string
}

// RenderHelp renders the key bindings of the current page.
func RenderHelp(title string, entries []HelpEntry) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Width(12)
	lines := []string{TitleStyle.Render(title), ""}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s%s", keyStyle.Render(e.Key), e.Action))
	}
	return HelpBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
